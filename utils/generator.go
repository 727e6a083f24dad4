package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/babydan/binary_backend/models"
	"gorm.io/gorm"
)

const refCodeLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateUniqueRefCode(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, refCodeLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := string(b)

		var member models.Member
		err := tx.Where("ref_code = ?", code).First(&member).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}

// ProfileID formats the display id, e.g. member 42 -> "D00042".
func ProfileID(memberID uint) string {
	return fmt.Sprintf("D%05d", memberID)
}
