package services

import (
	"errors"

	"github.com/babydan/binary_backend/models"
	"gorm.io/gorm"
)

type TeamNode struct {
	MemberID  uint      `json:"userid"`
	FirstName string    `json:"firstname"`
	SelfPV    float64   `json:"s_pv"`
	LeftPV    float64   `json:"l_pv"`
	RightPV   float64   `json:"r_pv"`
	Left      *TeamNode `json:"left"`
	Right     *TeamNode `json:"right"`
}

// BuildSubtree renders the binary subtree under memberID down to maxDepth
// levels. Depth 0 returns just the node itself.
func BuildSubtree(db *gorm.DB, memberID uint, maxDepth int) (*TeamNode, error) {
	if memberID == 0 {
		return nil, nil
	}

	var member models.Member
	err := db.Select("id", "first_name", "self_pv", "left_pv", "right_pv").
		First(&member, "id = ?", memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	node := &TeamNode{
		MemberID:  member.ID,
		FirstName: member.FirstName,
		SelfPV:    member.SelfPV,
		LeftPV:    member.LeftPV,
		RightPV:   member.RightPV,
	}
	if maxDepth == 0 {
		return node, nil
	}

	left, err := childID(db, member.ID, models.SideLeft)
	if err != nil {
		return nil, err
	}
	right, err := childID(db, member.ID, models.SideRight)
	if err != nil {
		return nil, err
	}

	if node.Left, err = BuildSubtree(db, left, maxDepth-1); err != nil {
		return nil, err
	}
	if node.Right, err = BuildSubtree(db, right, maxDepth-1); err != nil {
		return nil, err
	}
	return node, nil
}

func childID(db *gorm.DB, parentID uint, side string) (uint, error) {
	var child models.Member
	err := db.Select("id").Where("parent_id = ? AND side = ?", parentID, side).First(&child).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return child.ID, nil
}
