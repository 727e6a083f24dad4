package handlers

import (
	"errors"
	"strings"
	"time"

	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/database"
	"github.com/babydan/binary_backend/middleware"
	"github.com/babydan/binary_backend/models"
	"github.com/babydan/binary_backend/services"
	"github.com/babydan/binary_backend/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

var validate = validator.New()

type SignUpRequest struct {
	Ref           string `json:"ref"`
	Side          string `json:"side"`
	FirstName     string `json:"firstname" validate:"required,min=2"`
	LastName      string `json:"lastname" validate:"required,min=2"`
	WalletAddress string `json:"wallet_address" validate:"required"`
}

type WalletLoginRequest struct {
	WalletAddress string `json:"walletAddress" validate:"required"`
	Signature     string `json:"signature" validate:"required"`
	Message       string `json:"message" validate:"required"`
}

func SignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	if !utils.IsValidWalletAddress(req.WalletAddress) {
		return badRequest(c, "Invalid Ethereum wallet address format")
	}
	if req.Side != "" && req.Side != models.SideLeft && req.Side != models.SideRight {
		return badRequest(c, services.ErrInvalidSide.Error())
	}

	member, err := services.RegisterMember(database.DB, config.LoadSettings(), services.RegisterInput{
		RefCode:       req.Ref,
		Side:          req.Side,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		WalletAddress: req.WalletAddress,
		IP:            c.IP(),
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"data": fiber.Map{
			"userid":         member.ID,
			"profileid":      member.ProfileID,
			"ref_code":       member.RefCode,
			"firstname":      member.FirstName,
			"lastname":       member.LastName,
			"wallet_address": member.WalletAddress,
			"sponsor_id":     member.SponsorID,
			"parent_id":      member.ParentID,
			"side":           member.Side,
			"created_at":     member.CreatedAt,
		},
	})
}

// GetNonce rotates and returns the login challenge for an existing wallet.
func GetNonce(c *fiber.Ctx) error {
	walletAddress := strings.ToLower(c.Params("walletAddress"))
	if !utils.IsValidWalletAddress(walletAddress) {
		return badRequest(c, "Invalid wallet address format")
	}

	var member models.Member
	err := database.DB.Where("wallet_address = ? AND status != ?", walletAddress, models.MemberDeactivated).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Wallet not found. Please sign up first.",
			})
		}
		return serviceError(c, err)
	}

	nonce, err := utils.GenerateNonce()
	if err != nil {
		return serviceError(c, err)
	}
	err = database.DB.Model(&models.Member{}).Where("id = ?", member.ID).
		UpdateColumn("nonce", nonce).Error
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"nonce":   nonce,
		"message": "Please sign this message to authenticate: " + nonce,
	})
}

func WalletLogin(c *fiber.Ctx) error {
	var req WalletLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	if !utils.IsValidWalletAddress(req.WalletAddress) {
		return badRequest(c, "Invalid wallet address format")
	}

	wallet := strings.ToLower(req.WalletAddress)
	var member models.Member
	err := database.DB.Where("wallet_address = ? AND status != ?", wallet, models.MemberDeactivated).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Wallet not found"})
		}
		return serviceError(c, err)
	}

	// The signed message must carry the nonce issued for this member.
	if member.Nonce == "" || !strings.Contains(req.Message, member.Nonce) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid or expired nonce"})
	}
	if !utils.VerifyPersonalSign(req.WalletAddress, req.Signature, req.Message) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": utils.ErrBadSignature.Error()})
	}

	// One nonce, one login.
	err = database.DB.Model(&models.Member{}).Where("id = ?", member.ID).
		UpdateColumn("nonce", "").Error
	if err != nil {
		return serviceError(c, err)
	}

	claims := jwt.MapClaims{
		"userid": member.ID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iss":    "baby-dan-binary-api",
		"aud":    "baby-dan-binary-frontend",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   signed,
		"data": fiber.Map{
			"userid":         member.ID,
			"profileid":      member.ProfileID,
			"wallet_address": member.WalletAddress,
		},
	})
}

// VerifyAuth validates the bearer token supplied by the frontend on boot.
func VerifyAuth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"userid": middleware.MemberID(c)},
	})
}
