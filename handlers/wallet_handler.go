package handlers

import (
	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/database"
	"github.com/babydan/binary_backend/middleware"
	"github.com/babydan/binary_backend/models"
	"github.com/babydan/binary_backend/services"
	"github.com/babydan/binary_backend/utils"
	"github.com/gofiber/fiber/v2"
)

type DepositRequest struct {
	Amount  float64 `json:"baby_dan_amount" validate:"required,gt=0"`
	TxnHash string  `json:"txn_hash" validate:"required"`
}

type WithdrawRequest struct {
	Amount  float64 `json:"baby_dan_amount" validate:"required,gt=0"`
	TxnHash string  `json:"txn_hash" validate:"required"`
}

type TransferRequest struct {
	ToWallet string  `json:"to_wallet_address" validate:"required"`
	Amount   float64 `json:"baby_dan_amount" validate:"required,gt=0"`
}

func GetBalance(c *fiber.Ctx) error {
	balance, err := services.Balance(database.DB, middleware.MemberID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"balance": balance}})
}

func CreateDeposit(c *fiber.Ctx) error {
	var req DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	if !utils.IsValidBscTxHash(req.TxnHash) {
		return badRequest(c, "Invalid transaction hash format")
	}

	memberID := middleware.MemberID(c)
	deposit, err := services.CreateDeposit(database.DB, memberID, req.Amount, req.TxnHash)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Deposit processed successfully",
		"data": fiber.Map{
			"userid":          memberID,
			"baby_dan_amount": req.Amount,
			"txn_hash":        req.TxnHash,
			"deposit": fiber.Map{
				"d_id":       deposit.ID,
				"status":     deposit.Status,
				"created_at": deposit.CreatedAt,
			},
		},
	})
}

func GetDepositHistory(c *fiber.Ctx) error {
	var deposits []models.Deposit
	err := database.DB.Where("member_id = ?", middleware.MemberID(c)).
		Order("created_at DESC").Find(&deposits).Error
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"deposits":    deposits,
		"total_count": len(deposits),
	}})
}

func CreateWithdraw(c *fiber.Ctx) error {
	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	if !utils.IsValidBscTxHash(req.TxnHash) {
		return badRequest(c, "Invalid transaction hash format")
	}

	memberID := middleware.MemberID(c)
	entry, err := services.CreateWithdraw(database.DB, config.LoadSettings(), memberID, req.Amount, req.TxnHash)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Withdraw processed successfully",
		"data": fiber.Map{
			"userid":          memberID,
			"baby_dan_amount": req.Amount,
			"txn_hash":        req.TxnHash,
			"transaction": fiber.Map{
				"t_id":       entry.ID,
				"tran_type":  entry.TranType,
				"out_amount": entry.OutAmount,
				"status":     entry.AdminStatus,
				"created_at": entry.CreatedAt,
			},
		},
	})
}

func CreateTransfer(c *fiber.Ctx) error {
	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	if !utils.IsValidWalletAddress(req.ToWallet) {
		return badRequest(c, "Invalid wallet address format")
	}

	memberID := middleware.MemberID(c)
	recipient, err := services.CreateTransfer(database.DB, memberID, req.ToWallet, req.Amount)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Transfer completed",
		"data": fiber.Map{
			"from_userid":     memberID,
			"to_userid":       recipient.ID,
			"baby_dan_amount": req.Amount,
		},
	})
}

func GetHistory(c *fiber.Ctx) error {
	var entries []models.WalletTransaction
	q := database.DB.Where("member_id = ?", middleware.MemberID(c))
	if tranType := c.Query("type"); tranType != "" {
		q = q.Where("tran_type = ?", tranType)
	}
	err := q.Order("created_at DESC").Limit(200).Find(&entries).Error
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"transactions": entries,
		"total_count":  len(entries),
	}})
}
