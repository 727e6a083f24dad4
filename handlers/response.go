package handlers

import (
	"errors"
	"log"

	"github.com/babydan/binary_backend/services"
	"github.com/gofiber/fiber/v2"
)

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": msg})
}

// serviceError maps service error kinds to HTTP responses with a stable code.
func serviceError(c *fiber.Ctx, err error) error {
	type mapping struct {
		status int
		code   string
	}
	known := []struct {
		err error
		m   mapping
	}{
		{services.ErrSponsorNotFound, mapping{fiber.StatusNotFound, "NOT_FOUND"}},
		{services.ErrMemberNotFound, mapping{fiber.StatusNotFound, "NOT_FOUND"}},
		{services.ErrRecipientNotFound, mapping{fiber.StatusNotFound, "NOT_FOUND"}},
		{services.ErrPackageNotFound, mapping{fiber.StatusNotFound, "NOT_FOUND"}},
		{services.ErrPriceUnavailable, mapping{fiber.StatusServiceUnavailable, "PRICE_UNAVAILABLE"}},
		{services.ErrInsufficientBalance, mapping{fiber.StatusBadRequest, "INSUFFICIENT_BALANCE"}},
		{services.ErrWithdrawLimitExceeded, mapping{fiber.StatusBadRequest, "LIMIT_EXCEEDED"}},
		{services.ErrDuplicateWallet, mapping{fiber.StatusBadRequest, "CONFLICT"}},
		{services.ErrDuplicateTxnHash, mapping{fiber.StatusBadRequest, "CONFLICT"}},
		{services.ErrInvalidSide, mapping{fiber.StatusBadRequest, "INVALID_INPUT"}},
		{services.ErrSelfTransfer, mapping{fiber.StatusBadRequest, "INVALID_INPUT"}},
		{services.ErrCorruptTree, mapping{fiber.StatusInternalServerError, "CORRUPT_TREE"}},
	}

	for _, k := range known {
		if errors.Is(err, k.err) {
			if k.m.code == "CORRUPT_TREE" {
				log.Printf("🔥 CRITICAL: %v", err)
			}
			return c.Status(k.m.status).JSON(fiber.Map{
				"success": false,
				"code":    k.m.code,
				"error":   err.Error(),
			})
		}
	}

	log.Printf("🔥 Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"code":    "INTERNAL",
		"error":   "Internal server error",
	})
}
