package handlers

import (
	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/database"
	"github.com/babydan/binary_backend/middleware"
	"github.com/babydan/binary_backend/models"
	"github.com/babydan/binary_backend/services"
	"github.com/gofiber/fiber/v2"
)

type BuyPackageRequest struct {
	PackageID     uint `json:"p_id" validate:"required"`
	IsAdminAction bool `json:"isAdminAction"`
}

func ListPackages(c *fiber.Ctx) error {
	var packages []models.Package
	err := database.DB.Where("is_enabled = ?", true).
		Order("display_order, id").Find(&packages).Error
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": packages})
}

func BuyPackage(c *fiber.Ctx) error {
	var req BuyPackageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if req.PackageID == 0 {
		return badRequest(c, "p_id is required")
	}

	cfg := config.LoadSettings()
	priceLookup := func() (float64, error) { return services.DanPriceUSD(cfg) }

	investment, err := services.BuyPackage(database.DB, cfg, priceLookup, middleware.MemberID(c), req.PackageID, req.IsAdminAction)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"userid": investment.MemberID,
			"investment": fiber.Map{
				"inv_id":            investment.ID,
				"p_id":              investment.PackageID,
				"inv_amount":        investment.InvAmount,
				"roi_next_datetime": investment.RoiNextAt,
				"txn":               investment.Txn,
				"status":            investment.Status,
			},
		},
	})
}

func ListInvestments(c *fiber.Ctx) error {
	var investments []models.Investment
	err := database.DB.Where("member_id = ?", middleware.MemberID(c)).
		Order("inv_date DESC").Find(&investments).Error
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"investments": investments,
		"total_count": len(investments),
	}})
}
