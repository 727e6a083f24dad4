package handlers

import (
	"strconv"

	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/database"
	"github.com/babydan/binary_backend/jobs"
	"github.com/babydan/binary_backend/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminSettlePairing re-runs binary settlement for one member, for manual
// correction after support cases. The normal path settles only inside purchase.
func AdminSettlePairing(c *fiber.Ctx) error {
	memberID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || memberID == 0 {
		return badRequest(c, "invalid member id")
	}

	cfg := config.LoadSettings()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return services.SettleBinary(tx, cfg, uint(memberID))
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Settlement executed"})
}

// AdminRunEarningsCapSweep triggers the cap sweep outside its daily schedule.
func AdminRunEarningsCapSweep(c *fiber.Ctx) error {
	result := jobs.RunEarningsCapCheck(database.DB, config.LoadSettings())
	return c.JSON(fiber.Map{"success": true, "data": result})
}
