package handlers

import (
	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/database"
	"github.com/babydan/binary_backend/middleware"
	"github.com/babydan/binary_backend/models"
	"github.com/babydan/binary_backend/services"
	"github.com/gofiber/fiber/v2"
)

// GetDashboard aggregates every figure the member dashboard shows. Note the
// earned figure (APR + Binary + commission) and the balance are computed
// separately and do not reconcile with the earnings cap, which runs on balance.
func GetDashboard(c *fiber.Ctx) error {
	memberID := middleware.MemberID(c)
	db := database.DB
	cfg := config.LoadSettings()

	var member models.Member
	if err := db.First(&member, "id = ?", memberID).Error; err != nil {
		return serviceError(c, err)
	}

	balance, err := services.Balance(db, memberID)
	if err != nil {
		return serviceError(c, err)
	}
	totalDeposit, err := services.TotalDeposit(db, memberID)
	if err != nil {
		return serviceError(c, err)
	}
	totalEarned, err := services.TotalEarned(db, memberID)
	if err != nil {
		return serviceError(c, err)
	}
	totalCommission, err := services.TotalCommission(db, memberID)
	if err != nil {
		return serviceError(c, err)
	}
	totalWithdraw, err := services.TotalWithdraw(db, memberID)
	if err != nil {
		return serviceError(c, err)
	}
	totalTransferIn, err := services.TotalTransferIn(db, memberID)
	if err != nil {
		return serviceError(c, err)
	}
	totalTransferOut, err := services.TotalTransferOut(db, memberID)
	if err != nil {
		return serviceError(c, err)
	}
	totalInvActive, err := services.TotalActiveInvestment(db, memberID)
	if err != nil {
		return serviceError(c, err)
	}
	totalCapAdjustments, err := services.TotalCapAdjustments(db, memberID)
	if err != nil {
		return serviceError(c, err)
	}
	totalInvUSD, err := services.TotalInvestmentUSD(db, memberID)
	if err != nil {
		return serviceError(c, err)
	}
	totalReferrals, err := services.DirectMembers(db, memberID)
	if err != nil {
		return serviceError(c, err)
	}

	var hasInvested int64
	err = db.Model(&models.Investment{}).
		Where("member_id = ? AND status = ?", memberID, models.InvestmentActive).
		Count(&hasInvested).Error
	if err != nil {
		return serviceError(c, err)
	}

	earnedPercentage := 0.0
	if totalInvUSD > 0 {
		earnedPercentage = 100 * balance / float64(services.USDToTHB(totalInvUSD, cfg))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"member": fiber.Map{
				"created_at":   member.CreatedAt,
				"has_invested": hasInvested > 0,
			},
			"balances": fiber.Map{
				"account_balance":         balance,
				"total_deposit":           totalDeposit,
				"total_earned":            totalEarned + totalCommission,
				"total_withdraw":          totalWithdraw,
				"total_investment_active": totalInvActive,
				"total_investment":        float64(totalInvUSD),
				"total_commission":        totalCommission,
				"total_transfer_in":       totalTransferIn,
				"total_transfer_out":      totalTransferOut,
				"total_cap_adjustments":   totalCapAdjustments,
				"total_referrals":         totalReferrals,
				"earned_percentage":       earnedPercentage,
			},
		},
	})
}

func GetProfile(c *fiber.Ctx) error {
	var member models.Member
	err := database.DB.First(&member, "id = ?", middleware.MemberID(c)).Error
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": member})
}

func GetRefLink(c *fiber.Ctx) error {
	var member models.Member
	err := database.DB.Select("id", "ref_code").First(&member, "id = ?", middleware.MemberID(c)).Error
	if err != nil {
		return serviceError(c, err)
	}

	baseURL := config.Config("FRONTEND_URL")
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"ref_code":   member.RefCode,
			"left_link":  services.ReferralLink(baseURL, member.RefCode, models.SideLeft),
			"right_link": services.ReferralLink(baseURL, member.RefCode, models.SideRight),
		},
	})
}

func ListReferrals(c *fiber.Ctx) error {
	var referrals []models.Member
	err := database.DB.
		Select("id", "first_name", "last_name", "profile_id", "side", "created_at").
		Where("sponsor_id = ?", middleware.MemberID(c)).
		Order("created_at DESC").Find(&referrals).Error
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"referrals":   referrals,
		"total_count": len(referrals),
	}})
}
