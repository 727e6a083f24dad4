package handlers

import (
	"strconv"

	"github.com/babydan/binary_backend/database"
	"github.com/babydan/binary_backend/middleware"
	"github.com/babydan/binary_backend/models"
	"github.com/babydan/binary_backend/services"
	"github.com/gofiber/fiber/v2"
)

const maxTeamDepth = 10

func GetTeam(c *fiber.Ctx) error {
	memberID := middleware.MemberID(c)
	db := database.DB

	depth := maxTeamDepth
	if v, err := strconv.Atoi(c.Query("depth")); err == nil {
		if v < 0 {
			v = 0
		}
		if v > maxTeamDepth {
			v = maxTeamDepth
		}
		depth = v
	}

	var member models.Member
	if err := db.First(&member, "id = ?", memberID).Error; err != nil {
		return serviceError(c, err)
	}

	tree, err := services.BuildSubtree(db, memberID, depth)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user": fiber.Map{
				"userid":       member.ID,
				"firstname":    member.FirstName,
				"sponsor_name": services.FullName(db, member.SponsorID),
				"upline_name":  services.FullName(db, member.ParentID),
				"s_pv":         member.SelfPV,
				"l_pv":         member.LeftPV,
				"r_pv":         member.RightPV,
			},
			"tree": tree,
		},
	})
}
