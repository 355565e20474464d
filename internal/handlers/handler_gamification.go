package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pocketfin/pocket_finance_app/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_app/internal/dto"
)

// gamificationHandler serves the streak/badge/level profile.
type gamificationHandler struct {
	gamificationService portssvc.GamificationSvcFacade
}

func registerGamificationRoutes(rg *gin.RouterGroup, gs portssvc.GamificationSvcFacade) {
	h := &gamificationHandler{gamificationService: gs}
	rg.GET("/gamification/profile", h.profile)
}

// profile godoc
// @Summary Get the gamification profile
// @Description Returns points, level, streaks and earned badges for this device
// @Tags gamification
// @Produce json
// @Success 200 {object} dto.GamificationProfileResponse
// @Security BearerAuth
// @Router /gamification/profile [get]
func (h *gamificationHandler) profile(c *gin.Context) {
	profile, err := h.gamificationService.Profile(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to load gamification profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToGamificationProfileResponse(profile))
}
