package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pocketfin/pocket_finance_app/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_app/internal/dto"
	"github.com/pocketfin/pocket_finance_app/internal/middleware"
)

// goalHandler handles HTTP requests related to savings goals.
type goalHandler struct {
	goalService portssvc.SavingsGoalSvcFacade
}

func newGoalHandler(gs portssvc.SavingsGoalSvcFacade) *goalHandler {
	return &goalHandler{goalService: gs}
}

// registerGoalRoutes registers routes related to savings goals.
func registerGoalRoutes(rg *gin.RouterGroup, goalService portssvc.SavingsGoalSvcFacade) {
	h := newGoalHandler(goalService)

	goals := rg.Group("/goals")
	{
		goals.POST("", h.createGoal)
		goals.GET("", h.listGoals)
		goals.GET("/:id", h.getGoal)
		goals.PATCH("/:id", h.updateGoal)
		goals.DELETE("/:id", h.deleteGoal)
		goals.POST("/:id/contributions", h.contribute)
	}
}

// createGoal godoc
// @Summary Create a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Param goal body dto.CreateSavingsGoalRequest true "Goal details"
// @Success 201 {object} dto.SavingsGoalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /goals [post]
func (h *goalHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createGoal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.goalService.CreateSavingsGoal(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create savings goal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSavingsGoalResponse(goal))
}

// listGoals godoc
// @Summary List all savings goals
// @Tags goals
// @Produce json
// @Success 200 {array} dto.SavingsGoalResponse
// @Security BearerAuth
// @Router /goals [get]
func (h *goalHandler) listGoals(c *gin.Context) {
	goals, err := h.goalService.ListSavingsGoals(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list savings goals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSavingsGoalResponse(goals))
}

// getGoal godoc
// @Summary Get a savings goal by ID
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{id} [get]
func (h *goalHandler) getGoal(c *gin.Context) {
	goal, err := h.goalService.GetSavingsGoalByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve savings goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// updateGoal godoc
// @Summary Patch a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param goal body dto.UpdateSavingsGoalRequest true "Fields to update"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{id} [patch]
func (h *goalHandler) updateGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateGoal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.goalService.UpdateSavingsGoal(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update savings goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// deleteGoal godoc
// @Summary Delete a savings goal
// @Tags goals
// @Param id path string true "Goal ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{id} [delete]
func (h *goalHandler) deleteGoal(c *gin.Context) {
	if err := h.goalService.DeleteSavingsGoal(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete savings goal")
		return
	}
	c.Status(http.StatusNoContent)
}

// contribute godoc
// @Summary Add money toward a savings goal
// @Description Increases the saved amount and logs a matching savings transaction
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param contribution body dto.ContributeRequest true "Contribution amount"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 400 {object} map[string]string "Non-positive amount"
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{id}/contributions [post]
func (h *goalHandler) contribute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for contribute", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.goalService.Contribute(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		respondServiceError(c, err, "Failed to record contribution")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}
