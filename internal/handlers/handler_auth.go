package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pocketfin/pocket_finance_app/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_app/internal/dto"
	"github.com/pocketfin/pocket_finance_app/internal/middleware"
)

// authHandler handles the app-lock setup and unlock endpoints.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes registers the public app-lock routes.
func registerAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade, loginLimiter gin.HandlerFunc) {
	h := newAuthHandler(authService)

	auth := rg.Group("/auth")
	{
		auth.POST("/setup", h.setupPasscode)
		auth.POST("/login", loginLimiter, h.login)
	}
}

// setupPasscode godoc
// @Summary Set the app-lock passcode
// @Description One-time setup; fails once a passcode already exists
// @Tags auth
// @Accept json
// @Produce json
// @Param setup body dto.SetupPasscodeRequest true "Passcode"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid passcode or already set"
// @Router /auth/setup [post]
func (h *authHandler) setupPasscode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetupPasscodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setupPasscode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.authService.SetupPasscode(c.Request.Context(), req.Passcode); err != nil {
		respondServiceError(c, err, "Failed to set passcode")
		return
	}
	c.Status(http.StatusNoContent)
}

// login godoc
// @Summary Unlock the app with the passcode
// @Description Verifies the passcode and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Passcode"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string "Wrong passcode"
// @Failure 429 {object} map[string]string "Too many attempts"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	token, expiresAt, err := h.authService.Login(c.Request.Context(), req.Passcode)
	if err != nil {
		respondServiceError(c, err, "Failed to unlock")
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}
