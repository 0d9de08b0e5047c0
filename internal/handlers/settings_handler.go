package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expenshare/internal/errors"
	"expenshare/internal/models"
	"expenshare/internal/services"
)

// SettingsHandler handles user and project preference requests
type SettingsHandler struct {
	settingsService services.SettingsServicer
	projectService  services.ProjectServicer
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsServicer, projectService services.ProjectServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, projectService: projectService}
}

// UpdateCurrencyRequest represents the request payload for setting the display currency
type UpdateCurrencyRequest struct {
	Currency string `json:"currency" binding:"required,currency"`
}

// UpdateRatesRequest represents the request payload for setting exchange rates.
// Both rates are EUR-based; omitted rates are left unchanged.
type UpdateRatesRequest struct {
	EURToCFA *float64 `json:"eur_to_cfa" binding:"omitempty,gt=0"`
	EURToUSD *float64 `json:"eur_to_usd" binding:"omitempty,gt=0"`
}

// GetCurrency returns the caller's display currency
// @Summary     Get display currency
// @Description Get the authenticated user's preferred display currency
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Currency"
// @Router      /settings/currency [get]
func (h *SettingsHandler) GetCurrency(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	currency, err := h.settingsService.UserCurrency(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currency": string(currency)})
}

// UpdateCurrency sets the caller's display currency
// @Summary     Set display currency
// @Description Set the authenticated user's preferred display currency
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateCurrencyRequest true "Currency"
// @Success     200 {object} map[string]string "Currency"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /settings/currency [put]
func (h *SettingsHandler) UpdateCurrency(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.settingsService.SetUserCurrency(userID, models.Currency(req.Currency)); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currency": req.Currency})
}

// UpdateRates sets exchange rate overrides. With a project query parameter the
// rates apply to that project (owner only), otherwise to the caller's account.
// @Summary     Set exchange rates
// @Description Override the EUR-based exchange rates for the user or a project
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       project query string false "Project ID for project-level rates"
// @Param       request body UpdateRatesRequest true "Rates"
// @Success     200 {object} map[string]float64 "Resolved rates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /settings/rates [put]
func (h *SettingsHandler) UpdateRates(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	projectID := c.Query("project")
	if projectID != "" {
		if err := h.projectService.Authorize(userID, projectID, true); err != nil {
			respondWithError(c, err)
			return
		}
		if err := h.settingsService.SetProjectRates(projectID, req.EURToCFA, req.EURToUSD); err != nil {
			respondWithError(c, err)
			return
		}
	} else {
		if err := h.settingsService.SetUserRates(userID, req.EURToCFA, req.EURToUSD); err != nil {
			respondWithError(c, err)
			return
		}
	}

	eurToCFA, eurToUSD, err := h.settingsService.ResolveRates(projectID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"eur_to_cfa": eurToCFA, "eur_to_usd": eurToUSD})
}

// GetRates returns the resolved exchange rates for the caller, optionally
// scoped to a project.
// @Summary     Get exchange rates
// @Description Resolve the effective EUR-based exchange rates for the user or a project
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Param       project query string false "Project ID for project-level rates"
// @Success     200 {object} map[string]float64 "Resolved rates"
// @Router      /settings/rates [get]
func (h *SettingsHandler) GetRates(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projectID := c.Query("project")
	if projectID != "" {
		if err := h.projectService.Authorize(userID, projectID, false); err != nil {
			respondWithError(c, err)
			return
		}
	}

	eurToCFA, eurToUSD, err := h.settingsService.ResolveRates(projectID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"eur_to_cfa": eurToCFA, "eur_to_usd": eurToUSD})
}
