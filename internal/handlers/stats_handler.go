package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expenshare/internal/errors"
	"expenshare/internal/models"
	"expenshare/internal/stats"
)

// StatsHandler handles statistics requests
type StatsHandler struct {
	statsService *stats.Service
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *stats.Service) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetGlobalStats returns the cross-project dashboard aggregates
// @Summary     Global statistics
// @Description Aggregate totals, balance, and monthly series across all of the user's projects
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} stats.GlobalStats "Global statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /stats [get]
func (h *StatsHandler) GetGlobalStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": h.statsService.GlobalStats(userID)})
}

// GetProjectStats returns a project's aggregates
// @Summary     Project statistics
// @Description Totals, balance, and per-category breakdowns for a project in its display currency
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     200 {object} stats.ProjectStats "Project statistics"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id}/stats [get]
func (h *StatsHandler) GetProjectStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.statsService.ProjectStats(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": result})
}

// GetCategoryHierarchy returns the rolled-up category forest
// @Summary     Category hierarchy
// @Description Category tree with per-node rolled-up totals for the drill-down view
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       type query string false "Transaction type (expense/budget), defaults to expense"
// @Success     200 {array} stats.Node "Category hierarchy"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     422 {object} ErrorResponse "Corrupt category data"
// @Router      /projects/{id}/stats/hierarchy [get]
func (h *StatsHandler) GetCategoryHierarchy(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txType := models.TransactionType(c.DefaultQuery("type", string(models.TransactionTypeExpense)))
	if txType != models.TransactionTypeExpense && txType != models.TransactionTypeBudget {
		respondWithError(c, apperrors.ErrInvalidTransactionType)
		return
	}

	forest, err := h.statsService.ProjectCategoryHierarchy(userID, c.Param("id"), txType)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if forest == nil {
		forest = []*stats.Node{}
	}

	c.JSON(http.StatusOK, gin.H{"hierarchy": forest})
}
