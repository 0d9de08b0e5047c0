package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"expenshare/internal/export"
	"expenshare/internal/services"
	"expenshare/internal/stats"
)

// ExportHandler streams project reports in downloadable formats
type ExportHandler struct {
	projectService  services.ProjectServicer
	categoryService services.CategoryServicer
	userService     services.UserServicer
	settingsService services.SettingsServicer
	statsService    *stats.Service
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(
	projectService services.ProjectServicer,
	categoryService services.CategoryServicer,
	userService services.UserServicer,
	settingsService services.SettingsServicer,
	statsService *stats.Service,
) *ExportHandler {
	return &ExportHandler{
		projectService:  projectService,
		categoryService: categoryService,
		userService:     userService,
		settingsService: settingsService,
		statsService:    statsService,
	}
}

// ExportCSV streams a project's transactions as CSV
// @Summary     Export CSV
// @Description Download a project's transactions as a CSV file
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       currency query string false "Include the Devise column (true/false, default true)"
// @Success     200 {string} string "CSV payload"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /projects/{id}/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	projectID := c.Param("id")

	project, err := h.projectService.GetProjectByID(userID, projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetProjectCategories(userID, projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projectStats, err := h.statsService.ProjectStats(userID, projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eurToCFA, eurToUSD, err := h.settingsService.ResolveRates(projectID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	userNames, err := h.memberNames(userID, projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows := export.BuildRows(projectStats.Transactions, categories, project, userNames,
		stats.Rates{EURToCFA: eurToCFA, EURToUSD: eurToUSD})

	includeCurrency := c.DefaultQuery("currency", "true") != "false"

	setDownloadHeaders(c, project.Name, "csv", "text/csv; charset=utf-8")
	if err := export.WriteCSV(c.Writer, rows, includeCurrency); err != nil {
		respondWithError(c, err)
		return
	}
}

// ExportXLSX streams a project report workbook
// @Summary     Export XLSX
// @Description Download a project's summary report as an XLSX workbook
// @Tags        export
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     200 {string} string "XLSX payload"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /projects/{id}/export/xlsx [get]
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	projectID := c.Param("id")

	project, err := h.projectService.GetProjectByID(userID, projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projectStats, err := h.statsService.ProjectStats(userID, projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	setDownloadHeaders(c, project.Name, "xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := export.WriteXLSX(c.Writer, project.Name, projectStats); err != nil {
		respondWithError(c, err)
		return
	}
}

// memberNames maps user IDs to display names for the project's participants.
// The project creator may predate the membership table, so the creator is
// resolved separately.
func (h *ExportHandler) memberNames(userID, projectID string) (map[string]string, error) {
	members, err := h.projectService.ListMembers(userID, projectID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(members))
	for _, member := range members {
		user, err := h.userService.GetUserByID(member.UserID)
		if err != nil {
			continue
		}
		names[member.UserID] = user.Name
	}
	return names, nil
}

// setDownloadHeaders marks the response as an attachment with a
// filesystem-safe filename.
func setDownloadHeaders(c *gin.Context, projectName, extension, contentType string) {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, projectName)
	if safe == "" {
		safe = "projet"
	}

	filename := fmt.Sprintf("export_%s_%s.%s", safe, time.Now().Format("2006-01-02"), extension)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
}
