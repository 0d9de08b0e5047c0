package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expenshare/internal/errors"
	"expenshare/internal/models"
	"expenshare/internal/services"
)

// ProjectHandler handles project and membership requests
type ProjectHandler struct {
	projectService services.ProjectServicer
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService services.ProjectServicer) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents the request payload for creating a project
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Icon        string `json:"icon" binding:"max=50"`
	Color       string `json:"color" binding:"omitempty,hex_color"`
	Currency    string `json:"currency" binding:"omitempty,currency"`
}

// UpdateProjectRequest represents the request payload for updating a project
type UpdateProjectRequest struct {
	Name        string  `json:"name" binding:"max=100"`
	Description string  `json:"description" binding:"max=500"`
	Icon        string  `json:"icon" binding:"max=50"`
	Color       string  `json:"color" binding:"omitempty,hex_color"`
	Currency    *string `json:"currency" binding:"omitempty,currency"`
}

// AddMemberRequest represents the request payload for adding a project member
type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role" binding:"omitempty,member_role"`
}

// UpdateMemberRequest represents the request payload for changing a member role
type UpdateMemberRequest struct {
	Role string `json:"role" binding:"required,member_role"`
}

// CreateProject handles the creation of a new project
// @Summary     Create a project
// @Description Create a new project owned by the authenticated user
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProjectRequest true "Project details"
// @Success     201 {object} models.Project "Project created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate project name"
// @Router      /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	project, err := h.projectService.CreateProject(
		userID, req.Name, req.Description, req.Icon, req.Color, models.Currency(req.Currency))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": project})
}

// GetUserProjects lists projects the caller owns or belongs to
// @Summary     List projects
// @Description List all projects the authenticated user owns or is a member of
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Project "Projects"
// @Router      /projects [get]
func (h *ProjectHandler) GetUserProjects(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projects, err := h.projectService.GetUserProjects(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProjectByID returns a single project
// @Summary     Get project
// @Description Get a project by ID
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     200 {object} models.Project "Project"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id} [get]
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	project, err := h.projectService.GetProjectByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// UpdateProject updates project fields
// @Summary     Update project
// @Description Update an existing project (owner only)
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       request body UpdateProjectRequest true "Fields to update"
// @Success     200 {object} models.Project "Updated project"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var currency *models.Currency
	if req.Currency != nil {
		cur := models.Currency(*req.Currency)
		currency = &cur
	}

	project, err := h.projectService.UpdateProject(
		userID, c.Param("id"), req.Name, req.Description, req.Icon, req.Color, currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// DeleteProject removes a project and all of its data
// @Summary     Delete project
// @Description Delete a project with its categories, transactions, and notes (owner only)
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.projectService.DeleteProject(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// AddMember adds a user to a project
// @Summary     Add member
// @Description Add a user to a project as member or viewer (owner only)
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       request body AddMemberRequest true "Member details"
// @Success     201 {object} models.ProjectUser "Membership created"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     409 {object} ErrorResponse "Already a member"
// @Router      /projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.projectService.AddMember(userID, c.Param("id"), req.UserID, models.MemberRole(req.Role))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// ListMembers lists project memberships
// @Summary     List members
// @Description List the members of a project
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     200 {array} models.ProjectUser "Members"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Router      /projects/{id}/members [get]
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	members, err := h.projectService.ListMembers(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// UpdateMemberRole changes a member's role
// @Summary     Update member role
// @Description Change a member's role between member and viewer (owner only)
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       userId path string true "User ID"
// @Param       request body UpdateMemberRequest true "New role"
// @Success     200 {object} models.ProjectUser "Updated membership"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     409 {object} ErrorResponse "Owner role is immutable"
// @Router      /projects/{id}/members/{userId} [put]
func (h *ProjectHandler) UpdateMemberRole(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.projectService.UpdateMemberRole(
		userID, c.Param("id"), c.Param("userId"), models.MemberRole(req.Role))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

// RemoveMember removes a member from a project
// @Summary     Remove member
// @Description Remove a member from a project (owner only; the owner cannot be removed)
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       userId path string true "User ID"
// @Success     200 {object} map[string]string "Removal confirmation"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     409 {object} ErrorResponse "Owner cannot be removed"
// @Router      /projects/{id}/members/{userId} [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.projectService.RemoveMember(userID, c.Param("id"), c.Param("userId")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
