package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expenshare/internal/services"
)

// AdminHandler handles administration requests. Routes using it sit behind the
// admin middleware, so every caller is already a verified administrator.
type AdminHandler struct {
	userService    services.UserServicer
	projectService services.ProjectServicer
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userService services.UserServicer, projectService services.ProjectServicer) *AdminHandler {
	return &AdminHandler{userService: userService, projectService: projectService}
}

// ListUsers returns every registered user
// @Summary     List users
// @Description List all registered users (admin only)
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.User "Users"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// DeleteUser removes a user and reassigns their data to the admin account
// @Summary     Delete user
// @Description Delete a user; their projects and transactions transfer to the admin account
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     409 {object} ErrorResponse "Admin accounts cannot be deleted"
// @Router      /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(adminID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ListProjects returns every project in the system
// @Summary     List all projects
// @Description List every project regardless of ownership (admin only)
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Project "Projects"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /admin/projects [get]
func (h *AdminHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListAllProjects()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}
