package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker/internal/dto"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
	"github.com/yukikurage/project-tracker/internal/middleware"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/services"
	"github.com/yukikurage/project-tracker/internal/utils"
	"github.com/yukikurage/project-tracker/internal/web"
)

// deadlineLayouts are tried in order when parsing a submitted deadline.
var deadlineLayouts = []string{time.RFC3339, web.DeadlineInputLayout, "2006-01-02"}

// ProjectHandler serves the project pages.
type ProjectHandler struct {
	projectService *services.ProjectService
	teamService    *services.TeamService
	drafter        *services.ProjectDrafter
}

// NewProjectHandler creates a new ProjectHandler. drafter may be nil.
func NewProjectHandler(projectService *services.ProjectService, teamService *services.TeamService, drafter *services.ProjectDrafter) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		teamService:    teamService,
		drafter:        drafter,
	}
}

type createProjectRequest struct {
	Name        string   `form:"name" json:"name" binding:"notblank"`
	Description string   `form:"description" json:"description"`
	Deadline    string   `form:"deadline" json:"deadline" binding:"notblank"`
	Priority    string   `form:"priority" json:"priority" binding:"required"`
	Members     []uint64 `form:"members" json:"members"`
}

type projectActionRequest struct {
	Action string `form:"action" json:"action"`
}

type draftRequest struct {
	Name  string `json:"name" form:"name"`
	Notes string `json:"notes" form:"notes"`
}

// ListProjects shows the caller's projects with their derived status.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	projects, total, err := h.projectService.ListProjects(services.ListProjectsInput{
		OwnerID: userID,
		Status:  c.Query("status"),
		Page:    params,
	})
	if err != nil {
		respondServiceError(c, err, "/projects")
		return
	}

	resp := dto.ToProjectListResponse(projects, h.projectService.Now(), params, total)
	respond(c, http.StatusOK, "projects.html", "Projects", gin.H{
		"Projects":   resp.Projects,
		"Pagination": resp.Pagination,
		"Query":      c.Request.URL.Query(),
	}, resp)
}

// ShowAddProject renders the new project form with the caller's team.
func (h *ProjectHandler) ShowAddProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	persons, _, err := h.teamService.ListMembers(userID, utils.PaginationParams{})
	if err != nil {
		respondServiceError(c, err, "/projects")
		return
	}

	members := make([]dto.PersonDTO, len(persons))
	for i, p := range persons {
		members[i] = dto.ToPersonDTO(p)
	}

	respond(c, http.StatusOK, "add_project.html", "Add Project", gin.H{
		"Members":    members,
		"Priorities": []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh},
	}, gin.H{"members": members})
}

// AddProject creates a project with its team.
func (h *ProjectHandler) AddProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req createProjectRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err, "/addproject")
		return
	}

	deadline, ok := parseDeadline(req.Deadline)
	if !ok {
		respondServiceError(c, services.ErrDeadlineMissing, "/addproject")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Deadline:    deadline,
		Priority:    req.Priority,
		MemberIDs:   req.Members,
	})
	if err != nil {
		respondServiceError(c, err, "/addproject")
		return
	}

	done(c, http.StatusCreated, dto.ToProjectDTO(*project, h.projectService.Now()), "/projects", "Project created")
}

// ViewProject shows a project loaded by RequireProjectOwner.
func (h *ProjectHandler) ViewProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	view := dto.ToProjectDTO(*project, h.projectService.Now())
	respond(c, http.StatusOK, "view_project.html", project.Name, gin.H{"Project": view}, view)
}

// UpdateProject completes or deletes a project depending on the action field.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	var req projectActionRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	switch strings.ToLower(req.Action) {
	case "complete":
		if err := h.projectService.CompleteProject(userID, project.ID); err != nil {
			respondServiceError(c, err, c.Request.URL.RequestURI())
			return
		}
		done(c, http.StatusOK, gin.H{"message": "Project marked complete"}, c.Request.URL.RequestURI(), "Project marked complete")
	case "delete":
		if err := h.projectService.DeleteProject(userID, project.ID); err != nil {
			respondServiceError(c, err, c.Request.URL.RequestURI())
			return
		}
		done(c, http.StatusOK, gin.H{"message": "Project deleted"}, "/projects", "Project deleted")
	default:
		respondServiceError(c, services.ErrUnknownAction, c.Request.URL.RequestURI())
	}
}

// DraftDescription suggests a project description from a name and notes.
func (h *ProjectHandler) DraftDescription(c *gin.Context) {
	if !h.drafter.Enabled() {
		apierrors.ServiceUnavailable(c, "Description drafting is not configured")
		return
	}

	var req draftRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	description, err := h.drafter.DraftDescription(ctx, req.Name, req.Notes)
	if err != nil {
		if services.IsValidation(err) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		respondServiceError(c, err, "/addproject")
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": description})
}

func parseDeadline(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
