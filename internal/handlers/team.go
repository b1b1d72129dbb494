package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker/internal/dto"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
	"github.com/yukikurage/project-tracker/internal/middleware"
	"github.com/yukikurage/project-tracker/internal/services"
	"github.com/yukikurage/project-tracker/internal/utils"
)

// TeamHandler serves the team member pages.
type TeamHandler struct {
	teamService    *services.TeamService
	maxUploadBytes int64
	now            func() time.Time
}

// NewTeamHandler creates a new TeamHandler. now is used to derive the status
// of a member's projects.
func NewTeamHandler(teamService *services.TeamService, maxUploadBytes int64, now func() time.Time) *TeamHandler {
	if now == nil {
		now = time.Now
	}
	return &TeamHandler{
		teamService:    teamService,
		maxUploadBytes: maxUploadBytes,
		now:            now,
	}
}

type addMemberRequest struct {
	FirstName  string `form:"first_name" json:"first_name" binding:"notblank"`
	LastName   string `form:"last_name" json:"last_name" binding:"notblank"`
	Email      string `form:"email" json:"email" binding:"required,email"`
	EmployeeID string `form:"employee_id" json:"employee_id" binding:"notblank"`
}

type memberActionRequest struct {
	Action string `form:"action" json:"action"`
}

// ListTeam shows the caller's team members.
func (h *TeamHandler) ListTeam(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	persons, total, err := h.teamService.ListMembers(userID, params)
	if err != nil {
		respondServiceError(c, err, "/team")
		return
	}

	resp := dto.ToPersonListResponse(persons, params, total)
	respond(c, http.StatusOK, "team.html", "Team", gin.H{
		"Persons":    resp.Persons,
		"Pagination": resp.Pagination,
		"Query":      c.Request.URL.Query(),
	}, resp)
}

// ShowAddMember renders the new member form.
func (h *TeamHandler) ShowAddMember(c *gin.Context) {
	page(c, http.StatusOK, "add_member.html", "Add Team Member", nil)
}

// AddMember creates a team member with an optional profile picture.
func (h *TeamHandler) AddMember(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)

	var req addMemberRequest
	if err := c.ShouldBind(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondServiceError(c, services.ErrPictureTooLarge, "/addmember")
			return
		}
		respondBindError(c, err, "/addmember")
		return
	}

	input := services.AddMemberInput{
		OwnerID:    userID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		EmployeeID: req.EmployeeID,
	}

	fh, err := c.FormFile("picture")
	switch {
	case err == nil:
		if fh.Size > h.maxUploadBytes {
			respondServiceError(c, services.ErrPictureTooLarge, "/addmember")
			return
		}
		f, err := fh.Open()
		if err != nil {
			apierrors.BadRequest(c, "Could not read profile picture")
			return
		}
		defer f.Close()
		if fh.Size > 0 {
			input.Picture = f
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		apierrors.BadRequest(c, "Could not read profile picture")
		return
	}

	person, err := h.teamService.AddMember(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "/addmember")
		return
	}

	done(c, http.StatusCreated, dto.ToPersonDTO(*person), "/team", "Team member added")
}

// ViewMember shows a team member loaded by RequirePersonOwner.
func (h *TeamHandler) ViewMember(c *gin.Context) {
	person, ok := middleware.GetPerson(c)
	if !ok {
		apierrors.NotFound(c, "Team member not found")
		return
	}

	view := dto.ToPersonDetailDTO(*person, h.now())
	respond(c, http.StatusOK, "view_member.html", person.FullName(), gin.H{"Person": view}, view)
}

// UpdateMember handles actions on a team member. Only delete is supported.
func (h *TeamHandler) UpdateMember(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	person, ok := middleware.GetPerson(c)
	if !ok {
		apierrors.NotFound(c, "Team member not found")
		return
	}

	var req memberActionRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Action != "delete" {
		respondServiceError(c, services.ErrUnknownAction, c.Request.URL.RequestURI())
		return
	}

	if err := h.teamService.RemoveMember(c.Request.Context(), userID, person.ID); err != nil {
		respondServiceError(c, err, c.Request.URL.RequestURI())
		return
	}

	done(c, http.StatusOK, gin.H{"message": "Team member removed"}, "/team", "Team member removed")
}

// MemberPicture streams a team member's profile picture.
func (h *TeamHandler) MemberPicture(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	person, ok := middleware.GetPerson(c)
	if !ok {
		apierrors.NotFound(c, "Team member not found")
		return
	}

	rc, err := h.teamService.OpenPicture(c.Request.Context(), userID, person.ID)
	if err != nil {
		respondServiceError(c, err, "/team")
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		_ = c.Error(err)
	}
}
