package middleware

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker/internal/constants"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/services"
)

// ProjectLoader loads a project on behalf of a user.
type ProjectLoader interface {
	GetProject(ownerID, projectID uint64) (*models.Project, error)
}

// PersonLoader loads a team member on behalf of a user.
type PersonLoader interface {
	GetMember(ownerID, personID uint64) (*models.Person, error)
}

// RequireProjectOwner loads the project named by the id parameter and aborts
// with 404 if it does not exist or 403 if another user owns it.
func RequireProjectOwner(loader ProjectLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, id, ok := ownerAndID(c, "Invalid project ID")
		if !ok {
			return
		}

		project, err := loader.GetProject(userID, id)
		if err != nil {
			abortOwnership(c, err, "Project not found", "You do not have access to this project")
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// RequirePersonOwner loads the team member named by the id parameter and
// aborts with 404 if they do not exist or 403 if another user owns them.
func RequirePersonOwner(loader PersonLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, id, ok := ownerAndID(c, "Invalid team member ID")
		if !ok {
			return
		}

		person, err := loader.GetMember(userID, id)
		if err != nil {
			abortOwnership(c, err, "Team member not found", "You do not have access to this team member")
			return
		}

		c.Set(constants.ContextKeyPerson, person)
		c.Next()
	}
}

// GetProject returns the project loaded by RequireProjectOwner.
func GetProject(c *gin.Context) (*models.Project, bool) {
	v, ok := c.Get(constants.ContextKeyProject)
	if !ok {
		return nil, false
	}
	project, ok := v.(*models.Project)
	return project, ok
}

// GetPerson returns the team member loaded by RequirePersonOwner.
func GetPerson(c *gin.Context) (*models.Person, bool) {
	v, ok := c.Get(constants.ContextKeyPerson)
	if !ok {
		return nil, false
	}
	person, ok := v.(*models.Person)
	return person, ok
}

// ParseID reads the id from the query string, falling back to the form body.
func ParseID(c *gin.Context) (uint64, error) {
	raw := c.Query("id")
	if raw == "" {
		raw = c.PostForm("id")
	}
	return strconv.ParseUint(raw, 10, 64)
}

func ownerAndID(c *gin.Context, invalidMsg string) (uint64, uint64, bool) {
	userID, exists := GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		c.Abort()
		return 0, 0, false
	}

	id, err := ParseID(c)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, invalidMsg)
		c.Abort()
		return 0, 0, false
	}

	return userID, id, true
}

func abortOwnership(c *gin.Context, err error, notFoundMsg, forbiddenMsg string) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound), errors.Is(err, services.ErrPersonNotFound):
		apierrors.NotFound(c, notFoundMsg)
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, forbiddenMsg)
	default:
		slog.Error("ownership check failed", "path", c.Request.URL.Path, "err", err)
		apierrors.InternalError(c, "")
	}
	c.Abort()
}
