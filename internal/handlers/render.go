package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/project-tracker/internal/constants"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
	"github.com/yukikurage/project-tracker/internal/middleware"
	"github.com/yukikurage/project-tracker/internal/services"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		services.RegisterValidations(v)
	}
}

// page renders an HTML template with the title, pending flash messages and
// the logged-in user every page expects.
func page(c *gin.Context, code int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title

	session := sessions.Default(c)
	if _, ok := data["Flashes"]; !ok {
		data["Flashes"] = takeFlashes(session)
	}
	if _, ok := data["LoggedIn"]; !ok {
		data["LoggedIn"] = session.Get(constants.ContextKeyUserID) != nil
	}
	if user, ok := middleware.GetUser(c); ok {
		data["Username"] = user.Username
	}

	c.HTML(code, name, data)
}

// respond writes body as JSON for API clients and renders the named page
// otherwise.
func respond(c *gin.Context, code int, name, title string, data gin.H, body any) {
	if apierrors.WantsJSON(c) {
		c.JSON(code, body)
		return
	}
	page(c, code, name, title, data)
}

// done finishes a successful mutation: JSON clients get body, browsers are
// redirected to location with an optional flash.
func done(c *gin.Context, code int, body any, location, flash string) {
	if apierrors.WantsJSON(c) {
		c.JSON(code, body)
		return
	}
	redirectWithFlash(c, location, flash)
}

func redirectWithFlash(c *gin.Context, location, flash string) {
	if flash != "" {
		session := sessions.Default(c)
		session.AddFlash(flash)
		if err := session.Save(); err != nil {
			slog.Error("failed to save flash", "err", err)
		}
	}
	c.Redirect(http.StatusFound, location)
}

func takeFlashes(session sessions.Session) []string {
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		slog.Error("failed to consume flashes", "err", err)
	}

	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// respondServiceError maps a service error to a response. Validation errors
// send browsers back to form with the message flashed.
func respondServiceError(c *gin.Context, err error, form string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		if apierrors.WantsJSON(c) {
			apierrors.BadRequest(c, verr.Error())
			return
		}
		redirectWithFlash(c, form, verr.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrPersonNotFound),
		errors.Is(err, services.ErrPictureNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDrafterDisabled):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		slog.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

// respondBindError reports a request that failed binding. Failed field checks
// are shown with the same messages the services use.
func respondBindError(c *gin.Context, err error, form string) {
	if verr := services.FieldError(err); verr != nil {
		respondServiceError(c, verr, form)
		return
	}
	apierrors.BadRequest(c, "Invalid request body")
}
