package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker/internal/constants"
	"github.com/yukikurage/project-tracker/internal/dto"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
	"github.com/yukikurage/project-tracker/internal/services"
)

const invalidCredentialsMessage = "Invalid username and/or password"

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type registerRequest struct {
	Username     string `form:"username" json:"username" binding:"notblank,max=50"`
	Password     string `form:"password" json:"password" binding:"required"`
	Confirmation string `form:"confirmation" json:"confirmation" binding:"eqfield=Password"`
}

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"notblank"`
	Password string `form:"password" json:"password" binding:"required"`
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	page(c, http.StatusOK, "register.html", "Register", nil)
}

// Register creates a new user and sends them to the login page.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err, "/register")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username:     req.Username,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		respondServiceError(c, err, "/register")
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	done(c, http.StatusCreated, dto.ToUserDTO(*user), "/login", "Registered. Please log in.")
}

// ShowLogin forgets any logged-in user and renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	session := sessions.Default(c)
	flashes := takeFlashes(session)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to reset session")
		return
	}

	page(c, http.StatusOK, "login.html", "Log In", gin.H{
		"Flashes":  flashes,
		"LoggedIn": false,
	})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err, "/login")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			slog.Warn("login failed", "username", req.Username, "reason", err.Error(), "ip", c.ClientIP())
			if apierrors.WantsJSON(c) {
				apierrors.InvalidCredentials(c, invalidCredentialsMessage)
				return
			}
			redirectWithFlash(c, "/login", invalidCredentialsMessage)
			return
		}
		respondServiceError(c, err, "/login")
		return
	}

	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	done(c, http.StatusOK, dto.ToUserDTO(*user), "/", "")
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	done(c, http.StatusOK, gin.H{"message": "Logged out successfully"}, "/login", "")
}
