// Package router wires services, handlers and middleware into a gin engine.
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker/internal/config"
	"github.com/yukikurage/project-tracker/internal/constants"
	"github.com/yukikurage/project-tracker/internal/handlers"
	"github.com/yukikurage/project-tracker/internal/logger"
	"github.com/yukikurage/project-tracker/internal/middleware"
	"github.com/yukikurage/project-tracker/internal/repository"
	"github.com/yukikurage/project-tracker/internal/services"
	"github.com/yukikurage/project-tracker/internal/storage"
	"github.com/yukikurage/project-tracker/internal/web"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Store  storage.Store
	// SessionStore overrides the store selected by Config.Session.Store.
	SessionStore sessions.Store
	// Now overrides the clock used for creation timestamps and derived status.
	Now func() time.Time
}

// New builds the application's gin engine.
func New(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config

	store := deps.SessionStore
	if store == nil {
		var err error
		store, err = NewSessionStore(cfg)
		if err != nil {
			return nil, err
		}
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.IsRelease(),
		SameSite: http.SameSiteLaxMode,
	})

	userRepo := repository.NewUserRepository(deps.DB)
	personRepo := repository.NewPersonRepository(deps.DB)
	projectRepo := repository.NewProjectRepository(deps.DB)

	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, personRepo)
	if deps.Now != nil {
		projectService.WithClock(deps.Now)
	}
	teamService := services.NewTeamService(personRepo, deps.Store)
	drafter := services.NewProjectDrafter(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService, teamService, drafter)
	teamHandler := handlers.NewTeamHandler(teamService, cfg.Storage.MaxUploadBytes, projectService.Now)

	r := gin.New()
	r.Use(logger.Middleware(), gin.Recovery(), middleware.NoCache())
	if len(cfg.Server.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.MaxMultipartMemory = cfg.Storage.MaxUploadBytes

	if err := web.LoadTemplates(r); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	r.GET("/health", handlers.Health)

	// Public routes
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected routes
	app := r.Group("/")
	app.Use(middleware.RequireAuth(authService))
	{
		app.GET("/", handlers.Index)

		app.GET("/projects", projectHandler.ListProjects)
		app.GET("/addproject", projectHandler.ShowAddProject)
		app.POST("/addproject", projectHandler.AddProject)
		app.POST("/addproject/draft", projectHandler.DraftDescription)
		app.GET("/viewproject", middleware.RequireProjectOwner(projectService), projectHandler.ViewProject)
		app.POST("/viewproject", middleware.RequireProjectOwner(projectService), projectHandler.UpdateProject)

		app.GET("/team", teamHandler.ListTeam)
		app.GET("/addmember", teamHandler.ShowAddMember)
		app.POST("/addmember", teamHandler.AddMember)
		app.GET("/viewmember", middleware.RequirePersonOwner(teamService), teamHandler.ViewMember)
		app.POST("/viewmember", middleware.RequirePersonOwner(teamService), teamHandler.UpdateMember)
		app.GET("/viewmember/picture", middleware.RequirePersonOwner(teamService), teamHandler.MemberPicture)
	}

	return r, nil
}

// NewSessionStore returns the session backend selected by the configuration.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	secret := []byte(cfg.Session.Secret)

	switch cfg.Session.Store {
	case "redis":
		store, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			cfg.RedisAddr(),
			"", // username (empty for default user)
			cfg.Session.RedisPassword,
			secret,
		)
		if err != nil {
			return nil, fmt.Errorf("create redis session store: %w", err)
		}
		return store, nil
	case "cookie", "":
		return cookie.NewStore(secret), nil
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}
}
