package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker/internal/constants"
	"github.com/yukikurage/project-tracker/internal/repository"
	"github.com/yukikurage/project-tracker/internal/services"
	"github.com/yukikurage/project-tracker/internal/testutil"
	"github.com/yukikurage/project-tracker/internal/web"
)

var testNow = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db             *gorm.DB
	store          *testutil.MemoryStore
	authService    *services.AuthService
	projectService *services.ProjectService
	teamService    *services.TeamService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	store := testutil.NewMemoryStore()
	personRepo := repository.NewPersonRepository(db)

	return &testEnv{
		db:          db,
		store:       store,
		authService: services.NewAuthService(repository.NewUserRepository(db)).WithHashCost(bcrypt.MinCost),
		projectService: services.NewProjectService(repository.NewProjectRepository(db), personRepo).
			WithClock(func() time.Time { return testNow }),
		teamService: services.NewTeamService(personRepo, store),
	}
}

// newEngine returns an engine with sessions and templates installed. A
// non-zero userID stands in for RequireAuth.
func newEngine(t *testing.T, userID uint64) *gin.Engine {
	t.Helper()
	r := gin.New()
	require.NoError(t, web.LoadTemplates(r))
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	if userID != 0 {
		r.Use(func(c *gin.Context) {
			c.Set(constants.ContextKeyUserID, userID)
			c.Next()
		})
	}
	return r
}

func serveJSON(r http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func serveForm(r http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func serveHTML(r http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
