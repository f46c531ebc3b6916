package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tech-booking-server/config"
	"tech-booking-server/database"
	"tech-booking-server/models"
	"tech-booking-server/services"
)

const testCookie = "session"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{URL: "sqlite://:memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func testSessions() *services.SessionService {
	return services.NewSessionService(config.SessionConfig{Secret: "test-secret", Lifetime: time.Hour})
}

func createUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{Username: name, Email: name + "@example.com", PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func countUsers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	return count
}

func TestTransactionCommitsOnSuccess(t *testing.T) {
	db := setupDB(t)
	router := gin.New()
	router.Use(Transaction(db))
	router.POST("/create", func(c *gin.Context) {
		require.NoError(t, Tx(c).Create(&models.User{Username: "ok", Email: "ok@example.com", PasswordHash: "x"}).Error)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/create", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), countUsers(t, db))
}

func TestTransactionKeepsClientErrors(t *testing.T) {
	db := setupDB(t)
	router := gin.New()
	router.Use(Transaction(db))
	router.POST("/create", func(c *gin.Context) {
		require.NoError(t, Tx(c).Create(&models.User{Username: "bad", Email: "bad@example.com", PasswordHash: "x"}).Error)
		c.JSON(http.StatusBadRequest, gin.H{"error": "nope"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/create", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(1), countUsers(t, db))
}

func TestTransactionRollsBackOnServerError(t *testing.T) {
	db := setupDB(t)
	router := gin.New()
	router.Use(Transaction(db))
	router.POST("/create", func(c *gin.Context) {
		require.NoError(t, Tx(c).Create(&models.User{Username: "gone", Email: "gone@example.com", PasswordHash: "x"}).Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/create", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, int64(0), countUsers(t, db))
}

func TestTransactionRollsBackOnPanic(t *testing.T) {
	db := setupDB(t)
	router := gin.New()
	router.Use(Recovery(), Transaction(db))
	router.POST("/create", func(c *gin.Context) {
		require.NoError(t, Tx(c).Create(&models.User{Username: "panic", Email: "panic@example.com", PasswordHash: "x"}).Error)
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/create", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error","message":"An unexpected error occurred"}`, w.Body.String())
	assert.Equal(t, int64(0), countUsers(t, db))
}

func TestTransactionCommitFailureReturnsServerError(t *testing.T) {
	db := setupDB(t)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Header("X-Request-ID", "req-1")
		c.Next()
	}, Transaction(db))
	router.POST("/book", func(c *gin.Context) {
		require.NoError(t, Tx(c).Create(&models.User{Username: "lost", Email: "lost@example.com", PasswordHash: "x"}).Error)
		// The transaction is finished here, so the commit after the handler fails.
		require.NoError(t, Tx(c).Rollback().Error)
		c.SetCookie(testCookie, "token", 3600, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"success": true, "booking_id": 1})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/book", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error","message":"An unexpected error occurred"}`, w.Body.String())
	assert.Empty(t, w.Header().Get("Set-Cookie"))
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
	assert.Equal(t, int64(0), countUsers(t, db))
}

func TestTransactionReleasesRedirectAfterCommit(t *testing.T) {
	db := setupDB(t)
	router := gin.New()
	router.Use(Transaction(db))
	router.POST("/logout", func(c *gin.Context) {
		c.SetCookie(testCookie, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/login")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), testCookie+"=")
}

func authRouter(db *gorm.DB, sessions *services.SessionService) *gin.Engine {
	router := gin.New()
	router.Use(Transaction(db))
	protected := router.Group("/", AuthRequired(sessions, testCookie))
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	protected.POST("/tech-only", RequireRole(models.RoleTechnician), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestAuthRequiredAcceptsCookieAndBearer(t *testing.T) {
	db := setupDB(t)
	sessions := testSessions()
	user := createUser(t, db, "alice", models.RoleCustomer)
	session, err := sessions.Issue(user, false)
	require.NoError(t, err)
	router := authRouter(db, sessions)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: session.Token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequiredRejectsMissingOrBadSession(t *testing.T) {
	db := setupDB(t)
	sessions := testSessions()
	router := authRouter(db, sessions)

	ghost, err := sessions.Issue(&models.User{ID: 4242, Role: models.RoleCustomer}, false)
	require.NoError(t, err)

	for name, token := range map[string]string{"missing": "", "garbage": "abc", "unknown user": ghost.Token} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.Contains(t, w.Body.String(), "Authentication required", name)
	}
}

func TestAuthRequiredRedirectsPageRequests(t *testing.T) {
	db := setupDB(t)
	router := authRouter(db, testSessions())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestRequireRole(t *testing.T) {
	db := setupDB(t)
	sessions := testSessions()
	customer := createUser(t, db, "cust", models.RoleCustomer)
	technician := createUser(t, db, "tech", models.RoleTechnician)
	router := authRouter(db, sessions)

	for _, tc := range []struct {
		user *models.User
		want int
	}{
		{customer, http.StatusForbidden},
		{technician, http.StatusOK},
	} {
		session, err := sessions.Issue(tc.user, false)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/tech-only", nil)
		req.Header.Set("Authorization", "Bearer "+session.Token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code)
		if tc.want == http.StatusForbidden {
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		}
	}
}

func TestAuthRateLimit(t *testing.T) {
	router := gin.New()
	router.POST("/login", AuthRateLimit(config.SecurityConfig{AuthRatePerMinute: 1, AuthRateBurst: 2}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestAuthRateLimitDisabled(t *testing.T) {
	router := gin.New()
	router.POST("/login", AuthRateLimit(config.SecurityConfig{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(), SecurityHeaders(true))
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))
}

func TestBodyLimit(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimit(8))
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.ContentLength = 100
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	router := gin.New()
	router.Use(CORS(config.CORSConfig{Origins: []string{"http://app.example.com"}, AllowCredentials: true}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://app.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "http://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
