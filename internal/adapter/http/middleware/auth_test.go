package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"repairdesk/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func claimsFor(sub, role, loc string) Claims {
	return Claims{
		Role:       role,
		LocationID: loc,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func newRouter(cfg config.AuthConfig, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(cfg)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		loc, err := ResolveLocation(c, c.Query("location_id"))
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sub": p.UserID, "role": p.Role, "location_id": loc})
	})
	r.GET("/x", handlers...)
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	cfg := config.AuthConfig{Enabled: true, AccessSecret: testSecret}

	t.Run("missing token", func(t *testing.T) {
		if w := doGet(newRouter(cfg), "/x", ""); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte("other"), claimsFor("u-1", RoleManager, "loc-1"))
		if w := doGet(newRouter(cfg), "/x", token); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS512, []byte(testSecret), claimsFor("u-1", RoleManager, "loc-1"))
		if w := doGet(newRouter(cfg), "/x", token); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("expired", func(t *testing.T) {
		c := claimsFor("u-1", RoleManager, "loc-1")
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c)
		if w := doGet(newRouter(cfg), "/x", token); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("u-1", "guest", "loc-1"))
		if w := doGet(newRouter(cfg), "/x", token); w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("valid token pins location", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("u-1", "Manager", "loc-1"))
		w := doGet(newRouter(cfg), "/x", token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := w.Body.String(); body != `{"location_id":"loc-1","role":"manager","sub":"u-1"}` {
			t.Fatalf("unexpected body %s", body)
		}
	})

	t.Run("non-admin cannot pick another location", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("u-1", RoleManager, "loc-1"))
		if w := doGet(newRouter(cfg), "/x?location_id=loc-2", token); w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("admin picks any location", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("u-9", RoleAdmin, "loc-1"))
		w := doGet(newRouter(cfg), "/x?location_id=loc-2", token)
		if w.Code != http.StatusOK || w.Body.String() != `{"location_id":"loc-2","role":"admin","sub":"u-9"}` {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("disabled runs as local admin", func(t *testing.T) {
		w := doGet(newRouter(config.AuthConfig{}), "/x?location_id=loc-3", "")
		if w.Code != http.StatusOK || w.Body.String() != `{"location_id":"loc-3","role":"admin","sub":"local"}` {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})
}

func TestRequireRoles(t *testing.T) {
	cfg := config.AuthConfig{Enabled: true, AccessSecret: testSecret}
	r := newRouter(cfg, RequireRoles(RoleAdmin, RoleManager))

	tech := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("u-2", RoleTechnician, "loc-1"))
	if w := doGet(r, "/x", tech); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for technician, got %d", w.Code)
	}
	mgr := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("u-3", RoleManager, "loc-1"))
	if w := doGet(r, "/x", mgr); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for manager, got %d", w.Code)
	}
}

func TestResolveLocation_NoPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	loc, err := ResolveLocation(c, " loc-1 ")
	if err != nil || loc != "loc-1" {
		t.Fatalf("unexpected result %q %v", loc, err)
	}
	if errors.Is(err, ErrLocationForbidden) {
		t.Fatalf("unexpected forbidden")
	}
}
