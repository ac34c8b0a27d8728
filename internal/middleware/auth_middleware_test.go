package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"journal-service/internal/pkg/apierror"
	"journal-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockValidator struct {
	validate func(tokenString string) (string, error)
}

var _ TokenValidator = (*mockValidator)(nil)

func (m *mockValidator) ValidateAccessToken(tokenString string) (string, error) {
	return m.validate(tokenString)
}

func newTestRouter(validator TokenValidator) *gin.Engine {
	r := gin.New()
	r.GET("/protected", NewAuthMiddleware(validator).Auth(), func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{"user_id": MustGetUserID(c)})
	})
	return r
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error response.ErrorBody `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("body is not the error envelope: %s", rec.Body.String())
	}
	return env.Error.Code
}

func TestAuthMissingToken(t *testing.T) {
	r := newTestRouter(&mockValidator{
		validate: func(string) (string, error) {
			t.Fatal("validator called without a token")
			return "", nil
		},
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if errorCode(t, rec) != "UNAUTHORIZED" {
		t.Errorf("code = %q", errorCode(t, rec))
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	r := newTestRouter(&mockValidator{
		validate: func(string) (string, error) {
			t.Fatal("validator called with a malformed header")
			return "", nil
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	r := newTestRouter(&mockValidator{
		validate: func(string) (string, error) {
			return "", apierror.Unauthorized("Invalid or expired token")
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthValidTokenSetsUserID(t *testing.T) {
	r := newTestRouter(&mockValidator{
		validate: func(tokenString string) (string, error) {
			if tokenString != "good-token" {
				t.Errorf("token = %q", tokenString)
			}
			return "uid-1", nil
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["user_id"] != "uid-1" {
		t.Errorf("user_id = %q", body["user_id"])
	}
}

func TestAuthTokenFromQueryParam(t *testing.T) {
	r := newTestRouter(&mockValidator{
		validate: func(tokenString string) (string, error) {
			if tokenString != "query-token" {
				t.Errorf("token = %q", tokenString)
			}
			return "uid-1", nil
		},
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected?token=query-token", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
