package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"journal-service/internal/pkg/apierror"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Error ErrorBody `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not the error envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return env
}

func TestErrRendersTaxonomyEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Err(c, apierror.Conflict("Email already registered"))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error.Code != "CONFLICT" {
		t.Errorf("code = %q", env.Error.Code)
	}
	if env.Error.Message != "Email already registered" {
		t.Errorf("message = %q", env.Error.Message)
	}
	if _, err := time.Parse(time.RFC3339, env.Error.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", env.Error.Timestamp, err)
	}
}

func TestErrUnknownErrorBecomesGeneric500(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Err(c, errors.New("dial tcp 10.0.0.3:5432: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error.Code != "INTERNAL_SERVER_ERROR" {
		t.Errorf("code = %q", env.Error.Code)
	}
	if strings.Contains(env.Error.Message, "10.0.0.3") {
		t.Errorf("message leaks internal detail: %q", env.Error.Message)
	}
}

func TestBindingErrMissingRequiredField(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"password":"secret123"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	err := c.ShouldBindJSON(&req)
	if err == nil {
		t.Fatal("expected binding error")
	}

	BindingErr(c, err)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q", env.Error.Code)
	}
	if env.Error.Details["field"] != "email" {
		t.Errorf("details = %v, want field=email", env.Error.Details)
	}
	if env.Error.Details["constraint"] != "required" {
		t.Errorf("details = %v, want constraint=required", env.Error.Details)
	}
}

func TestBindingErrMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req struct {
		Email string `json:"email" binding:"required"`
	}
	err := c.ShouldBindJSON(&req)
	if err == nil {
		t.Fatal("expected binding error")
	}

	BindingErr(c, err)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q", env.Error.Code)
	}
}
