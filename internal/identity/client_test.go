package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, ServiceKey: "service-key"})
}

func TestSignUpSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/signup" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("apikey") != "service-key" {
			t.Errorf("apikey header = %q", r.Header.Get("apikey"))
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["email"] != "jo@example.com" {
			t.Errorf("email = %v", body["email"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "uid-1",
			"email": "jo@example.com",
		})
	})

	user, err := client.SignUp(context.Background(), "jo@example.com", "secret123", map[string]interface{}{"full_name": "Jo"})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.ID != "uid-1" {
		t.Errorf("id = %q", user.ID)
	}
}

func TestSignUpStructuredErrorCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{
			"error_code": "user_already_exists",
			"msg":        "User already registered",
		})
	})

	_, err := client.SignUp(context.Background(), "jo@example.com", "secret123", nil)
	var pErr *ProviderError
	if !errors.As(err, &pErr) {
		t.Fatalf("error type = %T", err)
	}
	if pErr.Code != "user_already_exists" {
		t.Errorf("code = %q", pErr.Code)
	}
	if pErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", pErr.Status)
	}
}

func TestSignInLegacyErrorShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid login credentials",
		})
	})

	_, err := client.SignInWithPassword(context.Background(), "jo@example.com", "wrong")
	var pErr *ProviderError
	if !errors.As(err, &pErr) {
		t.Fatalf("error type = %T", err)
	}
	if pErr.Code != "invalid_grant" {
		t.Errorf("code = %q", pErr.Code)
	}
	if pErr.Message != "Invalid login credentials" {
		t.Errorf("message = %q", pErr.Message)
	}
}

func TestSignInUnwrapsSessionUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "grant_type=password" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "provider-token-unused",
			"user": map[string]interface{}{
				"id":            "uid-2",
				"email":         "jo@example.com",
				"user_metadata": map[string]interface{}{"full_name": "Jo"},
			},
		})
	})

	user, err := client.SignInWithPassword(context.Background(), "jo@example.com", "secret123")
	if err != nil {
		t.Fatalf("SignInWithPassword: %v", err)
	}
	if user.ID != "uid-2" {
		t.Errorf("id = %q", user.ID)
	}
	if user.Metadata["full_name"] != "Jo" {
		t.Errorf("metadata = %v", user.Metadata)
	}
}

func TestUpdatePasswordUsesRecoveryBearer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/user" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer recovery-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.UpdatePassword(context.Background(), "recovery-token", "newsecret123"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
}

func TestAdminDeleteUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/admin/users/uid-3" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer service-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.AdminDeleteUser(context.Background(), "uid-3"); err != nil {
		t.Fatalf("AdminDeleteUser: %v", err)
	}
}

func TestUnreachableProviderIsNotProviderError(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", ServiceKey: "k"})

	_, err := client.SignUp(context.Background(), "jo@example.com", "secret123", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		t.Errorf("transport failure classified as ProviderError: %v", pErr)
	}
}
