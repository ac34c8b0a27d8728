package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "journal-service/internal/domain/auth"
	"journal-service/internal/identity"
	"journal-service/internal/pkg/apierror"
	"journal-service/internal/pkg/token"

	"go.uber.org/zap"
)

type mockProvider struct {
	signUp         func(ctx context.Context, email, password string, metadata map[string]interface{}) (*identity.User, error)
	signIn         func(ctx context.Context, email, password string) (*identity.User, error)
	sendRecovery   func(ctx context.Context, email string) error
	updatePassword func(ctx context.Context, recoveryToken, newPassword string) error
	adminGetUser   func(ctx context.Context, id string) (*identity.User, error)
	adminDelete    func(ctx context.Context, id string) error
}

var _ IdentityProvider = (*mockProvider)(nil)

func (m *mockProvider) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*identity.User, error) {
	return m.signUp(ctx, email, password, metadata)
}

func (m *mockProvider) SignInWithPassword(ctx context.Context, email, password string) (*identity.User, error) {
	return m.signIn(ctx, email, password)
}

func (m *mockProvider) SendRecovery(ctx context.Context, email string) error {
	return m.sendRecovery(ctx, email)
}

func (m *mockProvider) UpdatePassword(ctx context.Context, recoveryToken, newPassword string) error {
	return m.updatePassword(ctx, recoveryToken, newPassword)
}

func (m *mockProvider) AdminGetUser(ctx context.Context, id string) (*identity.User, error) {
	return m.adminGetUser(ctx, id)
}

func (m *mockProvider) AdminDeleteUser(ctx context.Context, id string) error {
	return m.adminDelete(ctx, id)
}

type mockProfiles struct {
	upsert func(ctx context.Context, id, email string, fullName *string) error
	delete func(ctx context.Context, userID string) error
}

var _ ProfileStore = (*mockProfiles)(nil)

func (m *mockProfiles) UpsertProfile(ctx context.Context, id, email string, fullName *string) error {
	if m.upsert == nil {
		return nil
	}
	return m.upsert(ctx, id, email, fullName)
}

func (m *mockProfiles) DeleteUserData(ctx context.Context, userID string) error {
	if m.delete == nil {
		return nil
	}
	return m.delete(ctx, userID)
}

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec(token.Config{
		Secret:     "auth-service-test-signing-secret",
		Algorithm:  "HS256",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func newService(t *testing.T, provider *mockProvider, profiles *mockProfiles) *AuthService {
	t.Helper()
	if profiles == nil {
		profiles = &mockProfiles{}
	}
	return NewAuthService(provider, profiles, newTestCodec(t), zap.NewNop())
}

func codeOf(t *testing.T, err error) apierror.Code {
	t.Helper()
	var appErr *apierror.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error %v is not a taxonomy error", err)
	}
	return appErr.Code
}

func TestRegisterIssuesPair(t *testing.T) {
	svc := newService(t, &mockProvider{
		signUp: func(ctx context.Context, email, password string, metadata map[string]interface{}) (*identity.User, error) {
			if metadata["full_name"] != "Jo" {
				t.Errorf("metadata = %v", metadata)
			}
			return &identity.User{ID: "uid-1", Email: email}, nil
		},
	}, nil)

	pair, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email:       "jo@example.com",
		Password:    "secret123",
		DisplayName: "Jo",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if pair.TokenType != "bearer" {
		t.Errorf("token_type = %q", pair.TokenType)
	}
	if pair.ExpiresIn != int((30 * time.Minute).Seconds()) {
		t.Errorf("expires_in = %d, want %d", pair.ExpiresIn, 1800)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("empty token in pair")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens are identical")
	}

	subject, err := svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if subject != "uid-1" {
		t.Errorf("subject = %q", subject)
	}
}

func TestRegisterDuplicateEmailByCode(t *testing.T) {
	svc := newService(t, &mockProvider{
		signUp: func(ctx context.Context, email, password string, metadata map[string]interface{}) (*identity.User, error) {
			return nil, &identity.ProviderError{Status: 422, Code: "user_already_exists", Message: "User already registered"}
		},
	}, nil)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{Email: "jo@example.com", Password: "secret123"})
	if codeOf(t, err) != apierror.CodeConflict {
		t.Errorf("code = %s, want CONFLICT", codeOf(t, err))
	}
}

func TestRegisterDuplicateEmailBySubstringFallback(t *testing.T) {
	svc := newService(t, &mockProvider{
		signUp: func(ctx context.Context, email, password string, metadata map[string]interface{}) (*identity.User, error) {
			return nil, &identity.ProviderError{Status: 400, Message: "A user with this email address has already been registered"}
		},
	}, nil)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{Email: "jo@example.com", Password: "secret123"})
	if codeOf(t, err) != apierror.CodeConflict {
		t.Errorf("code = %s, want CONFLICT", codeOf(t, err))
	}
}

func TestRegisterOtherProviderRejectionIsValidation(t *testing.T) {
	svc := newService(t, &mockProvider{
		signUp: func(ctx context.Context, email, password string, metadata map[string]interface{}) (*identity.User, error) {
			return nil, &identity.ProviderError{Status: 422, Code: "weak_password", Message: "Password should be at least 6 characters"}
		},
	}, nil)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{Email: "jo@example.com", Password: "secret123"})
	if codeOf(t, err) != apierror.CodeValidation {
		t.Errorf("code = %s, want VALIDATION_ERROR", codeOf(t, err))
	}
}

func TestRegisterProviderDownIsUnavailable(t *testing.T) {
	svc := newService(t, &mockProvider{
		signUp: func(ctx context.Context, email, password string, metadata map[string]interface{}) (*identity.User, error) {
			return nil, errors.New("identity provider unreachable: dial tcp: connection refused")
		},
	}, nil)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{Email: "jo@example.com", Password: "secret123"})
	if codeOf(t, err) != apierror.CodeServiceUnavailable {
		t.Errorf("code = %s, want SERVICE_UNAVAILABLE", codeOf(t, err))
	}
}

func TestRegisterSucceedsWhenProfileUpsertFails(t *testing.T) {
	svc := newService(t, &mockProvider{
		signUp: func(ctx context.Context, email, password string, metadata map[string]interface{}) (*identity.User, error) {
			return &identity.User{ID: "uid-1", Email: email}, nil
		},
	}, &mockProfiles{
		upsert: func(ctx context.Context, id, email string, fullName *string) error {
			return errors.New("db down")
		},
	})

	pair, err := svc.Register(context.Background(), &domain.RegisterRequest{Email: "jo@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register failed on profile upsert error: %v", err)
	}
	if pair.AccessToken == "" {
		t.Error("no token pair issued")
	}
}

func TestLoginWrongPasswordIsGenericUnauthorized(t *testing.T) {
	svc := newService(t, &mockProvider{
		signIn: func(ctx context.Context, email, password string) (*identity.User, error) {
			return nil, &identity.ProviderError{Status: 400, Code: "invalid_credentials", Message: "Invalid login credentials"}
		},
	}, nil)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "jo@example.com", Password: "wrong"})
	var appErr *apierror.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error type = %T", err)
	}
	if appErr.Code != apierror.CodeUnauthorized {
		t.Errorf("code = %s", appErr.Code)
	}
	if appErr.Message != "Invalid email or password" {
		t.Errorf("message = %q reveals which field was wrong", appErr.Message)
	}
}

func TestLoginUnconfirmedEmailBucket(t *testing.T) {
	svc := newService(t, &mockProvider{
		signIn: func(ctx context.Context, email, password string) (*identity.User, error) {
			return nil, &identity.ProviderError{Status: 400, Code: "email_not_confirmed", Message: "Email not confirmed"}
		},
	}, nil)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "jo@example.com", Password: "secret123"})
	var appErr *apierror.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error type = %T", err)
	}
	if appErr.Code != apierror.CodeUnauthorized {
		t.Errorf("code = %s", appErr.Code)
	}
	if appErr.Message != "Please confirm your email first. Check your inbox for the verification link." {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestLoginUpsertsProfileFromMetadata(t *testing.T) {
	var gotName *string
	svc := newService(t, &mockProvider{
		signIn: func(ctx context.Context, email, password string) (*identity.User, error) {
			return &identity.User{
				ID:       "uid-1",
				Email:    email,
				Metadata: map[string]interface{}{"full_name": "Jo"},
			}, nil
		},
	}, &mockProfiles{
		upsert: func(ctx context.Context, id, email string, fullName *string) error {
			gotName = fullName
			return nil
		},
	})

	if _, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "jo@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotName == nil || *gotName != "Jo" {
		t.Errorf("full name passed to upsert = %v", gotName)
	}
}

func TestRefreshRotatesPair(t *testing.T) {
	svc := newService(t, &mockProvider{
		signIn: func(ctx context.Context, email, password string) (*identity.User, error) {
			return &identity.User{ID: "uid-1", Email: email}, nil
		},
	}, nil)

	pair, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "jo@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	rotated, err := svc.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	subject, err := svc.ValidateAccessToken(rotated.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if subject != "uid-1" {
		t.Errorf("subject = %q", subject)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newService(t, &mockProvider{
		signIn: func(ctx context.Context, email, password string) (*identity.User, error) {
			return &identity.User{ID: "uid-1", Email: email}, nil
		},
	}, nil)

	pair, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "jo@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = svc.Refresh(pair.AccessToken)
	if codeOf(t, err) != apierror.CodeUnauthorized {
		t.Errorf("code = %s, want UNAUTHORIZED", codeOf(t, err))
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newService(t, &mockProvider{}, nil)
	if _, err := svc.Refresh("not-a-token"); codeOf(t, err) != apierror.CodeUnauthorized {
		t.Errorf("code = %s, want UNAUTHORIZED", codeOf(t, err))
	}
}

func TestValidateAccessTokenRejectsRefreshToken(t *testing.T) {
	svc := newService(t, &mockProvider{
		signIn: func(ctx context.Context, email, password string) (*identity.User, error) {
			return &identity.User{ID: "uid-1", Email: email}, nil
		},
	}, nil)

	pair, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "jo@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := svc.ValidateAccessToken(pair.RefreshToken); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
}

func TestForgotPasswordSwallowsFailures(t *testing.T) {
	called := false
	svc := newService(t, &mockProvider{
		sendRecovery: func(ctx context.Context, email string) error {
			called = true
			return &identity.ProviderError{Status: 404, Code: "user_not_found", Message: "User not found"}
		},
	}, nil)

	svc.ForgotPassword(context.Background(), "nobody@example.com")
	if !called {
		t.Error("provider was not called")
	}
}

func TestResetPasswordSwallowsFailures(t *testing.T) {
	svc := newService(t, &mockProvider{
		updatePassword: func(ctx context.Context, recoveryToken, newPassword string) error {
			return &identity.ProviderError{Status: 401, Code: "invalid_token", Message: "Token expired"}
		},
	}, nil)

	svc.ResetPassword(context.Background(), "stale-token", "newsecret123")
}

func TestLogoutIsNoOp(t *testing.T) {
	svc := newService(t, &mockProvider{}, nil)
	if err := svc.Logout(context.Background(), "uid-1"); err != nil {
		t.Errorf("Logout: %v", err)
	}
}

func TestDeleteAccountProviderFailure(t *testing.T) {
	svc := newService(t, &mockProvider{
		adminDelete: func(ctx context.Context, id string) error {
			return errors.New("provider 500")
		},
	}, nil)

	err := svc.DeleteAccount(context.Background(), "uid-1")
	if codeOf(t, err) != apierror.CodeServiceUnavailable {
		t.Errorf("code = %s, want SERVICE_UNAVAILABLE", codeOf(t, err))
	}
}

func TestDeleteAccountLocalFailure(t *testing.T) {
	svc := newService(t, &mockProvider{
		adminDelete: func(ctx context.Context, id string) error { return nil },
	}, &mockProfiles{
		delete: func(ctx context.Context, userID string) error {
			return errors.New("db down")
		},
	})

	err := svc.DeleteAccount(context.Background(), "uid-1")
	if codeOf(t, err) != apierror.CodeDatabaseError {
		t.Errorf("code = %s, want DATABASE_ERROR", codeOf(t, err))
	}
}
