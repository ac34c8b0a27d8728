// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"strings"

	"journal-service/internal/domain/auth"
	"journal-service/internal/identity"
	"journal-service/internal/pkg/apierror"
	"journal-service/internal/pkg/token"

	"go.uber.org/zap"
)

// IdentityProvider is the external service that owns credentials and
// email-confirmation state. The AuthService never stores passwords itself.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*identity.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*identity.User, error)
	SendRecovery(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, recoveryToken, newPassword string) error
	AdminGetUser(ctx context.Context, id string) (*identity.User, error)
	AdminDeleteUser(ctx context.Context, id string) error
}

// ProfileStore reconciles the application-owned profile record with the
// provider's identity record.
type ProfileStore interface {
	UpsertProfile(ctx context.Context, id, email string, fullName *string) error
	DeleteUserData(ctx context.Context, userID string) error
}

var _ IdentityProvider = (*identity.Client)(nil)

type AuthService struct {
	provider IdentityProvider
	profiles ProfileStore
	codec    *token.Codec
	logger   *zap.Logger
}

func NewAuthService(provider IdentityProvider, profiles ProfileStore, codec *token.Codec, logger *zap.Logger) *AuthService {
	return &AuthService{
		provider: provider,
		profiles: profiles,
		codec:    codec,
		logger:   logger,
	}
}

// ========== Registration ==========

// Register creates a credential record with the identity provider, seeds the
// local profile and issues a fresh token pair for the new identifier.
func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.TokenPair, error) {
	metadata := map[string]interface{}{"full_name": req.DisplayName}

	user, err := s.provider.SignUp(ctx, req.Email, req.Password, metadata)
	if err != nil {
		return nil, classifySignUpError(err)
	}

	// Profile upsert failure never rolls back the created identity; the
	// profile is reconciled lazily on first profile access.
	var fullName *string
	if req.DisplayName != "" {
		fullName = &req.DisplayName
	}
	if err := s.profiles.UpsertProfile(ctx, user.ID, req.Email, fullName); err != nil {
		s.logger.Warn("profile upsert after register failed",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}

	return s.issuePair(user.ID)
}

// ========== Login ==========

// Login validates credentials with the provider and issues a fresh pair.
// Previously issued tokens stay valid until their natural expiry.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.TokenPair, error) {
	user, err := s.provider.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		return nil, classifySignInError(err)
	}

	var fullName *string
	if name, ok := user.Metadata["full_name"].(string); ok && name != "" {
		fullName = &name
	}
	if err := s.profiles.UpsertProfile(ctx, user.ID, req.Email, fullName); err != nil {
		s.logger.Warn("profile upsert after login failed",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}

	return s.issuePair(user.ID)
}

// ========== Token lifecycle ==========

// Refresh exchanges a valid refresh token for a new access+refresh pair.
// The presented token is not blacklisted; it stays usable until expiry.
func (s *AuthService) Refresh(refreshToken string) (*auth.TokenPair, error) {
	claims := s.codec.Verify(refreshToken)
	if claims == nil || claims.TokenType != token.TypeRefresh {
		return nil, apierror.Unauthorized("Invalid or expired refresh token")
	}
	return s.issuePair(claims.Subject)
}

// Logout is a no-op: token validity is purely signature+expiry based, so
// there is no server-side session to invalidate.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return nil
}

// ValidateAccessToken resolves an access token to its subject. Refresh
// tokens are rejected here regardless of signature validity.
func (s *AuthService) ValidateAccessToken(tokenString string) (string, error) {
	claims := s.codec.Verify(tokenString)
	if claims == nil || claims.TokenType != token.TypeAccess {
		return "", apierror.Unauthorized("Invalid or expired token")
	}
	return claims.Subject, nil
}

// ========== Password reset ==========

// ForgotPassword asks the provider to send a reset email. The outcome is
// deliberately discarded so responses cannot reveal whether the account
// exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) {
	if err := s.provider.SendRecovery(ctx, email); err != nil {
		s.logger.Warn("password recovery request failed", zap.Error(err))
	}
}

// ResetPassword completes a reset via the provider. Failures are swallowed
// for the same anti-enumeration reason: callers must never learn whether
// the reset token was valid.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) {
	if err := s.provider.UpdatePassword(ctx, resetToken, newPassword); err != nil {
		s.logger.Warn("password reset failed", zap.Error(err))
	}
}

// ========== Account ==========

// DeleteAccount removes the identity at the provider and the local data.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.provider.AdminDeleteUser(ctx, userID); err != nil {
		s.logger.Error("provider account deletion failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return apierror.Unavailable("Account deletion failed")
	}
	if err := s.profiles.DeleteUserData(ctx, userID); err != nil {
		s.logger.Error("local account data deletion failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return apierror.Database("")
	}
	return nil
}

func (s *AuthService) issuePair(subject string) (*auth.TokenPair, error) {
	access, err := s.codec.IssueAccess(subject)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.IssueRefresh(subject)
	if err != nil {
		return nil, err
	}
	return &auth.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(s.codec.AccessTTL().Seconds()),
	}, nil
}

// ========== Provider error classification ==========

// classifySignUpError maps a provider sign-up failure onto the taxonomy:
// duplicate email becomes CONFLICT, any other provider rejection becomes
// VALIDATION_ERROR. Structured error codes are checked first; message
// substrings only as a fallback for older provider versions.
func classifySignUpError(err error) error {
	var pErr *identity.ProviderError
	if !errors.As(err, &pErr) {
		return apierror.Unavailable("Registration is temporarily unavailable")
	}

	switch pErr.Code {
	case "user_already_exists", "email_exists":
		return apierror.Conflict("Email already registered")
	}
	msg := strings.ToLower(pErr.Message)
	if strings.Contains(msg, "already registered") || strings.Contains(msg, "already exists") {
		return apierror.Conflict("Email already registered")
	}
	return apierror.Validation("Registration failed", "email", "provider")
}

// classifySignInError collapses provider sign-in failures into exactly three
// UNAUTHORIZED buckets. The wording is intentionally coarse: nothing in the
// message may reveal whether the email exists or which field was wrong.
func classifySignInError(err error) error {
	var pErr *identity.ProviderError
	if !errors.As(err, &pErr) {
		return apierror.Unauthorized("Login failed. Please check your email and password, and confirm your email if required.")
	}

	switch pErr.Code {
	case "email_not_confirmed":
		return apierror.Unauthorized("Please confirm your email first. Check your inbox for the verification link.")
	case "invalid_credentials", "invalid_grant":
		return apierror.Unauthorized("Invalid email or password")
	}

	msg := strings.ToLower(pErr.Message)
	switch {
	case strings.Contains(msg, "email not confirmed"), strings.Contains(msg, "confirm your email"):
		return apierror.Unauthorized("Please confirm your email first. Check your inbox for the verification link.")
	case strings.Contains(msg, "invalid"):
		return apierror.Unauthorized("Invalid email or password")
	}
	return apierror.Unauthorized("Login failed. Please check your email and password, and confirm your email if required.")
}
