package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfimia/reddit-clone/internal/domain"
	"github.com/mfimia/reddit-clone/internal/repository"
	"github.com/mfimia/reddit-clone/internal/security"
	"github.com/mfimia/reddit-clone/internal/session"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthService struct {
	users         repository.UserRepository
	tokens        ResetTokenStore
	mailer        Mailer
	logger        *slog.Logger
	frontendURL   string
	resetTokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, tokens ResetTokenStore, mailer Mailer, logger *slog.Logger, frontendURL string, resetTokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		tokens:        tokens,
		mailer:        mailer,
		logger:        logger,
		frontendURL:   frontendURL,
		resetTokenTTL: resetTokenTTL,
	}
}

func validateRegister(input RegisterInput) *UserResult {
	if len(input.Username) <= 2 {
		return fieldError("username", "length must be greater than 2")
	}
	if strings.Contains(input.Username, "@") {
		return fieldError("username", "username cannot include '@'")
	}
	if !strings.Contains(input.Email, "@") {
		return fieldError("email", "invalid email")
	}
	if len(input.Password) <= 3 {
		return fieldError("password", "length must be greater than 3")
	}
	return nil
}

// Register creates a user and logs them in. Validation failures and
// uniqueness conflicts come back as field errors on the result.
func (s *AuthService) Register(ctx context.Context, sess session.Session, input RegisterInput) (*UserResult, error) {
	if result := validateRegister(input); result != nil {
		return result, nil
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hash,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return fieldError("username", "username already taken"), nil
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := sess.Bind(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("bind session: %w", err)
	}
	return &UserResult{User: user}, nil
}

// Login accepts a username or an email as the identifier; anything
// containing '@' is treated as an email.
func (s *AuthService) Login(ctx context.Context, sess session.Session, usernameOrEmail, password string) (*UserResult, error) {
	var (
		user *domain.User
		err  error
	)
	if strings.Contains(usernameOrEmail, "@") {
		user, err = s.users.FindByEmail(usernameOrEmail)
	} else {
		user, err = s.users.FindByUsername(usernameOrEmail)
	}
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fieldError("usernameOrEmail", "username/email doesn't exist"), nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !security.CheckPassword(user.Password, password) {
		return fieldError("password", "incorrect password"), nil
	}

	if err := sess.Bind(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("bind session: %w", err)
	}
	return &UserResult{User: user}, nil
}

// Logout destroys the session. Store failures are logged and reported as
// false, never raised.
func (s *AuthService) Logout(ctx context.Context, sess session.Session) bool {
	if err := sess.Destroy(ctx); err != nil {
		s.logger.ErrorContext(ctx, "session destroy failed", "error", err)
		return false
	}
	return true
}

// Me returns the user bound to the session, or nil without error when
// there is no session or the user row no longer exists.
func (s *AuthService) Me(ctx context.Context, sess session.Session) (*domain.User, error) {
	userID := sess.UserID()
	if userID == 0 {
		return nil, nil
	}
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ForgotPassword always reports success so callers cannot probe which
// emails exist. A token and mail are only produced for known emails.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("find user: %w", err)
	}

	token := uuid.NewString()
	if err := s.tokens.Create(ctx, token, user.ID, s.resetTokenTTL); err != nil {
		return false, fmt.Errorf("store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/change-password/%s", s.frontendURL, token)
	mail := Mail{
		To:      email,
		Subject: "Reset your password",
		HTML:    fmt.Sprintf(`<a href="%s">reset password</a>`, link),
	}
	if err := s.mailer.Send(ctx, mail); err != nil {
		// Delivery is fire and forget; the caller still gets success.
		s.logger.ErrorContext(ctx, "reset mail dispatch failed", "error", err)
	}
	return true, nil
}

// ChangePassword consumes a reset token, persists the new password hash and
// logs the user in. The token is consumed atomically, so a second call with
// the same token sees it as expired.
func (s *AuthService) ChangePassword(ctx context.Context, sess session.Session, token, newPassword string) (*UserResult, error) {
	if len(newPassword) <= 3 {
		return fieldError("newPassword", "length must be greater than 3"), nil
	}

	userID, err := s.tokens.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return fieldError("token", "token expired"), nil
		}
		return nil, fmt.Errorf("consume reset token: %w", err)
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fieldError("token", "user no longer exists"), nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(user.ID, hash); err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}
	user.Password = hash

	if err := sess.Bind(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("bind session: %w", err)
	}
	return &UserResult{User: user}, nil
}
