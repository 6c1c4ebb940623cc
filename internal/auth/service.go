package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sfshop/storefront-client/internal/users"
	"github.com/sfshop/storefront-client/pkg/logger"

	pkgerrors "github.com/sfshop/storefront-client/pkg/errors"
)

// SessionStore is the mutable session state the service drives.
type SessionStore interface {
	SetSession(token string, user *users.User)
	SetUser(user *users.User)
	Clear()
	IsAuthenticated() bool
	CurrentUser() *users.User
}

// LoginAPI is the remote auth surface.
type LoginAPI interface {
	Login(ctx context.Context, creds Credentials) (string, *users.User, error)
	Register(ctx context.Context, input RegisterInput) (*users.User, error)
}

// ProfileAPI loads the profile for a freshly installed token.
type ProfileAPI interface {
	FetchProfile(ctx context.Context) (*users.User, error)
}

// ServiceParams carries the service dependencies.
type ServiceParams struct {
	Sessions SessionStore
	Client   LoginAPI
	Profiles ProfileAPI
	Tokens   TokenStore
	Logger   *logger.Logger
	Now      func() time.Time
}

// Service owns the login/logout lifecycle: validating the form, exchanging
// credentials, persisting the token, and resuming a prior session.
type Service struct {
	sessions SessionStore
	client   LoginAPI
	profiles ProfileAPI
	tokens   TokenStore
	validate *validator.Validate
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if params.Client == nil {
		return nil, fmt.Errorf("auth client required")
	}
	if params.Profiles == nil {
		return nil, fmt.Errorf("profile client required")
	}
	if params.Tokens == nil {
		return nil, fmt.Errorf("token store required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		sessions: params.Sessions,
		client:   params.Client,
		profiles: params.Profiles,
		tokens:   params.Tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logg:     params.Logger,
		now:      now,
	}, nil
}

// Login validates the form locally, then exchanges the credentials and
// installs the session. Failed logins leave the session untouched.
func (s *Service) Login(ctx context.Context, creds Credentials) (*users.User, error) {
	if err := s.validate.Struct(creds); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, formReason(err))
	}

	token, user, err := s.client.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	s.sessions.SetSession(token, user)
	if user == nil {
		fetched, err := s.profiles.FetchProfile(ctx)
		if err != nil {
			s.sessions.Clear()
			return nil, err
		}
		user = fetched
		s.sessions.SetUser(user)
	}

	if err := s.tokens.Save(token); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("session token not persisted: %v", err))
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, user.ID), "user logged in")
	}
	return user, nil
}

// Register validates and submits the registration form. The caller decides
// whether to follow up with a Login.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*users.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, formReason(err))
	}
	return s.client.Register(ctx, input)
}

// Resume restores a persisted session on startup. A missing, expired, or
// rejected token leaves the client anonymous without error; only transport
// failures surface.
func (s *Service) Resume(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("stored session token unreadable: %v", err))
		}
		return nil
	}
	if token == "" {
		return nil
	}
	if Expired(token, s.now()) {
		_ = s.tokens.Clear()
		return nil
	}

	s.sessions.SetSession(token, nil)
	user, err := s.profiles.FetchProfile(ctx)
	if err != nil {
		if pkgerrors.IsUnauthorized(err) {
			s.Logout()
			return nil
		}
		return err
	}
	s.sessions.SetUser(user)
	return nil
}

// Logout clears the session and the persisted token. The cart is not
// touched; its lifecycle is independent.
func (s *Service) Logout() {
	s.sessions.Clear()
	if err := s.tokens.Clear(); err != nil && s.logg != nil {
		s.logg.Warn(context.Background(), fmt.Sprintf("clearing persisted token: %v", err))
	}
}

// ForceLogout is wired as the api client's 401 hook: any unauthorized
// response drops the session immediately.
func (s *Service) ForceLogout() {
	if s.logg != nil {
		s.logg.Warn(context.Background(), "session rejected by shop api, logging out")
	}
	s.Logout()
}

func formReason(err error) string {
	if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", field)
		case "email":
			return fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		case "max":
			return fmt.Sprintf("%s is too long", field)
		}
		return fmt.Sprintf("%s is invalid", field)
	}
	return "please check your input"
}
