package service

import (
	"context"
	"errors"
	"time"

	userserrors "realty/internal/users/errors"
	"realty/internal/users/repository"
	"realty/internal/users/validator"
	"realty/pkg/auth"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	"realty/pkg/model"
	"realty/pkg/sanitizer"
	"realty/pkg/validation"
)

// TokenIssuer signs access tokens for authenticated principals.
type TokenIssuer interface {
	Issue(p auth.Principal) (string, time.Time, error)
}

type UserService interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Me(ctx context.Context) (*model.User, error)
	Agents(ctx context.Context) ([]model.Agent, error)
	UpdateRole(ctx context.Context, id string, req *model.RoleUpdate) (*model.User, error)
	SeedAdmin(ctx context.Context, email, password, name string) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	tokens    TokenIssuer
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(repo repository.UserRepository, tokens TokenIssuer, validator *validator.UserValidator, cfg *config.Config) UserService {
	return &userService{
		repo:      repo,
		tokens:    tokens,
		validator: validator,
		cfg:       cfg,
	}
}

// Signup registers an approved client account.
func (s *userService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	return s.register(ctx, req, auth.RoleClient)
}

func (s *userService) register(ctx context.Context, req *model.SignupRequest, role auth.Role) (*model.User, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Name = sanitizer.NormalizeName(req.Name)
	if raw := req.Phone; raw != "" {
		req.Phone = sanitizer.NormalizePhone(raw)
		if req.Phone == "" {
			return nil, apperrors.Validation("Invalid signup", map[string]any{"phone": "phone must be a valid phone number"})
		}
	}

	if err := s.validator.ValidateSignup(req); err != nil {
		return nil, validation.AppError("Invalid signup", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "error", err)
		return nil, apperrors.Internal("Failed to create account", err)
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         string(role),
		Approved:     true,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrEmailTaken) {
			return nil, apperrors.Conflict("An account with this email already exists")
		}
		s.cfg.Log.Error("Failed to create user", "email", user.Email, "error", err)
		return nil, apperrors.Internal("Failed to create account", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "role", user.Role)
	return user, nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, validation.AppError("Invalid login", err)
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, apperrors.Internal("Failed to sign in", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.cfg.Log.Warn("Login rejected", "id", user.ID, "reason", "password mismatch")
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, apperrors.Internal("Failed to sign in", err)
	}
	if !user.Approved {
		return nil, apperrors.Forbidden("Account is pending approval")
	}

	role, ok := auth.ParseRole(user.Role)
	if !ok {
		s.cfg.Log.Error("User has unknown role", "id", user.ID, "role", user.Role)
		return nil, apperrors.Forbidden("Account role is not recognized")
	}

	token, expiresAt, err := s.tokens.Issue(auth.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   role,
	})
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	return &model.LoginResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *userService) Me(ctx context.Context) (*model.User, error) {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return nil, apperrors.Unauthorized("Sign in required")
	}

	user, err := s.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) FindByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, userserrors.ErrNotFound), errors.Is(err, userserrors.ErrInvalidID):
			return nil, apperrors.NotFoundWithID("User", id)
		default:
			return nil, apperrors.Internal("Failed to retrieve user", err)
		}
	}
	return user, nil
}

func (s *userService) Agents(ctx context.Context) ([]model.Agent, error) {
	users, err := s.repo.FindByRole(ctx, string(auth.RoleAgent))
	if err != nil {
		s.cfg.Log.Error("Failed to list agents", "error", err)
		return nil, apperrors.Internal("Failed to list agents", err)
	}

	agents := make([]model.Agent, 0, len(users))
	for _, u := range users {
		agents = append(agents, model.Agent{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone})
	}
	return agents, nil
}

func (s *userService) UpdateRole(ctx context.Context, id string, req *model.RoleUpdate) (*model.User, error) {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return nil, apperrors.Unauthorized("Sign in required")
	}
	if !principal.Can(auth.CapManageUsers) {
		return nil, apperrors.Forbidden("Only administrators can change roles")
	}
	if principal.UserID == id && req.Role != string(principal.Role) {
		return nil, apperrors.InvalidInput("Administrators cannot change their own role")
	}
	if err := s.validator.ValidateRoleUpdate(req); err != nil {
		return nil, validation.AppError("Invalid role update", err)
	}

	user, err := s.repo.UpdateRole(ctx, id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, userserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("User", id)
		case errors.Is(err, userserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid user ID format")
		default:
			return nil, apperrors.Internal("Failed to update role", err)
		}
	}

	s.cfg.Log.Info("User role updated", "id", id, "role", req.Role, "by", principal.UserID)
	return user, nil
}

// SeedAdmin creates an administrator account. It is used by the migration
// tool and bypasses principal checks.
func (s *userService) SeedAdmin(ctx context.Context, email, password, name string) (*model.User, error) {
	if name == "" {
		name = "Administrator"
	}
	return s.register(ctx, &model.SignupRequest{Email: email, Password: password, Name: name}, auth.RoleAdmin)
}
