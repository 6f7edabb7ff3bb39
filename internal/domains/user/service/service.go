package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"stayhub-backend/internal/domains/user/model"
	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/apperror"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/pkg/jwt"
	"stayhub-backend/pkg/logger"
)

type Service struct {
	*crud.Service[model.User, *model.User]

	jwtManager *jwt.Manager
	log        zerolog.Logger
}

func NewService(repo *crud.Repository[model.User, *model.User], jwtManager *jwt.Manager) *Service {
	return &Service{
		Service:    crud.NewService(repo, "User"),
		jwtManager: jwtManager,
		log:        logger.With("service.users"),
	}
}

// ===== AUTH =====

// Register creates an account with a bcrypt-hashed password. New
// accounts default to the guest role unless host is requested.
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	existing, err := s.Repo().GetOneBy(ctx, "email", req.Email)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if existing != nil {
		return nil, apperror.NewConflict("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	role := req.Role
	if role == "" {
		role = actor.RoleGuest
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         role,
		Status:       model.StatusActive,
	}

	// Self-registration: the new user stamps their own audit trail
	user.SetID(uuid.New())
	created, err := s.Service.Create(ctx, actor.Actor{ID: user.GetID(), Role: role}, user)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(created)
}

// Login verifies credentials and issues a token pair
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.Repo().GetOneBy(ctx, "email", req.Email)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if user == nil {
		return nil, apperror.NewUnauthorized("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Warn().Str("email", req.Email).Msg("Failed login attempt")
		return nil, apperror.NewUnauthorized("Invalid email or password")
	}

	if user.Status == model.StatusSuspended {
		return nil, apperror.NewForbidden("Account is suspended")
	}

	return s.issueTokens(user)
}

// Refresh exchanges a refresh token for a fresh pair
func (s *Service) Refresh(ctx context.Context, req model.RefreshRequest) (*model.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperror.NewUnauthorized("Invalid or expired refresh token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperror.NewUnauthorized("Invalid refresh token")
	}

	user, err := s.Service.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status == model.StatusSuspended {
		return nil, apperror.NewForbidden("Account is suspended")
	}

	return s.issueTokens(user)
}

func (s *Service) issueTokens(user *model.User) (*model.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// ===== PROFILE =====

func (s *Service) UpdateProfile(ctx context.Context, act actor.Actor, req model.UpdateProfileRequest) (*model.User, error) {
	return s.Service.Update(ctx, act, act.ID, req.Changes())
}

func (s *Service) ChangePassword(ctx context.Context, act actor.Actor, req model.ChangePasswordRequest) error {
	user, err := s.Service.GetByID(ctx, act.ID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperror.NewUnauthorized("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(err)
	}

	_, err = s.Service.Update(ctx, act, act.ID, map[string]any{"password_hash": string(hash)})
	return err
}

// ===== ADMIN =====

func (s *Service) SetRole(ctx context.Context, act actor.Actor, userID uuid.UUID, req model.SetRoleRequest) (*model.User, error) {
	if err := act.AssertAdmin(); err != nil {
		return nil, err
	}
	return s.Service.Update(ctx, act, userID, map[string]any{"role": req.Role})
}

func (s *Service) SetStatus(ctx context.Context, act actor.Actor, userID uuid.UUID, req model.SetStatusRequest) (*model.User, error) {
	if err := act.AssertAdmin(); err != nil {
		return nil, err
	}
	return s.Service.Update(ctx, act, userID, map[string]any{"status": req.Status})
}
