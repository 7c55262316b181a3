package user

import (
	"context"
	"errors"
	"fmt"
	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/utils/mailing"
	"recipe-catalog/pkg/jwt"
	"recipe-catalog/pkg/logger"
	"recipe-catalog/pkg/metrics"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const TokenType = "Bearer"

type (
	UserService interface {
		Signup(ctx context.Context, req domain.SignupRequest) (domain.SignupResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID uint) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		bcryptCost     int
		dummyHash      []byte
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, mailer mailing.Mailer, bcryptCost int) (UserService, error) {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	// compared against when the email is unknown so both login failures cost the same
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("recipe-catalog-dummy-password"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}

	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		bcryptCost:     bcryptCost,
		dummyHash:      dummyHash,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Signup(ctx context.Context, req domain.SignupRequest) (domain.SignupResponse, error) {
	log := logger.FromContext(ctx)
	email := normalizeEmail(req.Email)

	exists, err := s.userRepository.CheckUserByEmail(ctx, email)
	if err != nil {
		return domain.SignupResponse{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		metrics.RecordAuthEvent("signup_duplicate")
		return domain.SignupResponse{}, domain.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return domain.SignupResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := entities.User{
		Email:    email,
		FullName: strings.TrimSpace(req.FullName),
		Password: string(hashed),
	}
	if err := s.userRepository.RegisterUser(ctx, &user); err != nil {
		// a concurrent signup won the race on the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			metrics.RecordAuthEvent("signup_duplicate")
			return domain.SignupResponse{}, domain.ErrEmailAlreadyExists
		}
		return domain.SignupResponse{}, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordAuthEvent("signup")
	log.Info("user registered", zap.Uint("user_id", user.ID))

	if err := s.mailer.SendMail(user.Email, "Welcome to the recipe catalog", mailing.WelcomeBody(user.FullName)); err != nil {
		log.Warn("failed to send welcome mail", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return domain.SignupResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, fmt.Errorf("get user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		metrics.RecordAuthEvent("login_failed")
		log.Debug("login rejected: unknown email")
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		metrics.RecordAuthEvent("login_failed")
		log.Debug("login rejected: password mismatch", zap.Uint("user_id", user.ID))
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateTokenUser(user.Email, user.FullName, user.ID)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	metrics.RecordAuthEvent("login")
	return domain.LoginResponse{
		Token:     token,
		TokenType: TokenType,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID uint) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, fmt.Errorf("get user %d: %w", userID, err)
	}

	return domain.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}, nil
}
