package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"lokalpulse.com/gbpdashboard/internal/entity"
	search "lokalpulse.com/gbpdashboard/internal/modules/search/service"
	"lokalpulse.com/gbpdashboard/internal/modules/user/dto"
	"lokalpulse.com/gbpdashboard/internal/modules/user/repository"
	"lokalpulse.com/gbpdashboard/pkg/apperror"
)

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
}

type authService struct {
	repo     repository.UserRepository
	secret   string
	tokenTTL time.Duration
	meili    search.MeiliSearchService
}

func NewAuthService(repo repository.UserRepository, meili search.MeiliSearchService) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	ttl := 24 * time.Hour
	if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: ttl,
		meili:    meili,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", apperror.ErrBadRequest)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role, err := s.repo.FindRoleByName(ctx, entity.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("default role not found: %w", err)
	}

	user := &entity.User{
		Email:        input.Email,
		PasswordHash: string(hashed),
		BusinessName: input.BusinessName,
		RoleID:       &role.ID,
		Role:         *role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	var searchToken string
	if s.meili != nil {
		st, err := s.meili.GenerateSearchToken(user.ID.String())
		if err != nil {
			log.Printf("Failed to generate search token for user %s: %v", user.Email, err)
		} else {
			searchToken = st
		}
	}

	user.PasswordHash = ""

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        user,
		SearchToken: searchToken,
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}
