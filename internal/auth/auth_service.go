package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-hradmin/internal/auth/errors"
	"go-hradmin/internal/rbac"
	"go-hradmin/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	userRepo user.Repository
	rbac     rbac.Service
}

func NewService(userRepo user.Repository, rbacService rbac.Service) Service {
	return &service{userRepo: userRepo, rbac: rbacService}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	perms, err := s.rbac.ResolvePermissions(ctx, u.ID.String())
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	accessToken, _ := s.generateToken(u.ID.String(), u.Role, time.Minute*15)
	refreshToken, _ := s.generateToken(u.ID.String(), u.Role, time.Hour*24*7)

	return accessToken, refreshToken, AuthResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		EmployeeID:  u.EmployeeID,
		Permissions: perms,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !u.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	newAccess, _ := s.generateToken(u.ID.String(), u.Role, time.Minute*15)
	newRefresh, _ := s.generateToken(u.ID.String(), u.Role, time.Hour*24*7)

	return newAccess, newRefresh, AuthResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		EmployeeID: u.EmployeeID,
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	perms, err := s.rbac.ResolvePermissions(ctx, u.ID.String())
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		EmployeeID:  u.EmployeeID,
		Permissions: perms,
	}, nil
}

func (s *service) generateToken(userID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
