package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	store     *Store
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(db *pgxpool.Pool, jwtSecret string) *Service {
	return &Service{
		store:     NewStore(db),
		jwtSecret: jwtSecret,
		tokenTTL:  12 * time.Hour,
	}
}

type LoginResult struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	RoleName string `json:"roleName"`
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.FindActiveUserByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.jwtSecret, Claims{
		UserID:   user.ID,
		RoleID:   user.RoleID,
		RoleName: user.RoleName,
	}, s.tokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	if err := s.store.UpdateLastLogin(ctx, user.ID); err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:    token,
		UserID:   user.ID,
		Email:    user.Email,
		RoleName: user.RoleName,
	}, nil
}

func (s *Service) HasPermission(ctx context.Context, roleID, permission string) (bool, error) {
	return s.store.HasPermission(ctx, roleID, permission)
}

// CreateUser provisions a login with the named role. Used by admins when
// onboarding employees.
func (s *Service) CreateUser(ctx context.Context, email, password, roleName string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", errors.New("email and password are required")
	}
	if _, ok := RolePermissions[roleName]; !ok {
		return "", errors.New("unknown role: " + roleName)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}
	return s.store.CreateUser(ctx, email, hash, roleName)
}
