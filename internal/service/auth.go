// Package service provides the business logic of the API,
// delegating persistence to repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
)

// accessTTL is the lifetime of an issued access token.
const accessTTL = 3 * time.Hour

// ErrInvalidCredentials is returned when the username or password is wrong.
// Missing accounts and bad passwords are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("credenciales inválidas")

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// GetAdmin returns the admin with the given username, or (nil, nil)
	// when no such admin exists.
	GetAdmin(ctx context.Context, username string) (*models.Admin, error)
}

// AuthService authenticates admins and issues bearer access tokens.
type AuthService struct {
	// repo performs the data-layer operations.
	repo AuthRepository
	// secret is the HMAC key used to sign and verify tokens.
	secret []byte
}

// NewAuthService constructs a new AuthService using the provided repository
// and signing secret.
func NewAuthService(repo AuthRepository, secret []byte) *AuthService {
	return &AuthService{repo: repo, secret: secret}
}

// Authenticate verifies the admin's credentials and returns a signed HS256
// access token with the admin id as subject. Wrong credentials yield
// ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	admin, err := s.repo.GetAdmin(ctx, username)
	if err != nil {
		return "", fmt.Errorf("get admin: %w", err)
	}
	if admin == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(admin.ID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies an access token, returning the admin id
// it was issued for.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// HashPassword returns the bcrypt hash of a plaintext password, used when
// creating admin accounts.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
