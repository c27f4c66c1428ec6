package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"recipebox/internal/models"
	"recipebox/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTTL   = time.Hour
	signingKey = "r3c1pe-b0x-k3y" // TODO: load from config
)

// Domain errors for auth flows.
var (
	ErrUsernameTaken   = errors.New("username already taken")
	ErrEmptyCredential = errors.New("username and password must not be empty")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)

// AuthService handles account creation and token flows. Passwords are kept
// opaque: the store receives them exactly as submitted.
type AuthService struct {
	accounts repository.Accounts
}

func NewAuthService(accounts repository.Accounts) *AuthService {
	return &AuthService{accounts: accounts}
}

var _ Authorization = (*AuthService)(nil)

// SignUp creates a new account with a unique username.
func (s *AuthService) SignUp(username, password string) (int, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return 0, ErrEmptyCredential
	}
	existing, err := s.accounts.GetByUsername(username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUsernameTaken
	}
	return s.accounts.Create(username, password)
}

// Claims defines JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken checks credentials and returns a signed JWT.
func (s *AuthService) GenerateToken(username, password string) (string, error) {
	u, err := s.accounts.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	if u.Password != password {
		return "", ErrInvalidPassword
	}
	return issueToken(u.ID)
}

// ParseToken parses a JWT and returns the account id it carries.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(signingKey), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// AccountByID fetches an account; (nil, nil) when unknown.
func (s *AuthService) AccountByID(id int) (*models.Account, error) {
	return s.accounts.GetByID(id)
}

func issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(signingKey))
}
