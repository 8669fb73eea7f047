package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"brewlog/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL      = 24 * time.Hour
	guestTokenTTL = 30 * 24 * time.Hour // guests have no way to sign in again
)

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrNotGuest        = errors.New("account is not a guest account")
)

// AuthService handles user auth logic: registration, guest accounts
// and the guest-to-registered migration.
type AuthService struct {
	authRepo   repository.Authorization
	signingKey []byte
}

func NewAuthService(repo repository.Authorization, signingKey string) *AuthService {
	return &AuthService{authRepo: repo, signingKey: []byte(signingKey)}
}

// Claims defines JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID  int  `json:"user_id"`
	IsGuest bool `json:"is_guest,omitempty"`
	IsAdmin bool `json:"is_admin,omitempty"`
}

// SignUp hashes the password and creates a new registered user.
func (s *AuthService) SignUp(username, password string) (int, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, errors.New("username is empty")
	}
	existing, err := s.authRepo.GetByUsername(username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUsernameTaken
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	return s.authRepo.Create(username, hash, false)
}

// GenerateToken validates credentials and returns a JWT.
func (s *AuthService) GenerateToken(username, password string) (string, error) {
	u, err := s.authRepo.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}

	return s.issueToken(u.ID, u.IsGuest, u.IsAdmin, tokenTTL)
}

// CreateGuest creates a throwaway account and returns its token. The
// random password is never revealed, so the token is the only way in
// until the guest migrates to a real account.
func (s *AuthService) CreateGuest() (string, error) {
	username := "guest-" + uuid.NewString()[:8]
	hash, err := hashPassword(uuid.NewString())
	if err != nil {
		return "", fmt.Errorf("guest password: %w", err)
	}
	id, err := s.authRepo.Create(username, hash, true)
	if err != nil {
		return "", err
	}
	return s.issueToken(id, true, false, guestTokenTTL)
}

// MigrateGuest upgrades a guest account in place, keeping every row
// the guest created, and returns a fresh non-guest token.
func (s *AuthService) MigrateGuest(userID int, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", errors.New("username is empty")
	}
	existing, err := s.authRepo.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.ID != userID {
		return "", ErrUsernameTaken
	}

	u, err := s.authRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	if !u.IsGuest {
		return "", ErrNotGuest
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}
	if err := s.authRepo.Promote(userID, username, hash); err != nil {
		return "", err
	}
	return s.issueToken(userID, false, u.IsAdmin, tokenTTL)
}

// ParseToken parses a JWT and returns its claims.
func (s *AuthService) ParseToken(accessToken string) (TokenClaims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return TokenClaims{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return TokenClaims{}, ErrInvalidToken
	}

	return TokenClaims{UserID: claims.UserID, IsGuest: claims.IsGuest, IsAdmin: claims.IsAdmin}, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int, isGuest, isAdmin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:  userID,
		IsGuest: isGuest,
		IsAdmin: isAdmin,
	})
	return token.SignedString(s.signingKey)
}
