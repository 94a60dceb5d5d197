// Package auth guards the admin refresh endpoint with a shared-secret
// login that issues short-lived JWTs.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const adminSubject = "admin"

var (
	ErrInvalidCreds = errors.New("invalid credentials")

	jwtSecretOnce    sync.Once
	jwtSecretRuntime []byte
	jwtSecretErr     error
)

func jwtSecretFromEnv() ([]byte, error) {
	jwtSecretOnce.Do(func() {
		secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
		if secret != "" {
			jwtSecretRuntime = []byte(secret)
			return
		}

		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			jwtSecretErr = fmt.Errorf("failed to generate JWT fallback secret: %w", err)
			return
		}

		jwtSecretRuntime = []byte(base64.RawURLEncoding.EncodeToString(buf))
		log.Print("JWT_SECRET is not set; using ephemeral in-memory fallback secret")
	})

	if jwtSecretErr != nil {
		return nil, jwtSecretErr
	}
	if len(jwtSecretRuntime) == 0 {
		return nil, errors.New("JWT secret unavailable")
	}

	return jwtSecretRuntime, nil
}

// Service verifies the admin secret and issues session tokens. The secret
// is hashed at construction so the plaintext is never held on the struct.
type Service struct {
	secretHash []byte
}

// NewService hashes the admin secret from ADMIN_SECRET. An empty secret
// disables login entirely; the API stays read-only in that case.
func NewService() (*Service, error) {
	secret := strings.TrimSpace(os.Getenv("ADMIN_SECRET"))
	if secret == "" {
		log.Print("ADMIN_SECRET is not set; admin login disabled")
		return &Service{}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing failed: %w", err)
	}
	return &Service{secretHash: hash}, nil
}

type LoginRequest struct {
	Secret string `json:"secret"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login exchanges the admin secret for a 24h session token.
func (s *Service) Login(req LoginRequest) (*AuthResponse, error) {
	if len(s.secretHash) == 0 {
		return nil, ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword(s.secretHash, []byte(req.Secret)); err != nil {
		return nil, ErrInvalidCreds
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	token, err := generateToken(expiresAt)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func generateToken(expiresAt time.Time) (string, error) {
	secretKey, err := jwtSecretFromEnv()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sub": adminSubject,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}
