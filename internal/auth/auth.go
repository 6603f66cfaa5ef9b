// Package auth issues and verifies the bearer tokens guarding the dashboard.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	_const "sysmon_pro/internal/const"
)

// Manager holds the credential store and token signing key.
type Manager struct {
	username     string
	passwordHash []byte
	secret       []byte
	tokenTTL     time.Duration
}

// New creates a manager with a single user. The plaintext password is hashed
// immediately and never retained. An empty secret generates a random one,
// which invalidates outstanding tokens across restarts.
func New(username, password, secret string, tokenTTL time.Duration) (*Manager, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	key := []byte(secret)
	if len(key) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		key = []byte(hex.EncodeToString(buf))
	}

	if tokenTTL <= 0 {
		tokenTTL = _const.DefaultTokenExpireHours * time.Hour
	}

	return &Manager{
		username:     username,
		passwordHash: hash,
		secret:       key,
		tokenTTL:     tokenTTL,
	}, nil
}

// Authenticate checks the credentials against the stored user.
func (m *Manager) Authenticate(username, password string) bool {
	if username != m.username {
		return false
	}
	return bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) == nil
}

// IssueToken signs a token for the user and returns it with its lifetime in
// seconds.
func (m *Manager) IssueToken(username string) (string, int64, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, int64(m.tokenTTL.Seconds()), nil
}

// VerifyToken validates a token and returns its subject.
func (m *Manager) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Middleware rejects requests lacking a valid Bearer token.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			WriteError(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}
		if _, err := m.VerifyToken(token); err != nil {
			WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WriteError writes the JSON error body shared by all API endpoints.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
