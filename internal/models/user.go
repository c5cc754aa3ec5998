package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// for registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

// for login
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

// AuthResponse is what the backend returns on login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session is the auth state held for one browser session.
type Session struct {
	ID         string    `json:"-"`
	Token      string    `json:"token"`
	User       User      `json:"user"`
	RememberMe bool      `json:"remember_me"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// SessionInfo is the auth state exposed to the browser. The token never leaves the server.
type SessionInfo struct {
	Authenticated bool       `json:"authenticated"`
	User          *User      `json:"user,omitempty"`
	RememberMe    bool       `json:"remember_me,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

func (s *Session) Info() SessionInfo {
	if !s.IsAuthenticated() {
		return SessionInfo{}
	}

	info := SessionInfo{Authenticated: true, User: &s.User, RememberMe: s.RememberMe}
	if !s.ExpiresAt.IsZero() {
		expiresAt := s.ExpiresAt
		info.ExpiresAt = &expiresAt
	}

	return info
}

// Claims is the part of the backend token the storefront reads. The
// signature is checked by the backend, never here.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
