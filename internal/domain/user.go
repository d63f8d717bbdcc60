package domain

import (
	"errors"
	"time"
)

// User represents a system user
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrRoleNotAllowed     = errors.New("role is not allowed to perform this operation")
	ErrUnknownRole        = errors.New("unknown role")
	ErrUserInactive       = errors.New("user account is inactive")
)
