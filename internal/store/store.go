// Package store holds the credential records and per-user usage counters.
// The engine never touches it; handlers inject it where needed.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

type User struct {
	Name         string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Plan         string    `json:"plan"`
	CreatedAt    time.Time `json:"created_at"`
}

// Usage counts the metered actions for one user.
type Usage struct {
	Uploads  int `json:"uploads"`
	Analyses int `json:"analyses"`
	Reports  int `json:"reports"`
}

// Counter names accepted by AddUsage.
const (
	UsageUploads  = "uploads"
	UsageAnalyses = "analyses"
	UsageReports  = "reports"
)

// UserStore is the injected credential and usage store. Duplicate creates
// and missing lookups are explicit errors, never swallowed.
type UserStore interface {
	FindUser(ctx context.Context, name string) (*User, error)
	CreateUser(ctx context.Context, name, passwordHash, role, plan string) error
	ListUsers(ctx context.Context) ([]User, error)
	AddUsage(ctx context.Context, name, counter string) error
	GetUsage(ctx context.Context, name string) (Usage, error)
	Close() error
}
