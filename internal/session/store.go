package session

import (
	"context"
	"errors"
	"time"

	"hospital-admin/internal/models"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Identity is the authenticated principal carried by a session. It is resolved
// once per request and never mutated afterwards.
type Identity struct {
	ID       uint64      `json:"id"`
	Username string      `json:"nombre_usuario"`
	Role     models.Role `json:"tipo_usuario"`
}

// Store keeps identities by opaque session id.
type Store interface {
	Save(ctx context.Context, id string, identity Identity, ttl time.Duration) error
	Load(ctx context.Context, id string) (Identity, error)
	Delete(ctx context.Context, id string) error
}
