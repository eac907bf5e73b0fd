package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is a platform account. Email is a case-insensitive identity key.
// Users are created and destroyed outside this service; here only looked up.
type User struct {
	ID        UserID
	Email     string
	Name      string
	CreatedAt time.Time
}
