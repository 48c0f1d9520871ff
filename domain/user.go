package domain

import (
	"context"
	"time"
)

// User represents a user entity in the system.
// A user can register, login, submit stories and write comments.
type User struct {
	ID        int64     // Unique identifier
	Username  string    // Login and display name (unique)
	Email     string    // Contact address (unique)
	Password  string    `json:"-"` // Bcrypt hashed password
	CreatedAt time.Time // Account creation timestamp
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// Insert creates a new user account.
	// Backfills the ID in the provided User object upon success.
	// Returns ErrConflict if username or email is taken.
	Insert(ctx context.Context, u *User) error

	// GetByUsername retrieves a user by their username.
	// Used during login to verify credentials.
	GetByUsername(ctx context.Context, username string) (User, error)

	GetByIDs(ctx context.Context, userIDs []int64) ([]User, error)
}

// UserUsecase defines the business logic contract for user operations.
type UserUsecase interface {
	// Register creates a new user account.
	// Returns ErrConflict if the username already exists.
	Register(ctx context.Context, username, email, password string) (User, error)

	// Login verifies user credentials and returns a JWT token.
	// Returns ErrUnauthorized if the user doesn't exist or the password is wrong.
	Login(ctx context.Context, username, password string) (string, error)

	// GetByUsername returns the public profile.
	GetByUsername(ctx context.Context, username string) (User, error)
}
