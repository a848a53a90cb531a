package repository

import (
	"context"

	"github.com/playforge/gameroom-backend/internal/entity"
)

// AccountRepository is the credential store the session core authenticates
// against. Passwords are stored and compared as opaque plaintext strings;
// that weakness is part of the protocol contract (the account list record
// carries them verbatim).
type AccountRepository interface {
	// Create stores a new account. Returns apperror.ErrAccountExists when
	// the username is taken; the stored password is never mutated by a
	// failed create.
	Create(ctx context.Context, username, password string) error
	// Validate checks the credentials. Returns apperror.ErrAccountNotFound
	// or apperror.ErrWrongPassword.
	Validate(ctx context.Context, username, password string) error
	// Delete removes an account when the credentials match. Returns
	// apperror.ErrAccountNotFound or apperror.ErrWrongPassword.
	Delete(ctx context.Context, username, password string) error
	// ListAll returns every stored account ordered by username.
	ListAll(ctx context.Context) ([]entity.Account, error)
}
