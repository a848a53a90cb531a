package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/playforge/gameroom-backend/internal/apperror"
	"github.com/playforge/gameroom-backend/internal/entity"
)

type memoryAccounts struct {
	accounts map[string]string
}

// NewMemoryAccountRepository returns a map-backed account store. Accounts do
// not survive a restart; the engine goroutine is the only caller.
func NewMemoryAccountRepository() AccountRepository {
	return &memoryAccounts{
		accounts: make(map[string]string),
	}
}

func (that *memoryAccounts) Create(_ context.Context, username, password string) error {
	if _, exists := that.accounts[username]; exists {
		return fmt.Errorf("%w: %s", apperror.ErrAccountExists, username)
	}

	that.accounts[username] = password

	return nil
}

func (that *memoryAccounts) Validate(_ context.Context, username, password string) error {
	stored, exists := that.accounts[username]
	if !exists {
		return fmt.Errorf("%w: %s", apperror.ErrAccountNotFound, username)
	}

	if stored != password {
		return apperror.ErrWrongPassword
	}

	return nil
}

func (that *memoryAccounts) Delete(_ context.Context, username, password string) error {
	stored, exists := that.accounts[username]
	if !exists {
		return fmt.Errorf("%w: %s", apperror.ErrAccountNotFound, username)
	}

	if stored != password {
		return apperror.ErrWrongPassword
	}

	delete(that.accounts, username)

	return nil
}

func (that *memoryAccounts) ListAll(_ context.Context) ([]entity.Account, error) {
	all := make([]entity.Account, 0, len(that.accounts))
	for username, password := range that.accounts {
		all = append(all, entity.Account{Username: username, Password: password})
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })

	return all, nil
}
