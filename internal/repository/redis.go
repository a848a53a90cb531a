package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/playforge/gameroom-backend/internal/apperror"
	"github.com/playforge/gameroom-backend/internal/entity"
)

const accountsKey = "accounts"

type redisAccounts struct {
	client *redis.Client
}

// NewRedisAccountRepository returns an account store backed by a single
// Redis hash keyed by username.
func NewRedisAccountRepository(client *redis.Client) AccountRepository {
	return &redisAccounts{
		client: client,
	}
}

func (that *redisAccounts) Create(ctx context.Context, username, password string) error {
	created, err := that.client.HSetNX(ctx, accountsKey, username, password).Result()
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	if !created {
		return fmt.Errorf("%w: %s", apperror.ErrAccountExists, username)
	}

	return nil
}

func (that *redisAccounts) Validate(ctx context.Context, username, password string) error {
	stored, err := that.client.HGet(ctx, accountsKey, username).Result()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %s", apperror.ErrAccountNotFound, username)
	}
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}

	if stored != password {
		return apperror.ErrWrongPassword
	}

	return nil
}

func (that *redisAccounts) Delete(ctx context.Context, username, password string) error {
	if err := that.Validate(ctx, username, password); err != nil {
		return err
	}

	if err := that.client.HDel(ctx, accountsKey, username).Err(); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}

func (that *redisAccounts) ListAll(ctx context.Context) ([]entity.Account, error) {
	stored, err := that.client.HGetAll(ctx, accountsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	all := make([]entity.Account, 0, len(stored))
	for username, password := range stored {
		all = append(all, entity.Account{Username: username, Password: password})
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })

	return all, nil
}
