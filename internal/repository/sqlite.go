package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/playforge/gameroom-backend/internal/apperror"
	"github.com/playforge/gameroom-backend/internal/entity"
)

type sqliteAccounts struct {
	conn *sql.DB
}

// NewSQLiteAccountRepository returns an account store backed by the accounts
// table.
func NewSQLiteAccountRepository(conn *sql.DB) AccountRepository {
	return &sqliteAccounts{
		conn: conn,
	}
}

func (that *sqliteAccounts) Create(ctx context.Context, username, password string) error {
	if _, err := that.password(ctx, username); err == nil {
		return fmt.Errorf("%w: %s", apperror.ErrAccountExists, username)
	} else if !errors.Is(err, apperror.ErrAccountNotFound) {
		return err
	}

	query := `INSERT INTO accounts (username, password) VALUES (?, ?)`

	if _, err := that.conn.ExecContext(ctx, query, username, password); err != nil {
		return fmt.Errorf("can't save account: %w", err)
	}

	return nil
}

func (that *sqliteAccounts) Validate(ctx context.Context, username, password string) error {
	stored, err := that.password(ctx, username)
	if err != nil {
		return err
	}

	if stored != password {
		return apperror.ErrWrongPassword
	}

	return nil
}

func (that *sqliteAccounts) Delete(ctx context.Context, username, password string) error {
	if err := that.Validate(ctx, username, password); err != nil {
		return err
	}

	query := `DELETE FROM accounts WHERE username = ?`

	if _, err := that.conn.ExecContext(ctx, query, username); err != nil {
		return fmt.Errorf("can't delete account: %w", err)
	}

	return nil
}

func (that *sqliteAccounts) ListAll(ctx context.Context) ([]entity.Account, error) {
	query := `SELECT username, password FROM accounts ORDER BY username`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't list accounts: %w", err)
	}
	defer rows.Close()

	var all []entity.Account
	for rows.Next() {
		var account entity.Account
		if err = rows.Scan(&account.Username, &account.Password); err != nil {
			return nil, fmt.Errorf("can't scan account: %w", err)
		}
		all = append(all, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read accounts: %w", err)
	}

	return all, nil
}

func (that *sqliteAccounts) password(ctx context.Context, username string) (string, error) {
	query := `SELECT password FROM accounts WHERE username = ?`

	var stored string
	err := that.conn.QueryRowContext(ctx, query, username).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", apperror.ErrAccountNotFound, username)
	}
	if err != nil {
		return "", fmt.Errorf("can't find account: %w", err)
	}

	return stored, nil
}
