package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/models"
)

// accountRepository is the database/sql implementation of [AccountRepository].
// It handles account creation, lookup and email verification against the
// "accounts" and "verification_tokens" tables.
type accountRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAccountRepository constructs an [AccountRepository] backed by db.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount inserts the account and its verification token in a single
// transaction and runs beforeCommit last.
//
// Error handling:
//   - duplicate login → [ErrLoginAlreadyExists];
//   - duplicate email → [ErrEmailAlreadyExists];
//   - an error from beforeCommit is returned as is, nothing is persisted.
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account, token *models.VerificationToken, beforeCommit func(models.Account) error) (models.Account, error) {
	log := logger.FromContext(ctx)

	account.CreatedAt = time.Now().UTC()
	query, args, err := r.db.buildInsertAccountQuery(account)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("failed to build query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		// create account in db
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&account.ID); err != nil {
			log.Err(err).Str("func", "*accountRepository.CreateAccount").Str("login", account.Login).Msg("failed to insert account")
			return r.db.uniqueError(err)
		}

		if token != nil {
			token.AccountID = account.ID
			tokenQuery, tokenArgs, err := r.db.buildInsertTokenQuery(*token)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, tokenQuery, tokenArgs...); err != nil {
				log.Err(err).Str("func", "*accountRepository.CreateAccount").Int64("account_id", account.ID).Msg("failed to insert verification token")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		if beforeCommit != nil {
			return beforeCommit(account)
		}
		return nil
	})
	if err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// CreateVerificationToken stores a token for an existing account and runs
// beforeCommit inside the same transaction.
func (r *accountRepository) CreateVerificationToken(ctx context.Context, token models.VerificationToken, beforeCommit func() error) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildInsertTokenQuery(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*accountRepository.CreateVerificationToken").Int64("account_id", token.AccountID).Msg("failed to insert verification token")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if beforeCommit != nil {
			return beforeCommit()
		}
		return nil
	})
}

// FindAccountByLogin returns the account with the given login or
// [ErrNoAccountWasFound].
func (r *accountRepository) FindAccountByLogin(ctx context.Context, login string) (models.Account, error) {
	return r.findAccount(ctx, sq.Eq{"login": login})
}

// FindAccountByID returns the account with the given id or
// [ErrNoAccountWasFound].
func (r *accountRepository) FindAccountByID(ctx context.Context, id int64) (models.Account, error) {
	return r.findAccount(ctx, sq.Eq{"id": id})
}

func (r *accountRepository) findAccount(ctx context.Context, where sq.Eq) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildSelectAccountQuery(where)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.findAccount").Msg("failed to build query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrNoAccountWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.findAccount").Msg("failed to scan account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return account, nil
}

// UpdatePassword replaces the stored password hash.
func (r *accountRepository) UpdatePassword(ctx context.Context, accountID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Update(tableAccounts).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"id": accountID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", "*accountRepository.UpdatePassword").Int64("account_id", accountID).Msg("failed to update password")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return ErrNoAccountWasFound
		}
		return nil
	})
}

// ConsumeVerificationToken marks the token used and the owner's email
// verified in one transaction.
func (r *accountRepository) ConsumeVerificationToken(ctx context.Context, token string, purpose models.TokenPurpose, now time.Time) (models.Account, error) {
	log := logger.FromContext(ctx)

	consumeQuery, consumeArgs, err := r.db.buildConsumeTokenQuery(token, purpose, now)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var accountID int64
	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, consumeQuery, consumeArgs...).Scan(&accountID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTokenNotFound
		}
		if err != nil {
			log.Err(err).Str("func", "*accountRepository.ConsumeVerificationToken").Msg("failed to consume token")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if purpose != models.PurposeRegistration {
			return nil
		}

		verifyQuery, verifyArgs, err := r.db.builder.Update(tableAccounts).
			Set("email_verified", true).
			Where(sq.Eq{"id": accountID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, verifyQuery, verifyArgs...); err != nil {
			log.Err(err).Str("func", "*accountRepository.ConsumeVerificationToken").Int64("account_id", accountID).Msg("failed to mark email verified")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		return models.Account{}, err
	}

	return r.FindAccountByID(ctx, accountID)
}
