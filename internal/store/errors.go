package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an account with the same login
	// already exists.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrEmailAlreadyExists is returned when another account already uses
	// the email address.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoAccountWasFound is returned when a lookup matches no account.
	ErrNoAccountWasFound = errors.New("no account was found")

	// ErrRecordNotFound is returned when a birth record does not exist.
	ErrRecordNotFound = errors.New("birth record was not found")

	// ErrArticleNotFound is returned when an article does not exist in the
	// requested feed.
	ErrArticleNotFound = errors.New("article was not found")

	// ErrTokenNotFound is returned for unknown, expired or already used
	// verification tokens.
	ErrTokenNotFound = errors.New("verification token was not found")

	// ErrCodeNotFound is returned when no one-time code is pending or the
	// supplied code does not match.
	ErrCodeNotFound = errors.New("one-time code was not found")

	// ErrMediaNotFound is returned when a media object does not exist.
	ErrMediaNotFound = errors.New("media was not found")

	// ErrUnsupportedDriver is returned for an unknown database driver.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
