package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/user-service/internal/entity"
	"github.com/octobees/user-service/internal/logger"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup criteria.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameDuplicate is returned when the username is already taken.
	ErrUsernameDuplicate = errors.New("username already exists")
	// ErrEmailDuplicate is returned when the email is already registered.
	ErrEmailDuplicate = errors.New("email already exists")
)

const userColumns = "id, username, email, first_name, last_name, password_hash, role, phone_number, state, created_at, updated_at"

// UserFilter selects users by case-insensitive substring matches. Empty
// fields are ignored.
type UserFilter struct {
	Username  string
	Email     string
	FirstName string
}

// UserPatch lists the columns to change; nil fields are left untouched.
type UserPatch struct {
	Username     *string
	Email        *string
	FirstName    *string
	LastName     *string
	PhoneNumber  *string
	PasswordHash *string
	Role         *string
}

// UsersRepository declares persistence operations for users.
type UsersRepository interface {
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Create(ctx context.Context, user entity.User) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Search(ctx context.Context, filter UserFilter) ([]entity.User, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGXUsersRepository implements UsersRepository with pgx.
type PGXUsersRepository struct {
	pool pgxPool
	sql  sq.StatementBuilderType
}

// NewPGXUsersRepository instantiates a users repository.
func NewPGXUsersRepository(pool *pgxpool.Pool) *PGXUsersRepository {
	return newUsersRepository(pool)
}

func newUsersRepository(pool pgxPool) *PGXUsersRepository {
	return &PGXUsersRepository{
		pool: pool,
		sql:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindByUsername fetches a user by username if present.
func (r *PGXUsersRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by username: %w", err)
	}

	return user, nil
}

// FindByID retrieves a user by identifier.
func (r *PGXUsersRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}

	return user, nil
}

// Create inserts a new user row.
func (r *PGXUsersRepository) Create(ctx context.Context, user entity.User) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO users (username, email, first_name, last_name, password_hash, role, phone_number, state)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING `+userColumns,
		user.Username, user.Email, user.FirstName, user.LastName,
		user.PasswordHash, user.Role, user.PhoneNumber, user.State,
	)

	created, err := scanUser(row)
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			logger.FromContext(ctx).Debug().Err(err).Msg("insert user rejected by unique constraint")
			return nil, dup
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return created, nil
}

// List returns all users ordered by creation date (desc).
func (r *PGXUsersRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collectUsers(rows)
}

// Search returns users matching every non-empty filter field.
func (r *PGXUsersRepository) Search(ctx context.Context, filter UserFilter) ([]entity.User, error) {
	query := r.sql.Select(userColumns).From("users").OrderBy("created_at DESC")

	if v := strings.TrimSpace(filter.Username); v != "" {
		query = query.Where(sq.ILike{"username": containsPattern(v)})
	}
	if v := strings.TrimSpace(filter.Email); v != "" {
		query = query.Where(sq.ILike{"email": containsPattern(v)})
	}
	if v := strings.TrimSpace(filter.FirstName); v != "" {
		query = query.Where(sq.ILike{"first_name": containsPattern(v)})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	rows, err := r.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return collectUsers(rows)
}

// Update patches user attributes.
func (r *PGXUsersRepository) Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*entity.User, error) {
	set := map[string]any{}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		set["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["last_name"] = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		set["phone_number"] = *patch.PhoneNumber
	}
	if patch.PasswordHash != nil {
		set["password_hash"] = *patch.PasswordHash
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}

	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	stmt, args, err := r.sql.Update("users").
		SetMap(set).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	user, err := scanUser(r.pool.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if dup := duplicateError(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// Delete removes a user by id.
func (r *PGXUsersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	if err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.PasswordHash, &user.Role, &user.PhoneNumber, &user.State,
		&user.CreatedAt, &user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func collectUsers(rows pgx.Rows) ([]entity.User, error) {
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// duplicateError maps unique violations to the matching sentinel, or nil.
func duplicateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return fmt.Errorf("%w: %v", ErrUsernameDuplicate, pgErr)
	case "users_email_key":
		return fmt.Errorf("%w: %v", ErrEmailDuplicate, pgErr)
	}
	switch {
	case strings.Contains(pgErr.Message, "users_username_key"):
		return fmt.Errorf("%w: %v", ErrUsernameDuplicate, pgErr)
	case strings.Contains(pgErr.Message, "users_email_key"):
		return fmt.Errorf("%w: %v", ErrEmailDuplicate, pgErr)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
