package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userbook/internal/common"
	"github.com/dmitrijs2005/userbook/internal/dbx"
	"github.com/dmitrijs2005/userbook/internal/server/models"
)

// SQLRepository implements Repository for SQLite and PostgreSQL.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

// NewSQLRepository returns a SQLRepository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: d}
}

func (r *SQLRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, phone_number, first_name, last_name, email_id, address
		FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("failed to select users", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.PhoneNumber, &u.FirstName, &u.LastName, &u.EmailID, &u.Address); err != nil {
			return nil, storageError("failed to scan user", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to iterate users", err)
	}
	return result, nil
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := r.dialect.Rebind(
		`INSERT INTO users (phone_number, first_name, last_name, email_id, address)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`)

	err := r.db.QueryRowContext(ctx, query,
		user.PhoneNumber, user.FirstName, user.LastName, user.EmailID, user.Address).Scan(&user.ID)
	if err != nil {
		return nil, writeError("failed to insert user", err)
	}
	return user, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := r.dialect.Rebind(
		`SELECT id, phone_number, first_name, last_name, email_id, address
		 FROM users WHERE id = ?`)

	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.PhoneNumber, &u.FirstName, &u.LastName, &u.EmailID, &u.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, storageError("failed to select user", err)
	}
	return u, nil
}

func (r *SQLRepository) Update(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	query := r.dialect.Rebind(
		`UPDATE users
		 SET phone_number = ?, first_name = ?, last_name = ?, email_id = ?, address = ?
		 WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		user.PhoneNumber, user.FirstName, user.LastName, user.EmailID, user.Address, id)
	if err != nil {
		return nil, writeError("failed to update user", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return nil, storageError("failed to get rows affected", err)
	}
	if ra == 0 {
		return nil, common.ErrorNotFound
	}

	user.ID = id
	return user, nil
}

func (r *SQLRepository) DeleteByID(ctx context.Context, id int64) error {
	query := r.dialect.Rebind(`DELETE FROM users WHERE id = ?`)

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return storageError("failed to delete user", err)
	}
	return nil
}

func storageError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %v", msg, common.ErrStorageUnavailable, err)
}

// writeError maps unique-constraint failures to *common.ConstraintError.
func writeError(msg string, err error) error {
	if name, ok := dbx.UniqueViolation(err); ok {
		return &common.ConstraintError{Field: constraintField(name), Err: err}
	}
	return storageError(msg, err)
}

// constraintField maps a column or constraint name to the form field it guards.
func constraintField(name string) string {
	switch {
	case strings.Contains(name, "email"):
		return "email_id"
	case strings.Contains(name, "phone"):
		return "phone_number"
	default:
		return name
	}
}
