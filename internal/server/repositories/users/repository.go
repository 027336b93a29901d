// Package users persists contact records in the users table.
//
// SQLRepository works over a dbx.DBTX, so the same code runs against a pooled
// *sql.DB, a checked-out *sql.Conn or a transaction. Queries are written with
// '?' placeholders and rebound for the configured dialect.
//
// Errors:
//   - common.ErrorNotFound when GetByID/Update address a missing id;
//   - *common.ConstraintError (matches common.ErrConstraintViolation) when a
//     write would duplicate phone_number or email_id;
//   - common.ErrStorageUnavailable for any other driver failure.
package users

import (
	"context"

	"github.com/dmitrijs2005/userbook/internal/server/models"
)

// Repository describes CRUD operations for user records.
type Repository interface {
	// GetAll returns every record in storage order.
	GetAll(ctx context.Context) ([]models.User, error)

	// Create inserts the record and sets its ID.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByID returns the record with the given id.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// Update replaces all fields of the record with the given id.
	Update(ctx context.Context, id int64, user *models.User) (*models.User, error)

	// DeleteByID removes the record. Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}
