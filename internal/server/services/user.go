// Package services contains server-side business logic. This file implements
// UserService, which validates contact forms and runs each store operation on
// its own pooled connection.
package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userbook/internal/dbx"
	"github.com/dmitrijs2005/userbook/internal/server/models"
	"github.com/dmitrijs2005/userbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userbook/internal/server/repositories/users"
	"github.com/dmitrijs2005/userbook/internal/server/validation"
)

// UserService provides the CRUD operations behind the web handlers:
// - List / Get: read records
// - Create / Update: validate a form, then write it
// - Delete: remove a record, idempotently
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   *validation.Validator
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, v *validation.Validator) *UserService {
	return &UserService{db: db, repomanager: m, validator: v}
}

// withUsers checks out a connection for exactly one repository call.
func (s *UserService) withUsers(ctx context.Context, fn func(ctx context.Context, repo users.Repository) error) error {
	return dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		return fn(ctx, s.repomanager.Users(conn))
	})
}

// List returns all records in storage order.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var list []models.User
	err := s.withUsers(ctx, func(ctx context.Context, repo users.Repository) error {
		var err error
		list, err = repo.GetAll(ctx)
		return err
	})
	return list, err
}

// Get returns the record with the given id or common.ErrorNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	var u *models.User
	err := s.withUsers(ctx, func(ctx context.Context, repo users.Repository) error {
		var err error
		u, err = repo.GetByID(ctx, id)
		return err
	})
	return u, err
}

// Create validates f and inserts it. Validation failures are returned as
// validation.Errors before any write; duplicates as *common.ConstraintError.
func (s *UserService) Create(ctx context.Context, f validation.Form) (*models.User, error) {
	u, err := s.validator.Validate(ctx, f)
	if err != nil {
		return nil, err
	}

	var created *models.User
	err = s.withUsers(ctx, func(ctx context.Context, repo users.Repository) error {
		var err error
		created, err = repo.Create(ctx, u)
		return err
	})
	return created, err
}

// Update validates f and replaces every field of record id with it.
func (s *UserService) Update(ctx context.Context, id int64, f validation.Form) (*models.User, error) {
	u, err := s.validator.Validate(ctx, f)
	if err != nil {
		return nil, err
	}

	var updated *models.User
	err = s.withUsers(ctx, func(ctx context.Context, repo users.Repository) error {
		var err error
		updated, err = repo.Update(ctx, id, u)
		return err
	})
	return updated, err
}

// Delete removes record id. A missing id is not an error.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.withUsers(ctx, func(ctx context.Context, repo users.Repository) error {
		return repo.DeleteByID(ctx, id)
	})
}
