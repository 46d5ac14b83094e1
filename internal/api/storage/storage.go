package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/shared/database"
	"github.com/jmoiron/sqlx"
)

// Storage implements the persistence needs of every API service on top of
// sqlx. Queries use '?' placeholders and are rebound for the active driver.
type Storage struct {
	db *sqlx.DB
}

func NewStorage(client *database.Client) *Storage {
	return &Storage{
		db: client.GetDB(),
	}
}

// notFound converts sql.ErrNoRows into a domain NotFound error
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewError(domain.KindNotFound, what+" not found")
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
