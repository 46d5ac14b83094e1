package storage

import (
	"context"
	"fmt"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/model"
	"github.com/cuongbtq/interniq-be/shared/database"
)

const userColumns = `id, name, email, password_hash, role, created_at`

func (s *Storage) CreateUser(ctx context.Context, u *model.User) error {
	query := s.db.Rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := s.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.WrapError(domain.KindConflict, "user already exists with this email", err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := s.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)

	if err := s.db.GetContext(ctx, &u, query, email); err != nil {
		return nil, notFound(err, "user")
	}

	return &u, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	query := s.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)

	if err := s.db.GetContext(ctx, &u, query, id); err != nil {
		return nil, notFound(err, "user")
	}

	return &u, nil
}

// SetUserRole changes the role of an existing user
func (s *Storage) SetUserRole(ctx context.Context, id, role string) error {
	query := s.db.Rebind(`UPDATE users SET role = ? WHERE id = ?`)

	result, err := s.db.ExecContext(ctx, query, role, id)
	if err != nil {
		return fmt.Errorf("failed to set user role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.NewError(domain.KindNotFound, "user not found")
	}

	return nil
}
