package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
)

// StaffRepository handles staff lookups for authentication and permission
// checks on the complaint API.
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StaffUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error)
	// HasAccessGrant reports whether an explicit train-access assignment
	// exists for the user, regardless of its windows.
	HasAccessGrant(ctx context.Context, staffID int64) (bool, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffSelect = `
        SELECT u.id, u.email, u.first_name, u.last_name, u.depot, ut.name, u.password_hash
        FROM user_onboarding_user u
        JOIN user_onboarding_roles ut ON u.user_type_id = ut.id`

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*domain.StaffUser, error) {
	return r.fetchSingle(ctx, staffSelect+` WHERE u.id=$1`, id)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	return r.fetchSingle(ctx, staffSelect+` WHERE u.email=$1`, email)
}

func (r *staffRepository) HasAccessGrant(ctx context.Context, staffID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM trains_trainaccess WHERE user_id=$1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, staffID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *staffRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.StaffUser, error) {
	var user domain.StaffUser
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Depot,
		&user.Role,
		&user.PasswordHash,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
