package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
)

// DirectoryRepository exposes the read-only staff directory queries the
// notification rules depend on. All methods return an empty slice, never
// nil results, when nothing matches.
type DirectoryRepository interface {
	// WarRoomUsersInDepot lists war-room staff whose free-text depot field
	// contains the given depot name. Containment is case-sensitive and
	// unanchored.
	WarRoomUsersInDepot(ctx context.Context, depot string) ([]domain.StaffUser, error)
	// StaffByRole lists all staff holding the exact role name.
	StaffByRole(ctx context.Context, role domain.StaffRole) ([]domain.StaffUser, error)
	// TrainAccessGrants lists grants whose train-details payload is present
	// and non-trivial. Payloads are returned raw; callers parse per user.
	TrainAccessGrants(ctx context.Context) ([]domain.TrainAccessGrant, error)
}

type directoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository constructs the repository.
func NewDirectoryRepository(pool *pgxpool.Pool) DirectoryRepository {
	return &directoryRepository{pool: pool}
}

func (r *directoryRepository) WarRoomUsersInDepot(ctx context.Context, depot string) ([]domain.StaffUser, error) {
	const query = `
        SELECT u.id, u.email, u.first_name, u.last_name, u.depot, ut.name
        FROM user_onboarding_user u
        JOIN user_onboarding_roles ut ON u.user_type_id = ut.id
        WHERE ut.name = $1 AND POSITION($2 IN u.depot) > 0
        ORDER BY u.id`
	rows, err := r.pool.Query(ctx, query, domain.RoleWarRoomUser, depot)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStaffUsers(rows)
}

func (r *directoryRepository) StaffByRole(ctx context.Context, role domain.StaffRole) ([]domain.StaffUser, error) {
	const query = `
        SELECT u.id, u.email, u.first_name, u.last_name, u.depot, ut.name
        FROM user_onboarding_user u
        JOIN user_onboarding_roles ut ON u.user_type_id = ut.id
        WHERE ut.name = $1
        ORDER BY u.id`
	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStaffUsers(rows)
}

func (r *directoryRepository) TrainAccessGrants(ctx context.Context) ([]domain.TrainAccessGrant, error) {
	const query = `
        SELECT u.id, u.email, u.first_name, u.last_name, ta.train_details
        FROM user_onboarding_user u
        JOIN trains_trainaccess ta ON ta.user_id = u.id
        WHERE ta.train_details IS NOT NULL
          AND ta.train_details != ''
          AND ta.train_details != '{}'
          AND ta.train_details != 'null'
        ORDER BY u.id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.TrainAccessGrant{}
	for rows.Next() {
		var grant domain.TrainAccessGrant
		if err := rows.Scan(
			&grant.UserID,
			&grant.Email,
			&grant.FirstName,
			&grant.LastName,
			&grant.Details,
		); err != nil {
			return nil, err
		}
		result = append(result, grant)
	}
	return result, rows.Err()
}

func scanStaffUsers(rows pgx.Rows) ([]domain.StaffUser, error) {
	result := []domain.StaffUser{}
	for rows.Next() {
		var user domain.StaffUser
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.Depot,
			&user.Role,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
