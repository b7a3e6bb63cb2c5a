package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
)

// MediaRepository persists complaint media records.
type MediaRepository interface {
	Create(ctx context.Context, media *domain.ComplaintMedia) error
	DeleteByIDs(ctx context.Context, complainID int64, mediaIDs []int64) (int64, error)
	CountImages(ctx context.Context, complainID int64) (int, error)
}

type mediaRepository struct {
	pool *pgxpool.Pool
}

// NewMediaRepository constructs the repository.
func NewMediaRepository(pool *pgxpool.Pool) MediaRepository {
	return &mediaRepository{pool: pool}
}

func (r *mediaRepository) Create(ctx context.Context, media *domain.ComplaintMedia) error {
	const query = `
        INSERT INTO rail_sathi_complain_media (complain_id, media_type, media_url, created_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		media.ComplainID,
		media.MediaType,
		media.MediaURL,
		media.CreatedBy,
	).Scan(&media.ID, &media.CreatedAt, &media.UpdatedAt)
}

func (r *mediaRepository) DeleteByIDs(ctx context.Context, complainID int64, mediaIDs []int64) (int64, error) {
	const query = `
        DELETE FROM rail_sathi_complain_media
        WHERE complain_id=$1 AND id = ANY($2)`
	cmd, err := r.pool.Exec(ctx, query, complainID, mediaIDs)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *mediaRepository) CountImages(ctx context.Context, complainID int64) (int, error) {
	const query = `
        SELECT COUNT(*) FROM rail_sathi_complain_media
        WHERE complain_id=$1 AND media_type=$2`
	var count int
	if err := r.pool.QueryRow(ctx, query, complainID, domain.MediaTypeImage).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
