package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
)

// TrainRepository reads the train registry.
type TrainRepository interface {
	// FindByNumber returns the registry row for a train number, or nil when
	// the registry has no entry. A missing train is not an error.
	FindByNumber(ctx context.Context, trainNo string) (*domain.TrainDetails, error)
}

type trainRepository struct {
	pool *pgxpool.Pool
}

// NewTrainRepository constructs the repository.
func NewTrainRepository(pool *pgxpool.Pool) TrainRepository {
	return &trainRepository{pool: pool}
}

func (r *trainRepository) FindByNumber(ctx context.Context, trainNo string) (*domain.TrainDetails, error) {
	const query = `
        SELECT id, train_no, train_name, depot
        FROM trains_traindetails WHERE train_no=$1
        ORDER BY id LIMIT 1`

	var train domain.TrainDetails
	err := r.pool.QueryRow(ctx, query, trainNo).Scan(
		&train.ID,
		&train.TrainNo,
		&train.TrainName,
		&train.Depot,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &train, nil
}
