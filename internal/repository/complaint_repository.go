package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
)

// ComplaintUpdate carries a partial update; nil fields are left untouched.
type ComplaintUpdate struct {
	PNRNumber      *string
	IsPNRValidated *domain.PNRValidationStatus
	Name           *string
	MobileNumber   *string
	ComplainType   *domain.ComplaintType
	Description    *string
	ComplainDate   *time.Time
	Status         *domain.ComplaintStatus
	TrainID        *int64
	TrainNumber    *string
	TrainName      *string
	Coach          *string
	BerthNo        *int
	UpdatedBy      *string
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, complainID int64) (*domain.Complaint, error)
	ListByDate(ctx context.Context, date time.Time, mobileNumber *string) ([]domain.Complaint, error)
	Update(ctx context.Context, complainID int64, update ComplaintUpdate) error
	Delete(ctx context.Context, complainID int64) error
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates the repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `complain_id, pnr_number, is_pnr_validated, name, mobile_number,
       complain_type, complain_description, complain_date, complain_status,
       train_id, train_number, train_name, coach, berth_no,
       created_at, created_by, updated_at, updated_by`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO rail_sathi_complain
            (pnr_number, is_pnr_validated, name, mobile_number, complain_type,
             complain_description, complain_date, complain_status, train_id,
             train_number, train_name, coach, berth_no, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING complain_id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.PNRNumber,
		complaint.IsPNRValidated,
		complaint.Name,
		complaint.MobileNumber,
		complaint.ComplainType,
		complaint.Description,
		complaint.ComplainDate,
		complaint.Status,
		complaint.TrainID,
		complaint.TrainNumber,
		complaint.TrainName,
		complaint.Coach,
		complaint.BerthNo,
		complaint.CreatedBy,
	).Scan(&complaint.ComplainID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, complainID int64) (*domain.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM rail_sathi_complain WHERE complain_id=$1`, complaintColumns)

	var complaint domain.Complaint
	if err := scanComplaint(r.pool.QueryRow(ctx, query, complainID), &complaint); err != nil {
		return nil, err
	}

	media, err := r.listMedia(ctx, complainID)
	if err != nil {
		return nil, err
	}
	complaint.MediaFiles = media
	return &complaint, nil
}

func (r *complaintRepository) ListByDate(ctx context.Context, date time.Time, mobileNumber *string) ([]domain.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM rail_sathi_complain WHERE complain_date=$1`, complaintColumns)
	args := []any{date}
	if mobileNumber != nil {
		args = append(args, *mobileNumber)
		query += fmt.Sprintf(" AND mobile_number=$%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := scanComplaint(rows, &complaint); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		media, err := r.listMedia(ctx, result[i].ComplainID)
		if err != nil {
			return nil, err
		}
		result[i].MediaFiles = media
	}
	return result, nil
}

func (r *complaintRepository) Update(ctx context.Context, complainID int64, update ComplaintUpdate) error {
	clauses := []string{}
	args := []any{}

	set := func(column string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.PNRNumber != nil {
		set("pnr_number", *update.PNRNumber)
	}
	if update.IsPNRValidated != nil {
		set("is_pnr_validated", *update.IsPNRValidated)
	}
	if update.Name != nil {
		set("name", *update.Name)
	}
	if update.MobileNumber != nil {
		set("mobile_number", *update.MobileNumber)
	}
	if update.ComplainType != nil {
		set("complain_type", *update.ComplainType)
	}
	if update.Description != nil {
		set("complain_description", *update.Description)
	}
	if update.ComplainDate != nil {
		set("complain_date", *update.ComplainDate)
	}
	if update.Status != nil {
		set("complain_status", *update.Status)
	}
	if update.TrainID != nil {
		set("train_id", *update.TrainID)
	}
	if update.TrainNumber != nil {
		set("train_number", *update.TrainNumber)
	}
	if update.TrainName != nil {
		set("train_name", *update.TrainName)
	}
	if update.Coach != nil {
		set("coach", *update.Coach)
	}
	if update.BerthNo != nil {
		set("berth_no", *update.BerthNo)
	}
	if update.UpdatedBy != nil {
		set("updated_by", *update.UpdatedBy)
	}
	if len(clauses) == 0 {
		return nil
	}
	clauses = append(clauses, "updated_at=NOW()")

	args = append(args, complainID)
	query := fmt.Sprintf(`UPDATE rail_sathi_complain SET %s WHERE complain_id=$%d`,
		strings.Join(clauses, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) Delete(ctx context.Context, complainID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM rail_sathi_complain WHERE complain_id=$1`, complainID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) listMedia(ctx context.Context, complainID int64) ([]domain.ComplaintMedia, error) {
	const query = `
        SELECT id, complain_id, media_type, media_url, created_at, created_by, updated_at, updated_by
        FROM rail_sathi_complain_media WHERE complain_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, complainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ComplaintMedia
	for rows.Next() {
		var media domain.ComplaintMedia
		if err := rows.Scan(
			&media.ID,
			&media.ComplainID,
			&media.MediaType,
			&media.MediaURL,
			&media.CreatedAt,
			&media.CreatedBy,
			&media.UpdatedAt,
			&media.UpdatedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, media)
	}
	return result, rows.Err()
}

func scanComplaint(row pgx.Row, complaint *domain.Complaint) error {
	return row.Scan(
		&complaint.ComplainID,
		&complaint.PNRNumber,
		&complaint.IsPNRValidated,
		&complaint.Name,
		&complaint.MobileNumber,
		&complaint.ComplainType,
		&complaint.Description,
		&complaint.ComplainDate,
		&complaint.Status,
		&complaint.TrainID,
		&complaint.TrainNumber,
		&complaint.TrainName,
		&complaint.Coach,
		&complaint.BerthNo,
		&complaint.CreatedAt,
		&complaint.CreatedBy,
		&complaint.UpdatedAt,
		&complaint.UpdatedBy,
	)
}
