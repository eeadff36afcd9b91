package recordrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	query := `
        INSERT INTO records (phone, result, question_set, ts, viewed)
        VALUES ($1, $2, $3, $4, FALSE)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, rec.Phone, rec.Result, rec.QuestionSet, rec.TS).Scan(&rec.ID)
	if err != nil {
		zap.L().Error("can't save record", zap.Error(err))
		return nil, err
	}
	return rec, nil
}

// FindByPhone returns the history newest first.
func (r *Repository) FindByPhone(ctx context.Context, phone string) ([]domain.Record, error) {
	query := `
        SELECT id, phone, result, question_set, ts, viewed
        FROM records
        WHERE phone = $1
        ORDER BY ts DESC
    `
	rows, err := r.db.Query(ctx, query, phone)
	if err != nil {
		zap.L().Error("can't get records", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(&rec.ID, &rec.Phone, &rec.Result, &rec.QuestionSet, &rec.TS, &rec.Viewed); err != nil {
			zap.L().Error("can't scan record row", zap.Error(err))
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) FindByTS(ctx context.Context, phone string, ts int64) (*domain.Record, error) {
	query := `
        SELECT id, phone, result, question_set, ts, viewed
        FROM records
        WHERE phone = $1 AND ts = $2
    `
	var rec domain.Record
	err := r.db.QueryRow(ctx, query, phone, ts).Scan(&rec.ID, &rec.Phone, &rec.Result, &rec.QuestionSet, &rec.TS, &rec.Viewed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find record", zap.Error(err))
		return nil, err
	}
	return &rec, nil
}

// MarkViewed flips viewed on one record. It reports false if the record was
// already viewed, so only one caller ever wins the flip.
func (r *Repository) MarkViewed(ctx context.Context, id int64) (bool, error) {
	query := `
        UPDATE records
        SET viewed = TRUE
        WHERE id = $1 AND viewed = FALSE
    `
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("can't mark record viewed", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// MarkLatestUnviewed flips the newest unviewed record of phone. ok is false
// when the phone has no unviewed record.
func (r *Repository) MarkLatestUnviewed(ctx context.Context, phone string) (id int64, ok bool, err error) {
	query := `
        UPDATE records
        SET viewed = TRUE
        WHERE viewed = FALSE AND id = (
            SELECT id FROM records
            WHERE phone = $1 AND viewed = FALSE
            ORDER BY ts DESC
            LIMIT 1
            FOR UPDATE
        )
        RETURNING id
    `
	err = r.db.QueryRow(ctx, query, phone).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		zap.L().Error("can't mark latest record viewed", zap.Error(err))
		return 0, false, err
	}
	return id, true, nil
}

// Trim keeps only the newest keep records of phone.
func (r *Repository) Trim(ctx context.Context, phone string, keep int) (int64, error) {
	query := `
        DELETE FROM records
        WHERE phone = $1 AND id NOT IN (
            SELECT id FROM records
            WHERE phone = $1
            ORDER BY ts DESC
            LIMIT $2
        )
    `
	tag, err := r.db.Exec(ctx, query, phone, keep)
	if err != nil {
		zap.L().Error("can't trim records", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}
