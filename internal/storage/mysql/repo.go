package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"renthub/internal/domain"
)

func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// Repo keeps the search history in MySQL.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// RecordSearch assigns an ID and timestamp when the record has none.
func (r *Repo) RecordSearch(ctx context.Context, rec domain.SearchRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.SearchedAt.IsZero() {
		rec.SearchedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, insertSearchSQL,
		rec.ID,
		rec.Location,
		valInt(rec.BHK),
		valF64(rec.MinRent),
		valF64(rec.MaxRent),
		rec.ResultCount,
		rec.SearchedAt.UTC(),
	)
	return errors.Wrap(err, "insert search_history")
}

func (r *Repo) RecentSearches(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, recentSearchesSQL, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query search_history")
	}
	defer rows.Close()

	var out []domain.SearchRecord
	for rows.Next() {
		var (
			rec     domain.SearchRecord
			bhk     sql.NullInt64
			minRent sql.NullFloat64
			maxRent sql.NullFloat64
		)
		if err := rows.Scan(&rec.ID, &rec.Location, &bhk, &minRent, &maxRent, &rec.ResultCount, &rec.SearchedAt); err != nil {
			return nil, errors.Wrap(err, "scan search_history")
		}
		if bhk.Valid {
			n := int(bhk.Int64)
			rec.BHK = &n
		}
		if minRent.Valid {
			v := minRent.Float64
			rec.MinRent = &v
		}
		if maxRent.Valid {
			v := maxRent.Float64
			rec.MaxRent = &v
		}
		out = append(out, rec)
	}
	return out, errors.Wrap(rows.Err(), "iterate search_history")
}
