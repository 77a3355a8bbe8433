package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"wisewallet/internal/domain/record"
)

const recordColumns = `id, user_id, title, amount, category, description, date, created_at`

// RecordRepository stores each record kind in its own table, named after
// the kind's collection.
type RecordRepository struct {
	db *DB
}

func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Insert(ctx context.Context, collection string, rec *record.Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, amount, category, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, pq.QuoteIdentifier(collection))

	_, err := r.db.ExecContext(
		ctx, query,
		rec.ID, rec.Owner, rec.Title, rec.Amount, rec.Category, rec.Description, rec.Date, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (r *RecordRepository) GetByID(ctx context.Context, collection, id string) (*record.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, recordColumns, pq.QuoteIdentifier(collection))

	var rec record.Record
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.Owner, &rec.Title, &rec.Amount, &rec.Category,
		&rec.Description, &rec.Date, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	normalize(&rec)
	return &rec, nil
}

func (r *RecordRepository) ListByOwner(ctx context.Context, collection, owner string) ([]*record.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY date DESC, seq ASC
	`, recordColumns, pq.QuoteIdentifier(collection))

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := make([]*record.Record, 0)
	for rows.Next() {
		var rec record.Record
		if err := rows.Scan(
			&rec.ID, &rec.Owner, &rec.Title, &rec.Amount, &rec.Category,
			&rec.Description, &rec.Date, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		normalize(&rec)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

func (r *RecordRepository) DeleteByID(ctx context.Context, collection, owner, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, pq.QuoteIdentifier(collection))

	result, err := r.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		return false, fmt.Errorf("failed to delete record: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *RecordRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func normalize(rec *record.Record) {
	rec.Date = rec.Date.UTC()
	rec.CreatedAt = rec.CreatedAt.UTC()
}
