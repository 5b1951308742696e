package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/pkg/psqlbuilder"
)

const draftsTable = "calendar_drafts"

// PostgresRepository stores drafts as JSONB rows, see migrations/0001_create_calendar_drafts.up.sql
type PostgresRepository struct {
	db  DBExecutor
	ttl time.Duration
	now func() time.Time
}

// NewPostgresRepository creates a repository on top of an open database
func NewPostgresRepository(db DBExecutor, ttl time.Duration) *PostgresRepository {
	return &PostgresRepository{db: db, ttl: ttl, now: time.Now}
}

// Save upserts the draft
func (r *PostgresRepository) Save(ctx context.Context, d *calendar.Draft) error {
	raw, err := encode(d)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert(draftsTable).
		Columns("id", "owner", "state", "created_at", "updated_at").
		Values(d.ID.String(), d.Owner, string(raw), d.CreatedAt, r.now()).
		Suffix("ON CONFLICT (id) DO UPDATE SET owner = EXCLUDED.owner, state = EXCLUDED.state, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert id=%s: %v", ErrExecQuery, d.ID, err)
	}
	return nil
}

// Get loads a draft that was saved within the ttl
func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*calendar.Draft, error) {
	query, args, err := psqlbuilder.Select("state").
		From(draftsTable).
		Where(squirrel.Eq{"id": id.String()}).
		Where(squirrel.Gt{"updated_at": r.now().Add(-r.ttl)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var raw []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("%w: Get - scan id=%s: %v", ErrScanRow, id, err)
	}

	return decode(raw)
}

// Delete removes the draft. Unknown ids are ignored.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psqlbuilder.Delete(draftsTable).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete id=%s: %v", ErrExecQuery, id, err)
	}
	return nil
}

// DeleteExpired removes drafts not saved within the ttl
func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query, args, err := psqlbuilder.Delete(draftsTable).
		Where(squirrel.Lt{"updated_at": r.now().Add(-r.ttl)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - rows affected: %v", ErrExecQuery, err)
	}
	return removed, nil
}
