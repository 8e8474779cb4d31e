package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/xavierca1/ligue-prospector/internal/entity"
)

const leadColumns = `id, zip_code, address, owner_name, owner_phone, owner_email,
	equity_percent, years_owned, intent_score, email_content, sms_content,
	email_sent, sms_sent, created_at, updated_at`

const insertColumns = 12

type LeadRepository struct {
	DB *sqlx.DB
}

func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// InsertBatch writes all leads in one statement and fills their IDs and
// timestamps from the returned rows.
func (r *LeadRepository) InsertBatch(ctx context.Context, leads []entity.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO leads (zip_code, address, owner_name, owner_phone, owner_email,
	equity_percent, years_owned, intent_score, email_content, sms_content, email_sent, sms_sent)
	VALUES `)
	args := make([]any, 0, len(leads)*insertColumns)
	for i, l := range leads {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j := 0; j < insertColumns; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*insertColumns+j+1)
		}
		sb.WriteString(")")
		args = append(args,
			l.ZipCode, l.Address, l.OwnerName, l.OwnerPhone, l.OwnerEmail,
			l.EquityPercent, l.YearsOwned, l.IntentScore, l.EmailContent, l.SMSContent,
			l.EmailSent, l.SMSSent,
		)
	}
	sb.WriteString(" RETURNING id, created_at, updated_at")

	rows, err := r.DB.QueryxContext(ctx, sb.String(), args...)
	if err != nil {
		return persistenceError("insert leads", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(leads) {
			return fmt.Errorf("%w: insert leads: more rows returned than inserted", entity.ErrPersistenceFailed)
		}
		if err := rows.Scan(&leads[i].ID, &leads[i].CreatedAt, &leads[i].UpdatedAt); err != nil {
			return persistenceError("scan inserted lead", err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return persistenceError("insert leads", err)
	}
	return nil
}

func (r *LeadRepository) FindEligible(ctx context.Context, zip string, ch entity.Channel, limit int) ([]entity.Lead, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	cols := ch.Columns()
	query := fmt.Sprintf(`SELECT %s FROM leads
	WHERE zip_code = $1 AND %s = false AND %s IS NOT NULL AND %s IS NOT NULL
	ORDER BY intent_score DESC, created_at ASC
	LIMIT $2`, leadColumns, cols.Sent, cols.Content, cols.Contact)

	var leads []entity.Lead
	if err := r.DB.SelectContext(ctx, &leads, query, zip, limit); err != nil {
		return nil, persistenceError("select eligible leads", err)
	}
	return leads, nil
}

// MarkSent sets the channel flag. A lead already marked keeps its
// updated_at; an unknown id is an error.
func (r *LeadRepository) MarkSent(ctx context.Context, id string, ch entity.Channel, at time.Time) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	sent := ch.Columns().Sent
	query := fmt.Sprintf(`UPDATE leads SET updated_at = CASE WHEN %s THEN updated_at ELSE $2 END, %s = true WHERE id = $1`, sent, sent)

	res, err := r.DB.ExecContext(ctx, query, id, at)
	if err != nil {
		return persistenceError("mark lead sent", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistenceError("mark lead sent", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: lead %s not found", entity.ErrPersistenceFailed, id)
	}
	return nil
}

func (r *LeadRepository) ListByZip(ctx context.Context, zip string) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
	WHERE zip_code = $1
	ORDER BY intent_score DESC, created_at ASC`

	var leads []entity.Lead
	if err := r.DB.SelectContext(ctx, &leads, query, zip); err != nil {
		return nil, persistenceError("list leads", err)
	}
	return leads, nil
}

// Ping backs the health check.
func (r *LeadRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func persistenceError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s: %s (SQLSTATE %s)", entity.ErrPersistenceFailed, op, pgErr.Message, pgErr.Code)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%w: %s: %s (SQLSTATE %s)", entity.ErrPersistenceFailed, op, pqErr.Message, pqErr.Code)
	}
	return fmt.Errorf("%w: %s: %v", entity.ErrPersistenceFailed, op, err)
}
