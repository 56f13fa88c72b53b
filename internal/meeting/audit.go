package meeting

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harshit001122/Tracking-system/internal/db"
)

// AuditSink receives every history entry once it has been recorded.
type AuditSink interface {
	Record(ctx context.Context, e HistoryEntry) error
}

// PostgresAudit mirrors meeting history into Postgres. Rows are only ever
// inserted; the in-memory store stays authoritative.
type PostgresAudit struct {
	db db.Querier
}

func NewPostgresAudit(q db.Querier) *PostgresAudit {
	return &PostgresAudit{db: q}
}

func (a *PostgresAudit) EnsureSchema(ctx context.Context) error {
	_, err := a.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS meeting_history_audit (
			audit_id    BIGSERIAL PRIMARY KEY,
			history_id  TEXT NOT NULL,
			session_id  TEXT NOT NULL,
			employee_id TEXT NOT NULL,
			details     JSONB NOT NULL,
			lead_id     TEXT,
			lead_info   JSONB,
			recorded_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create meeting_history_audit: %w", err)
	}
	return nil
}

func (a *PostgresAudit) Record(ctx context.Context, e HistoryEntry) error {
	details, err := json.Marshal(e.MeetingDetails)
	if err != nil {
		return fmt.Errorf("encode meeting details: %w", err)
	}
	var leadInfo []byte
	if e.LeadInfo != nil {
		if leadInfo, err = json.Marshal(e.LeadInfo); err != nil {
			return fmt.Errorf("encode lead info: %w", err)
		}
	}

	row := a.db.QueryRow(ctx, `
		INSERT INTO meeting_history_audit (history_id, session_id, employee_id, details, lead_id, lead_info, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING audit_id
	`, e.ID, e.SessionID, e.EmployeeID, details, nullable(e.LeadID), leadInfo, e.Timestamp)
	var auditID int64
	if err := row.Scan(&auditID); err != nil {
		return fmt.Errorf("insert audit row for %s: %w", e.ID, err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
