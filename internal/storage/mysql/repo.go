package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"staydeal/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertSettings(ctx context.Context, tenantID string, s domain.NegotiationSettings) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertSettingsSQL, tenantID, string(doc))
	return err
}

func (r *Repo) GetSettingsDoc(ctx context.Context, tenantID string) ([]byte, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, getSettingsSQL, tenantID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// copy out of the driver's buffer
	return append([]byte(nil), doc...), nil
}

func (r *Repo) ListTenantIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := r.db.QueryContext(ctx, listTenantIDsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) LogSyncMiss(ctx context.Context, tenantID string, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertSyncMissSQL, tenantID, status, reason)
	return err
}
