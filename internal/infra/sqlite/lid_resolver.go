package sqlite

import (
	"context"
	"database/sql"
)

// LIDResolver maps WhatsApp LIDs to phone numbers using the mapping table
// whatsmeow maintains in the same database file.
type LIDResolver struct {
	db *sql.DB
}

func NewLIDResolver(db *sql.DB) *LIDResolver {
	return &LIDResolver{db: db}
}

// ResolveLIDToPhone returns lid unchanged when no mapping is known.
func (r *LIDResolver) ResolveLIDToPhone(ctx context.Context, lid string) string {
	var pn string
	err := r.db.QueryRowContext(ctx, `SELECT pn FROM whatsmeow_lid_map WHERE lid = ?`, lid).Scan(&pn)
	if err != nil || pn == "" {
		return lid
	}
	return pn
}
