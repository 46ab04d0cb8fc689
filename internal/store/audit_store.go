package store

import (
	"context"

	"github.com/google/uuid"
)

type AuditStore struct {
	db DB
}

func NewAuditStore(db DB) *AuditStore {
	return &AuditStore{db: db}
}

// Log records a security-relevant action. The Execer may be a transaction so
// audit rows commit atomically with the change they describe.
func (s *AuditStore) Log(ctx context.Context, tx Execer, actorID int, action, entityType string, entityID int, data string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO audit_log (id, actor_id, action, entity_type, entity_id, data)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), actorID, action, entityType, entityID, data)
	return err
}
