package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"smartpro/internal/requestctx"
)

type Event struct {
	ID          string          `json:"id"`
	ActorUserID string          `json:"actorUserId,omitempty"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entityType"`
	EntityID    string          `json:"entityId,omitempty"`
	Details     json.RawMessage `json:"details,omitempty"`
	RequestID   string          `json:"requestId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Recorder struct {
	DB *pgxpool.Pool
}

func NewRecorder(db *pgxpool.Pool) *Recorder {
	return &Recorder{DB: db}
}

// Record writes an audit event. Audit is a side channel: failures are logged
// and never returned to the caller.
func (r *Recorder) Record(ctx context.Context, actorUserID, action, entityType, entityID string, details any) {
	var payload []byte
	if details != nil {
		var err error
		payload, err = json.Marshal(details)
		if err != nil {
			slog.Warn("failed to marshal audit details", "action", action, "error", err)
			payload = nil
		}
	}

	requestID := requestctx.GetRequestID(ctx)

	_, err := r.DB.Exec(ctx, `
    INSERT INTO audit_events (actor_user_id, action, entity_type, entity_id, details, request_id)
    VALUES (NULLIF($1,'')::uuid, $2, $3, NULLIF($4,'')::uuid, $5, NULLIF($6,''))
  `, actorUserID, action, entityType, entityID, payload, requestID)
	if err != nil {
		slog.Warn("failed to record audit event", "action", action, "entityType", entityType, "error", err)
	}
}

func (r *Recorder) List(ctx context.Context, entityType, entityID string, limit, offset int) ([]Event, error) {
	rows, err := r.DB.Query(ctx, `
    SELECT id, COALESCE(actor_user_id::text, ''), action, entity_type,
           COALESCE(entity_id::text, ''), details, COALESCE(request_id, ''), created_at
    FROM audit_events
    WHERE ($1 = '' OR entity_type = $1)
      AND ($2 = '' OR entity_id = NULLIF($2,'')::uuid)
    ORDER BY created_at DESC
    LIMIT $3 OFFSET $4
  `, entityType, entityID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.ActorUserID, &e.Action, &e.EntityType,
			&e.EntityID, &e.Details, &e.RequestID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
