package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coolvent/fieldops/internal/domain"
)

// AuditRepository implements audit log persistence
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

const auditColumns = `id, actor_id, actor_role, previewed_role, action, resource_type, resource_id, request_id, created_at`

// Create inserts a new audit log entry
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		log.ID,
		log.ActorID,
		log.ActorRole,
		nullString(string(log.PreviewedRole)),
		log.Action,
		log.ResourceType,
		log.ResourceID,
		log.RequestID,
		log.CreatedAt,
	)

	return err
}

// List retrieves audit logs with filtering, newest first
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_logs WHERE 1=1`
	args := []any{}

	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
		query += fmt.Sprintf(` AND actor_id = $%d`, len(args))
	}

	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(` AND action = $%d`, len(args))
	}

	if filter.ResourceType != "" {
		args = append(args, filter.ResourceType)
		query += fmt.Sprintf(` AND resource_type = $%d`, len(args))
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var log domain.AuditLog
		var previewed *string

		err := rows.Scan(
			&log.ID,
			&log.ActorID,
			&log.ActorRole,
			&previewed,
			&log.Action,
			&log.ResourceType,
			&log.ResourceID,
			&log.RequestID,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if previewed != nil {
			log.PreviewedRole = domain.Role(*previewed)
		}

		logs = append(logs, &log)
	}

	return logs, rows.Err()
}
