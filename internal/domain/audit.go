package domain

import "time"

// AuditLog records a mutating action. When the action happened inside a role
// preview, PreviewedRole carries the previewed role while ActorID/ActorRole
// still identify the true actor.
type AuditLog struct {
	ID            string
	ActorID       string
	ActorRole     Role
	PreviewedRole Role
	Action        string
	ResourceType  string
	ResourceID    string
	RequestID     string
	CreatedAt     time.Time
}

// AuditFilter narrows audit log listings.
type AuditFilter struct {
	ActorID      string
	Action       string
	ResourceType string
	Limit        int
	Offset       int
}
