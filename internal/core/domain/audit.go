package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionLogin                AuditAction = "LOGIN"
	AuditActionOrderSettled         AuditAction = "ORDER_SETTLED"
	AuditActionProductMarkedSold    AuditAction = "PRODUCT_MARKED_SOLD"
	AuditActionUpstreamOrderCreated AuditAction = "UPSTREAM_ORDER_CREATED"
	AuditActionContactRequest       AuditAction = "CONTACT_REQUEST"
)

// AuditLog records a single audited write on the storefront API.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
