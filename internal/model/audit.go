package model

import "time"

// Audit actions recorded by the auth core.
const (
	AuditActionSignup = "auth.signup"
	AuditActionLogin  = "auth.login"
	AuditActionLogout = "auth.logout"
)

// Audit entry statuses.
const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)

type AuditActor struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	IP     string `json:"ip,omitempty"`
}

type AuditEntry struct {
	Action     string     `json:"action"`
	OccurredAt time.Time  `json:"occurred_at"`
	Actor      AuditActor `json:"actor"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
}

type AuditQuery struct {
	Action string
	Status string
	Email  string
	Page   int
	Limit  int
}
