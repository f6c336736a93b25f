package models

import (
	"math"
	"time"
)

// DecisionStatus is the state of a single approval step
type DecisionStatus string

// DecisionStatus constants
const (
	StatusApproved DecisionStatus = "approved"
	StatusRejected DecisionStatus = "rejected"
	StatusPending  DecisionStatus = "pending"
)

// IsValid reports whether s is a recognized status
func (s DecisionStatus) IsValid() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusPending
}

// ApprovalRecord is one entry of approval history supplied by the caller
type ApprovalRecord struct {
	Role      Role           `json:"role" binding:"required"`
	Status    DecisionStatus `json:"status" binding:"required"`
	Timestamp time.Time      `json:"timestamp,omitempty"`
}

// Requirement is the resolved approval requirement for a transaction
type Requirement struct {
	ApprovalType      ApprovalType `json:"approvalType"`
	Amount            float64      `json:"amount"`
	RequiredRoles     []Role       `json:"requiredRoles"`
	TimeLimitHours    int          `json:"timeLimit"`
	AutoEscalate      bool         `json:"autoEscalate"`
	Description       string       `json:"description"`
	SpecialConditions []Condition  `json:"specialConditions"`
	Threshold         Threshold    `json:"matrix"`
}

// Requires reports whether role is one of the required roles
func (r *Requirement) Requires(role Role) bool {
	for _, required := range r.RequiredRoles {
		if required == role {
			return true
		}
	}
	return false
}

// TimeLimit returns the approval window as a duration
func (r *Requirement) TimeLimit() time.Duration {
	return time.Duration(r.TimeLimitHours) * time.Hour
}

// DueAt returns the deadline for an approval submitted at submittedAt
func (r *Requirement) DueAt(submittedAt time.Time) time.Time {
	return submittedAt.Add(r.TimeLimit())
}

// IsOverdue reports whether the approval window has elapsed at now
func (r *Requirement) IsOverdue(submittedAt, now time.Time) bool {
	return now.After(r.DueAt(submittedAt))
}

// ProgressState summarizes where an approval workflow stands
type ProgressState string

// ProgressState constants
const (
	ProgressPending  ProgressState = "pending"
	ProgressComplete ProgressState = "complete"
	ProgressRejected ProgressState = "rejected"
)

// Progress is the result of folding approval history into a requirement
type Progress struct {
	ApprovedCount    int           `json:"approvedCount"` // raw count of approved records, duplicates included
	TotalRequired    int           `json:"totalRequired"`
	// Percentage is ApprovedCount over TotalRequired. It can reach 100 while the
	// workflow is still pending or rejected; use IsComplete or State to test for done.
	Percentage       int           `json:"percentage"`
	IsComplete       bool          `json:"isComplete"`
	IsBlocked        bool          `json:"isBlocked"`
	State            ProgressState `json:"state"`
	PendingApprovers []Role        `json:"pendingApprovers"`
	RejectedBy       []Role        `json:"rejectedBy"`
}

// Percent rounds part/total*100 half up, capped at 100
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Floor(float64(part)/float64(total)*100 + 0.5))
	if p > 100 {
		return 100
	}
	return p
}

// Decision is a proposed approve or reject action by a role
type Decision struct {
	Role      Role           `json:"role" binding:"required"`
	Status    DecisionStatus `json:"status" binding:"required"`
	Comment   string         `json:"comment,omitempty"`
	Timestamp time.Time      `json:"timestamp,omitempty"`
}

// Record converts the decision into a history entry
func (d Decision) Record() ApprovalRecord {
	return ApprovalRecord{Role: d.Role, Status: d.Status, Timestamp: d.Timestamp}
}

// DecisionOutcome is the result of evaluating a decision against history
type DecisionOutcome struct {
	Record       ApprovalRecord `json:"record"`
	Progress     *Progress      `json:"progress"`
	NextApprover Role           `json:"nextApprover,omitempty"`
}
