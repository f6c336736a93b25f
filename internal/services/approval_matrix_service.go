package services

import (
	"fmt"
	"math"

	"approval-matrix-service/internal/models"
)

// ApprovalMatrixService resolves approval requirements against a Matrix.
// It holds no mutable state and is safe for concurrent use.
type ApprovalMatrixService struct {
	matrix *Matrix
}

// NewApprovalMatrixService creates a new ApprovalMatrixService
func NewApprovalMatrixService(matrix *Matrix) *ApprovalMatrixService {
	return &ApprovalMatrixService{matrix: matrix}
}

// Matrix returns the tables the service resolves against
func (s *ApprovalMatrixService) Matrix() *Matrix {
	return s.matrix
}

// Requirements selects the threshold covering amount and applies the named special conditions.
// Unknown condition names are ignored; a repeated name is applied once.
func (s *ApprovalMatrixService) Requirements(approvalType models.ApprovalType, amount float64, conditions ...models.Condition) (*models.Requirement, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	entry, ok := s.matrix.entry(approvalType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrApprovalTypeNotFound, approvalType)
	}

	threshold, ok := selectThreshold(entry.Thresholds, amount)
	if !ok {
		return nil, fmt.Errorf("%w: %.2f in %s", ErrNoThreshold, amount, approvalType)
	}

	requiredRoles := append([]models.Role(nil), threshold.Roles...)
	timeLimit := threshold.TimeLimitHours

	applied := make(map[models.Condition]bool, len(conditions))
	for _, name := range conditions {
		if applied[name] {
			continue
		}
		applied[name] = true

		condition, ok := entry.SpecialConditions[name]
		if !ok {
			continue
		}
		requiredRoles = unionRoles(requiredRoles, condition.AdditionalRoles)
		if condition.TimeLimitHours > 0 && condition.TimeLimitHours < timeLimit {
			timeLimit = condition.TimeLimitHours
		}
	}

	return &models.Requirement{
		ApprovalType:      approvalType,
		Amount:            amount,
		RequiredRoles:     requiredRoles,
		TimeLimitHours:    timeLimit,
		AutoEscalate:      threshold.AutoEscalate,
		Description:       threshold.Description,
		SpecialConditions: append([]models.Condition{}, conditions...),
		Threshold:         threshold.Clone(),
	}, nil
}

// HasAuthority reports whether role takes part in the base workflow for the amount.
// It checks workflow membership only, not the role's numeric approval limit.
func (s *ApprovalMatrixService) HasAuthority(role models.Role, approvalType models.ApprovalType, amount float64) (bool, error) {
	if _, ok := s.matrix.Role(role); !ok {
		return false, nil
	}

	requirement, err := s.Requirements(approvalType, amount)
	if err != nil {
		return false, err
	}
	return requirement.Requires(role), nil
}

// WithinApprovalLimit reports whether the role's numeric limit covers amount.
// Advisory roles never pass and unknown roles have no limit to speak of.
func (s *ApprovalMatrixService) WithinApprovalLimit(role models.Role, amount float64) bool {
	if validateAmount(amount) != nil {
		return false
	}
	profile, ok := s.matrix.Role(role)
	if !ok {
		return false
	}
	return profile.CanApproveAmount(amount)
}

// CanDelegate reports whether role may hand its approval to another role.
// Undeclared roles cannot delegate.
func (s *ApprovalMatrixService) CanDelegate(role models.Role) bool {
	profile, ok := s.matrix.Role(role)
	return ok && profile.CanDelegate
}

// NextApprover returns the most senior required role that has not approved yet,
// or "" once every required role has approved.
func (s *ApprovalMatrixService) NextApprover(approvalType models.ApprovalType, amount float64, approvals []models.ApprovalRecord, conditions ...models.Condition) (models.Role, error) {
	requirement, err := s.Requirements(approvalType, amount, conditions...)
	if err != nil {
		return "", err
	}
	return s.nextApprover(requirement, latestByRole(approvals)), nil
}

// Progress folds approval history into the requirement for the amount
func (s *ApprovalMatrixService) Progress(approvalType models.ApprovalType, amount float64, approvals []models.ApprovalRecord, conditions ...models.Condition) (*models.Progress, error) {
	requirement, err := s.Requirements(approvalType, amount, conditions...)
	if err != nil {
		return nil, err
	}
	return progress(requirement, approvals), nil
}

// EvaluateDecision checks that decision may be recorded against the history and
// returns the progress the workflow would have once it is.
func (s *ApprovalMatrixService) EvaluateDecision(approvalType models.ApprovalType, amount float64, conditions []models.Condition, history []models.ApprovalRecord, decision models.Decision) (*models.DecisionOutcome, error) {
	if decision.Status != models.StatusApproved && decision.Status != models.StatusRejected {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecision, decision.Status)
	}

	requirement, err := s.Requirements(approvalType, amount, conditions...)
	if err != nil {
		return nil, err
	}

	if !requirement.Requires(decision.Role) {
		return nil, fmt.Errorf("%w: %q for %s", ErrUnauthorizedApprover, decision.Role, approvalType)
	}

	latest := latestByRole(history)
	if previous, ok := latest[decision.Role]; ok && previous.Status == models.StatusApproved {
		return nil, fmt.Errorf("%w: %q", ErrAlreadyDecided, decision.Role)
	}

	record := decision.Record()
	if record.Timestamp.IsZero() {
		// Without a timestamp the decision must still sort after the history it extends.
		for _, existing := range history {
			if existing.Timestamp.After(record.Timestamp) {
				record.Timestamp = existing.Timestamp
			}
		}
	}

	updated := make([]models.ApprovalRecord, 0, len(history)+1)
	updated = append(updated, history...)
	updated = append(updated, record)

	return &models.DecisionOutcome{
		Record:       record,
		Progress:     progress(requirement, updated),
		NextApprover: s.nextApprover(requirement, latestByRole(updated)),
	}, nil
}

// --- Helper Methods ---

func (s *ApprovalMatrixService) nextApprover(requirement *models.Requirement, latest map[models.Role]models.ApprovalRecord) models.Role {
	var next models.Role
	nextLevel := -1
	for _, role := range requirement.RequiredRoles {
		if record, ok := latest[role]; ok && record.Status == models.StatusApproved {
			continue
		}
		// Strictly greater keeps the earliest role on ties.
		if level := s.matrix.level(role); level > nextLevel {
			next = role
			nextLevel = level
		}
	}
	return next
}

func progress(requirement *models.Requirement, approvals []models.ApprovalRecord) *models.Progress {
	approvedCount := 0
	for _, record := range approvals {
		if record.Status == models.StatusApproved {
			approvedCount++
		}
	}

	latest := latestByRole(approvals)
	pending := []models.Role{}
	rejected := []models.Role{}
	for _, role := range requirement.RequiredRoles {
		record, ok := latest[role]
		if ok && record.Status == models.StatusApproved {
			continue
		}
		pending = append(pending, role)
		if ok && record.Status == models.StatusRejected {
			rejected = append(rejected, role)
		}
	}

	total := len(requirement.RequiredRoles)
	result := &models.Progress{
		ApprovedCount:    approvedCount,
		TotalRequired:    total,
		Percentage:       models.Percent(approvedCount, total),
		IsComplete:       len(pending) == 0,
		IsBlocked:        len(rejected) > 0,
		State:            models.ProgressPending,
		PendingApprovers: pending,
		RejectedBy:       rejected,
	}
	switch {
	case result.IsBlocked:
		result.State = models.ProgressRejected
	case result.IsComplete:
		result.State = models.ProgressComplete
	}
	return result
}

// latestByRole keeps the most recent record per role. Timestamps are compared only
// when both records carry one; otherwise the later entry in the slice wins.
func latestByRole(approvals []models.ApprovalRecord) map[models.Role]models.ApprovalRecord {
	latest := make(map[models.Role]models.ApprovalRecord, len(approvals))
	for _, record := range approvals {
		if existing, ok := latest[record.Role]; ok && supersedes(existing, record) {
			continue
		}
		latest[record.Role] = record
	}
	return latest
}

// supersedes reports whether existing is strictly newer than a record appended after it
func supersedes(existing, appended models.ApprovalRecord) bool {
	if existing.Timestamp.IsZero() || appended.Timestamp.IsZero() {
		return false
	}
	return appended.Timestamp.Before(existing.Timestamp)
}

func selectThreshold(thresholds []models.Threshold, amount float64) (models.Threshold, bool) {
	for _, threshold := range thresholds {
		if threshold.Covers(amount) {
			return threshold, true
		}
	}
	return models.Threshold{}, false
}

func unionRoles(roles []models.Role, additional []models.Role) []models.Role {
	for _, role := range additional {
		found := false
		for _, existing := range roles {
			if existing == role {
				found = true
				break
			}
		}
		if !found {
			roles = append(roles, role)
		}
	}
	return roles
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	return nil
}
