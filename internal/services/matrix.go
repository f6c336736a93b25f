package services

import (
	"fmt"
	"math"
	"strings"

	"approval-matrix-service/internal/models"
)

// Matrix is the validated, read-only set of approval tables.
// It is built once at startup; every accessor returns a copy.
type Matrix struct {
	entries map[models.ApprovalType]models.MatrixEntry
	types   []models.ApprovalType
	roles   map[models.Role]models.RoleProfile
	order   []models.Role
}

// NewMatrix validates the tables and returns an immutable Matrix.
// All problems are reported together, wrapped in ErrInvalidMatrix.
func NewMatrix(entries []models.MatrixEntry, roles []models.RoleProfile) (*Matrix, error) {
	m := &Matrix{
		entries: make(map[models.ApprovalType]models.MatrixEntry, len(entries)),
		roles:   make(map[models.Role]models.RoleProfile, len(roles)),
	}

	var problems []string
	addf := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	for _, profile := range roles {
		if profile.Role == "" {
			addf("role with empty name")
			continue
		}
		if _, dup := m.roles[profile.Role]; dup {
			addf("role %q declared twice", profile.Role)
			continue
		}
		if profile.MaxApprovalLimit != nil && (*profile.MaxApprovalLimit < 0 || math.IsNaN(*profile.MaxApprovalLimit)) {
			addf("role %q has a negative approval limit", profile.Role)
		}
		m.roles[profile.Role] = profile.Clone()
		m.order = append(m.order, profile.Role)
	}

	for _, entry := range entries {
		if !entry.Type.IsValid() {
			addf("unknown approval type %q", entry.Type)
			continue
		}
		if _, dup := m.entries[entry.Type]; dup {
			addf("approval type %q declared twice", entry.Type)
			continue
		}
		problems = append(problems, m.validateEntry(entry)...)
		m.entries[entry.Type] = entry.Clone()
	}

	for _, t := range models.AllApprovalTypes {
		if _, ok := m.entries[t]; !ok {
			addf("approval type %q has no matrix", t)
			continue
		}
		m.types = append(m.types, t)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMatrix, strings.Join(problems, "; "))
	}
	return m, nil
}

func (m *Matrix) validateEntry(entry models.MatrixEntry) []string {
	var problems []string
	addf := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf("%s: ", entry.Type)+fmt.Sprintf(format, args...))
	}

	if len(entry.Thresholds) == 0 {
		addf("no thresholds")
		return problems
	}

	var previous *float64
	for i, threshold := range entry.Thresholds {
		last := i == len(entry.Thresholds)-1
		switch {
		case threshold.Max == nil && !last:
			addf("threshold %d is unbounded but is not the last one", i)
		case threshold.Max != nil && last:
			addf("last threshold must be unbounded")
		case threshold.Max != nil && (math.IsNaN(*threshold.Max) || *threshold.Max < 0):
			addf("threshold %d has an invalid ceiling", i)
		case threshold.Max != nil && previous != nil && *threshold.Max <= *previous:
			addf("threshold %d ceiling %.0f is not above %.0f", i, *threshold.Max, *previous)
		}
		if threshold.Max != nil {
			previous = threshold.Max
		}
		if threshold.TimeLimitHours <= 0 {
			addf("threshold %d time limit must be positive", i)
		}
		if len(threshold.Roles) == 0 {
			addf("threshold %d has no roles", i)
		}
		problems = append(problems, m.checkRoles(entry.Type, fmt.Sprintf("threshold %d", i), threshold.Roles)...)
	}

	for name, condition := range entry.SpecialConditions {
		if name == "" {
			addf("special condition with empty name")
		}
		if condition.TimeLimitHours < 0 {
			addf("condition %q time limit must not be negative", name)
		}
		problems = append(problems, m.checkRoles(entry.Type, fmt.Sprintf("condition %q", name), condition.AdditionalRoles)...)
	}
	return problems
}

func (m *Matrix) checkRoles(t models.ApprovalType, where string, roles []models.Role) []string {
	var problems []string
	seen := make(map[models.Role]bool, len(roles))
	for _, role := range roles {
		if seen[role] {
			problems = append(problems, fmt.Sprintf("%s: %s lists %q twice", t, where, role))
		}
		seen[role] = true
		if _, ok := m.roles[role]; !ok {
			problems = append(problems, fmt.Sprintf("%s: %s names undeclared role %q", t, where, role))
		}
	}
	return problems
}

// ApprovalTypes returns the configured approval types in declaration order
func (m *Matrix) ApprovalTypes() []models.ApprovalType {
	return append([]models.ApprovalType(nil), m.types...)
}

// Entry returns a copy of the matrix for one approval type
func (m *Matrix) Entry(t models.ApprovalType) (models.MatrixEntry, error) {
	entry, ok := m.entries[t]
	if !ok {
		return models.MatrixEntry{}, fmt.Errorf("%w: %q", ErrApprovalTypeNotFound, t)
	}
	return entry.Clone(), nil
}

// Role returns a copy of the profile for role
func (m *Matrix) Role(role models.Role) (models.RoleProfile, bool) {
	profile, ok := m.roles[role]
	if !ok {
		return models.RoleProfile{}, false
	}
	return profile.Clone(), true
}

// Roles returns every role profile in declaration order
func (m *Matrix) Roles() []models.RoleProfile {
	out := make([]models.RoleProfile, 0, len(m.order))
	for _, role := range m.order {
		out = append(out, m.roles[role].Clone())
	}
	return out
}

// level returns the authority level of role, or 0 when the role is not declared
func (m *Matrix) level(role models.Role) int {
	return m.roles[role].Level
}

// entry returns the stored entry without copying, for internal read-only use
func (m *Matrix) entry(t models.ApprovalType) (models.MatrixEntry, bool) {
	entry, ok := m.entries[t]
	return entry, ok
}
