package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"approval-matrix-service/internal/models"
	"approval-matrix-service/internal/seeders"
	"approval-matrix-service/internal/services"
)

// MatrixFile is the YAML layout of a matrix override file
type MatrixFile struct {
	ApprovalTypes map[models.ApprovalType]models.MatrixEntry `yaml:"approvalTypes"`
	Roles         map[models.Role]models.RoleProfile         `yaml:"roles"`
}

// LoadMatrix builds the matrix the service resolves against. The system tables
// are used as is unless MatrixConfigPath names an override file.
func LoadMatrix(cfg *Config) (*services.Matrix, error) {
	if cfg.MatrixConfigPath == "" {
		return services.NewMatrix(seeders.SystemMatrix(), seeders.SystemRoles())
	}
	return LoadMatrixFile(cfg.MatrixConfigPath)
}

// LoadMatrixFile reads an override file and applies it on top of the system tables
func LoadMatrixFile(path string) (*services.Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read matrix file: %w", err)
	}

	file, err := ParseMatrixFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	entries, roles := file.Apply(seeders.SystemMatrix(), seeders.SystemRoles())
	return services.NewMatrix(entries, roles)
}

// ParseMatrixFile decodes YAML into a MatrixFile. Unknown keys are rejected.
func ParseMatrixFile(data []byte) (*MatrixFile, error) {
	var file MatrixFile
	if err := yamlStrict(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrInvalidMatrix, err)
	}

	for approvalType := range file.ApprovalTypes {
		if !approvalType.IsValid() {
			return nil, fmt.Errorf("%w: unknown approval type %q", services.ErrInvalidMatrix, approvalType)
		}
	}
	return &file, nil
}

// Apply replaces whole approval types and role profiles named by the file.
// Roles the file introduces are appended after the existing ones, sorted by name.
func (f *MatrixFile) Apply(entries []models.MatrixEntry, roles []models.RoleProfile) ([]models.MatrixEntry, []models.RoleProfile) {
	mergedEntries := make([]models.MatrixEntry, len(entries))
	for i, entry := range entries {
		if override, ok := f.ApprovalTypes[entry.Type]; ok {
			override.Type = entry.Type
			entry = override
		}
		mergedEntries[i] = entry
	}

	mergedRoles := make([]models.RoleProfile, 0, len(roles)+len(f.Roles))
	seen := make(map[models.Role]bool, len(roles))
	for _, profile := range roles {
		seen[profile.Role] = true
		if override, ok := f.Roles[profile.Role]; ok {
			override.Role = profile.Role
			profile = override
		}
		mergedRoles = append(mergedRoles, profile)
	}

	added := make([]models.Role, 0)
	for role := range f.Roles {
		if !seen[role] {
			added = append(added, role)
		}
	}
	sort.Slice(added, func(i, j int) bool { return added[i] < added[j] })
	for _, role := range added {
		profile := f.Roles[role]
		profile.Role = role
		mergedRoles = append(mergedRoles, profile)
	}

	return mergedEntries, mergedRoles
}

// yamlStrict decodes a single document; an empty input leaves out untouched
func yamlStrict(data []byte, out interface{}) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
