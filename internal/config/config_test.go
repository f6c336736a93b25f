package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"approval-matrix-service/internal/models"
	"approval-matrix-service/internal/seeders"
	"approval-matrix-service/internal/services"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "PORT", "LOG_LEVEL", "MATRIX_CONFIG_PATH", "SHUTDOWN_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8099", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.MatrixConfigPath)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MATRIX_CONFIG_PATH", "/etc/matrix.yaml")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/etc/matrix.yaml", cfg.MatrixConfigPath)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, logrus.DebugLevel, cfg.NewLogger().GetLevel())
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "soon")

	assert.Equal(t, 10*time.Second, Load().ShutdownTimeout)
}

func TestNewLogger_UnknownLevelIsInfo(t *testing.T) {
	cfg := &Config{LogLevel: "chatty"}

	logger := cfg.NewLogger()

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestLoadMatrix_SystemTables(t *testing.T) {
	matrix, err := LoadMatrix(&Config{})

	require.NoError(t, err)
	assert.Equal(t, models.AllApprovalTypes, matrix.ApprovalTypes())
}

const overrideYAML = `
approvalTypes:
  materialRequests:
    name: Material Request
    description: Site material requests
    thresholds:
      - max: 1000000
        roles: [Site Engineer]
        description: Petty requests
        timeLimitHours: 4
        autoEscalate: true
      - roles: [Site Engineer, Project Manager]
        description: Everything else
        timeLimitHours: 24
    specialConditions:
      urgent:
        timeLimitHours: 1
        description: Same-hour turnaround
roles:
  Project Manager:
    level: 2
    maxApprovalLimit: 750000000
    canDelegate: true
    department: Project Management
  Site Supervisor:
    level: 1
    maxApprovalLimit: 0
    department: Operations
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMatrix_OverrideFile(t *testing.T) {
	matrix, err := LoadMatrix(&Config{MatrixConfigPath: writeFile(t, overrideYAML)})
	require.NoError(t, err)

	service := services.NewApprovalMatrixService(matrix)

	small, err := service.Requirements(models.ApprovalTypeMaterialRequests, 500_000)
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleSiteEngineer}, small.RequiredRoles)
	assert.Equal(t, 4, small.TimeLimitHours)
	assert.True(t, small.AutoEscalate)

	urgent, err := service.Requirements(models.ApprovalTypeMaterialRequests, 5_000_000, models.ConditionUrgent)
	require.NoError(t, err)
	assert.Equal(t, 1, urgent.TimeLimitHours)
	assert.Nil(t, urgent.Threshold.Max)

	pm, ok := matrix.Role(models.RoleProjectManager)
	require.True(t, ok)
	assert.Equal(t, float64(750_000_000), *pm.MaxApprovalLimit)

	supervisor, ok := matrix.Role("Site Supervisor")
	require.True(t, ok)
	assert.True(t, supervisor.IsAdvisory())
	roles := matrix.Roles()
	assert.Equal(t, models.Role("Site Supervisor"), roles[len(roles)-1].Role)

	// untouched types keep the system thresholds
	rab, err := service.Requirements(models.ApprovalTypeRAB, 10_000_000)
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleSiteEngineer}, rab.RequiredRoles)
}

func TestLoadMatrixFile_EmptyFileKeepsSystemTables(t *testing.T) {
	matrix, err := LoadMatrixFile(writeFile(t, ""))

	require.NoError(t, err)
	assert.Len(t, matrix.Roles(), len(seeders.SystemRoles()))
}

func TestLoadMatrixFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "unknown approval type",
			content: "approvalTypes:\n  invoices:\n    name: Invoice\n",
			message: `unknown approval type "invoices"`,
		},
		{
			name:    "unknown field",
			content: "approvalTypes:\n  rab:\n    owner: finance\n",
			message: "owner",
		},
		{
			name: "undeclared role",
			content: `approvalTypes:
  rab:
    thresholds:
      - roles: [Night Watchman]
        timeLimitHours: 24
`,
			message: `undeclared role "Night Watchman"`,
		},
		{
			name: "bounded last threshold",
			content: `approvalTypes:
  rab:
    thresholds:
      - max: 100
        roles: [Site Engineer]
        timeLimitHours: 24
`,
			message: "last threshold must be unbounded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMatrixFile(writeFile(t, tt.content))

			require.Error(t, err)
			assert.ErrorIs(t, err, services.ErrInvalidMatrix)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadMatrixFile_MissingFile(t *testing.T) {
	_, err := LoadMatrixFile(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
