package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sezzlegate/internal/shared/constants"
	"sezzlegate/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	e, err := NewEnforcer(db, "", logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, e.InitOrderPermissions())
	return e
}

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e := newTestEnforcer(t)

	tests := []struct {
		role   string
		action string
		want   bool
	}{
		{"admin", constants.ActionRefund, true},
		{"admin", constants.ActionRelease, true},
		{"operator", constants.ActionRelease, true},
		{"operator", constants.ActionCapture, true},
		{"operator", constants.ActionRefund, false},
		{"viewer", constants.ActionRead, true},
		{"viewer", constants.ActionRelease, false},
		{"stranger", constants.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.action, func(t *testing.T) {
			allowed, err := e.Enforce(tt.role, constants.ResourceOrder, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestEnforcer_InitIsIdempotent(t *testing.T) {
	e := newTestEnforcer(t)
	require.NoError(t, e.InitOrderPermissions())

	perms, err := e.GetPermissionsForRole("operator")
	require.NoError(t, err)
	assert.Len(t, perms, 3)
}

func TestEnforcer_PoliciesPersist(t *testing.T) {
	e := newTestEnforcer(t)

	require.NoError(t, e.AddPolicy("viewer", constants.ResourceOrder, constants.ActionCapture))
	require.NoError(t, e.LoadPolicy())
	allowed, err := e.Enforce("viewer", constants.ResourceOrder, constants.ActionCapture)
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, e.RemovePolicy("viewer", constants.ResourceOrder, constants.ActionCapture))
	require.NoError(t, e.LoadPolicy())
	allowed, err = e.Enforce("viewer", constants.ResourceOrder, constants.ActionCapture)
	require.NoError(t, err)
	assert.False(t, allowed)
}
