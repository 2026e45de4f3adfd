package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lancelot03/pmconnect/internal/database"
	"github.com/lancelot03/pmconnect/internal/model"
)

func prepare(t *testing.T) *database.DatabaseManager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	dbm := database.New(db)
	require.NoError(t, dbm.Migrate())

	return dbm
}

func TestSeedFromFile(t *testing.T) {
	dbm := prepare(t)

	seedFile := filepath.Join(t.TempDir(), "admins.yml")
	data := `- employee_id: A001
  employee_name: Priya Menon
  password: secret1
- employee_id: A002
  employee_name: Vikram Shah
  password: secret2
  disabled: true
`
	require.NoError(t, os.WriteFile(seedFile, []byte(data), 0o600))

	r := NewAdminSeedRepo(dbm, seedFile)
	defer r.Stop()

	require.True(t, r.IsSeeded("A001"))
	require.True(t, r.IsSeeded("A002"))
	require.False(t, r.IsSeeded("admin"))

	u1 := dbm.UserQuery().ID("A001").One()
	require.NotNil(t, u1)
	require.Equal(t, model.RoleAdmin, u1.Role)
	require.True(t, u1.CheckPassword("secret1"))
	require.False(t, u1.Disabled)

	u2 := dbm.UserQuery().ID("A002").One()
	require.NotNil(t, u2)
	require.True(t, u2.Disabled)
}

func TestSeedDefaultAdmin(t *testing.T) {
	dbm := prepare(t)

	seedFile := filepath.Join(t.TempDir(), "admins.yml")

	r := NewAdminSeedRepo(dbm, seedFile)
	defer r.Stop()

	require.True(t, r.IsSeeded("admin"))

	u := dbm.UserQuery().ID("admin").One()
	require.NotNil(t, u)
	require.Equal(t, model.RoleAdmin, u.Role)
	require.True(t, u.CheckPassword("admin"))

	// empty file was created for the watcher
	_, err := os.Stat(seedFile)
	require.NoError(t, err)
}

func TestSeedKeepsExistingPassword(t *testing.T) {
	dbm := prepare(t)

	existing := &model.User{EmployeeID: "A001", EmployeeName: "Priya Menon", Role: model.RoleAdmin}
	require.NoError(t, existing.SetPassword("changed-by-user"))
	require.NoError(t, dbm.Create(existing))

	seedFile := filepath.Join(t.TempDir(), "admins.yml")
	data := `- employee_id: A001
  employee_name: Priya Menon
`
	require.NoError(t, os.WriteFile(seedFile, []byte(data), 0o600))

	r := NewAdminSeedRepo(dbm, seedFile)
	defer r.Stop()

	u := dbm.UserQuery().ID("A001").One()
	require.NotNil(t, u)
	require.True(t, u.CheckPassword("changed-by-user"))
}
