package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker/internal/config"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/utils"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(SQLiteDSN(":memory:")), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	migrator := db.Migrator()
	for _, m := range Models() {
		assert.True(t, migrator.HasTable(m))
	}
	assert.True(t, migrator.HasIndex(&models.Project{}, "idx_projects_owner_deadline"))
	assert.True(t, migrator.HasIndex(&models.Person{}, "idx_persons_owner_name"))
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"sqlite", "mysql", "postgres"} {
		d, err := Dialector(config.DatabaseConfig{Driver: driver, Path: "x.db", Host: "h", Port: 1})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(config.DatabaseConfig{Host: "db", Port: 3306, User: "u", Password: "p", Name: "tracker"})
	assert.Contains(t, dsn, "u:p@tcp(db:3306)/tracker")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestScopes(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, db.AutoMigrate(Models()...))

	owner := models.User{Username: "owner", PasswordHash: "x"}
	other := models.User{Username: "other", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&other).Error)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Person{FirstName: "a", LastName: "b", Email: "e", EmployeeID: "1", OwnerID: owner.ID}).Error)
	}
	require.NoError(t, db.Create(&models.Person{FirstName: "c", LastName: "d", Email: "e", EmployeeID: "2", OwnerID: other.ID}).Error)

	var persons []models.Person
	require.NoError(t, db.Scopes(OwnedBy(owner.ID)).Find(&persons).Error)
	assert.Len(t, persons, 3)

	persons = nil
	require.NoError(t, db.Scopes(OwnedBy(owner.ID), Paginate(utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})).Find(&persons).Error)
	assert.Len(t, persons, 1)
}
