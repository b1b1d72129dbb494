package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/project-tracker/internal/database"
	"github.com/yukikurage/project-tracker/internal/models"
)

// NewDB opens a migrated in-memory SQLite database with the same DSN options
// as production, so foreign keys are enforced. The pool is pinned to one
// connection so every statement sees the same database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(":memory:")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

// CreateUser inserts a user with a placeholder hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hashedpassword"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePerson inserts a team member owned by ownerID.
func CreatePerson(t *testing.T, db *gorm.DB, ownerID uint64, first, last string) *models.Person {
	t.Helper()
	person := &models.Person{
		FirstName:  first,
		LastName:   last,
		Email:      first + "@example.com",
		EmployeeID: "E-" + first,
		OwnerID:    ownerID,
	}
	require.NoError(t, db.Create(person).Error)
	return person
}

// CreateProject inserts an active project owned by ownerID, optionally with members.
func CreateProject(t *testing.T, db *gorm.DB, ownerID uint64, name string, deadline time.Time, memberIDs ...uint64) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:     name,
		Deadline: deadline,
		Priority: models.PriorityMedium,
		Status:   models.ProjectStatusActive,
		OwnerID:  ownerID,
	}
	require.NoError(t, db.Create(project).Error)
	for _, id := range memberIDs {
		require.NoError(t, db.Create(&models.ProjectMember{ProjectID: project.ID, PersonID: id}).Error)
	}
	return project
}
