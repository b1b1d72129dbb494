package repository

import (
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// PersonRepository defines the interface for team member data access
type PersonRepository interface {
	// Create creates a new person
	Create(person *models.Person) error

	// SetProfilePicture records the storage key of a person's picture
	SetProfilePicture(id, ownerID uint64, key string) error

	// FindByID finds a person by ID regardless of owner, with optional preloading
	FindByID(id uint64, preload ...string) (*models.Person, error)

	// ListByOwner lists the persons owned by a user
	ListByOwner(ownerID uint64, page utils.PaginationParams) ([]models.Person, int64, error)

	// CountByOwner counts the persons owned by a user
	CountByOwner(ownerID uint64) (int64, error)

	// CountOwned counts how many of the given person IDs the user owns
	CountOwned(ownerID uint64, ids []uint64) (int64, error)

	// Delete removes a person and their project associations
	Delete(id, ownerID uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithMembers creates a project and its member associations
	CreateWithMembers(project *models.Project, personIDs []uint64) error

	// FindByID finds a project by ID regardless of owner, with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List retrieves a user's projects with filtering and pagination
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// UpdateStatus sets the stored status of an owned project
	UpdateStatus(id, ownerID uint64, status models.ProjectStatus) error

	// Delete removes a project and its member associations
	Delete(id, ownerID uint64) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	OwnerID uint64
	Status  *models.ProjectStatus
	Page    utils.PaginationParams
}
