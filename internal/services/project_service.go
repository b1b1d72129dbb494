package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/repository"
	"github.com/yukikurage/project-tracker/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")

	ErrNoTeamMembers      = newValidationError("Add a team member before creating a project")
	ErrProjectNameMissing = newValidationError("Please provide a project name")
	ErrDeadlineMissing    = newValidationError("Please provide a valid deadline")
	ErrInvalidPriority    = newValidationError("Priority must be Low, Medium or High")
	ErrInvalidMembers     = newValidationError("Invalid team member selection")
	ErrInvalidStatus      = newValidationError("Status must be Active or Complete")
	ErrUnknownAction      = newValidationError("Unknown action")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	personRepo  repository.PersonRepository
	now         func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, personRepo repository.PersonRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		personRepo:  personRepo,
		now:         time.Now,
	}
}

// WithClock replaces the time source used for creation timestamps.
func (s *ProjectService) WithClock(now func() time.Time) *ProjectService {
	s.now = now
	return s
}

// Now returns the service's current time.
func (s *ProjectService) Now() time.Time {
	return s.now()
}

// ListProjectsInput represents filters for listing projects
type ListProjectsInput struct {
	OwnerID uint64
	Status  string
	Page    utils.PaginationParams
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	OwnerID     uint64
	Name        string    `validate:"notblank"`
	Description string
	Deadline    time.Time `validate:"required"`
	Priority    string    `validate:"required"`
	MemberIDs   []uint64
}

// ListProjects returns the projects owned by a user
func (s *ProjectService) ListProjects(input ListProjectsInput) ([]models.Project, int64, error) {
	filter := repository.ProjectFilter{
		OwnerID: input.OwnerID,
		Page:    input.Page,
	}

	if input.Status != "" {
		st, ok := models.ParseProjectStatus(input.Status)
		if !ok {
			return nil, 0, ErrInvalidStatus
		}
		filter.Status = &st
	}

	projects, total, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, total, nil
}

// GetProject returns a project with its members if the user owns it
func (s *ProjectService) GetProject(ownerID, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, "Members", "Members.Person")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if project.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	return project, nil
}

// CreateProject validates the input and creates an active project together
// with its member associations
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	count, err := s.personRepo.CountByOwner(input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count team members: %w", err)
	}
	if count == 0 {
		return nil, ErrNoTeamMembers
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}
	priority, ok := models.ParsePriority(input.Priority)
	if !ok {
		return nil, ErrInvalidPriority
	}

	memberIDs := uniqueUint64(input.MemberIDs)
	if len(memberIDs) > 0 {
		owned, err := s.personRepo.CountOwned(input.OwnerID, memberIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to verify team members: %w", err)
		}
		if int(owned) != len(memberIDs) {
			return nil, ErrInvalidMembers
		}
	}

	project := &models.Project{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Deadline:    input.Deadline.UTC(),
		Priority:    priority,
		Status:      models.ProjectStatusActive,
		OwnerID:     input.OwnerID,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.projectRepo.CreateWithMembers(project, memberIDs); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// CompleteProject marks an owned project as complete
func (s *ProjectService) CompleteProject(ownerID, projectID uint64) error {
	if _, err := s.GetProject(ownerID, projectID); err != nil {
		return err
	}

	if err := s.projectRepo.UpdateStatus(projectID, ownerID, models.ProjectStatusComplete); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to complete project: %w", err)
	}

	return nil
}

// DeleteProject removes an owned project and its member associations
func (s *ProjectService) DeleteProject(ownerID, projectID uint64) error {
	if _, err := s.GetProject(ownerID, projectID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

func uniqueUint64(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
