package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/repository"
	"github.com/yukikurage/project-tracker/internal/storage"
	"github.com/yukikurage/project-tracker/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrPersonNotFound  = errors.New("team member not found")
	ErrPictureNotFound = errors.New("team member has no profile picture")

	ErrFirstNameMissing  = newValidationError("Please provide a first name")
	ErrLastNameMissing   = newValidationError("Please provide a last name")
	ErrEmailMissing      = newValidationError("Please provide an email address")
	ErrEmailInvalid      = newValidationError("Please provide a valid email address")
	ErrEmployeeIDMissing = newValidationError("Please provide an employee ID")
	ErrPictureTooLarge   = newValidationError("Profile picture is too large")
)

// TeamService provides business logic for a user's roster of team members.
type TeamService struct {
	personRepo repository.PersonRepository
	store      storage.Store
}

// NewTeamService creates a new TeamService.
func NewTeamService(personRepo repository.PersonRepository, store storage.Store) *TeamService {
	return &TeamService{
		personRepo: personRepo,
		store:      store,
	}
}

// AddMemberInput represents parameters to add a team member. Picture is
// optional.
type AddMemberInput struct {
	OwnerID    uint64
	FirstName  string    `validate:"notblank"`
	LastName   string    `validate:"notblank"`
	Email      string    `validate:"required,email"`
	EmployeeID string    `validate:"notblank"`
	Picture    io.Reader `validate:"-"`
}

// ListMembers returns the team members owned by a user.
func (s *TeamService) ListMembers(ownerID uint64, page utils.PaginationParams) ([]models.Person, int64, error) {
	persons, total, err := s.personRepo.ListByOwner(ownerID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list team members: %w", err)
	}
	return persons, total, nil
}

// GetMember returns a team member and the projects they work on if the user
// owns them.
func (s *TeamService) GetMember(ownerID, personID uint64) (*models.Person, error) {
	person, err := s.personRepo.FindByID(personID, "Projects", "Projects.Project")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}

	if person.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	return person, nil
}

// AddMember creates a team member and stores their picture under a key
// derived from the new row's ID. If the picture cannot be stored the row is
// removed again.
func (s *TeamService) AddMember(ctx context.Context, input AddMemberInput) (*models.Person, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.EmployeeID = strings.TrimSpace(input.EmployeeID)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	person := &models.Person{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		EmployeeID: input.EmployeeID,
		OwnerID:    input.OwnerID,
	}

	if err := s.personRepo.Create(person); err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}

	if input.Picture == nil {
		return person, nil
	}

	key := storage.PictureKey(person.ID)
	if err := s.store.Put(ctx, key, input.Picture); err != nil {
		s.discard(ctx, person, "")
		return nil, fmt.Errorf("failed to store profile picture: %w", err)
	}

	if err := s.personRepo.SetProfilePicture(person.ID, person.OwnerID, key); err != nil {
		s.discard(ctx, person, key)
		return nil, fmt.Errorf("failed to record profile picture: %w", err)
	}
	person.ProfilePicture = key

	return person, nil
}

// discard undoes a partially added team member: the row and, when key is
// set, the stored picture.
func (s *TeamService) discard(ctx context.Context, person *models.Person, key string) {
	if err := s.personRepo.Delete(person.ID, person.OwnerID); err != nil {
		slog.Error("failed to remove team member after picture upload failed",
			"person_id", person.ID, "err", err)
	}
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete orphaned profile picture", "person_id", person.ID, "key", key, "err", err)
	}
}

// RemoveMember deletes a team member, their project associations and their
// stored picture.
func (s *TeamService) RemoveMember(ctx context.Context, ownerID, personID uint64) error {
	person, err := s.GetMember(ownerID, personID)
	if err != nil {
		return err
	}

	if err := s.personRepo.Delete(personID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonNotFound
		}
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	if person.HasPicture() {
		if err := s.store.Delete(ctx, person.ProfilePicture); err != nil {
			// The row is already gone; an orphaned file is harmless.
			slog.Warn("failed to delete profile picture", "person_id", personID, "key", person.ProfilePicture, "err", err)
		}
	}

	return nil
}

// OpenPicture returns the stored picture of an owned team member.
func (s *TeamService) OpenPicture(ctx context.Context, ownerID, personID uint64) (io.ReadCloser, error) {
	person, err := s.GetMember(ownerID, personID)
	if err != nil {
		return nil, err
	}
	if !person.HasPicture() {
		return nil, ErrPictureNotFound
	}

	rc, err := s.store.Open(ctx, person.ProfilePicture)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPictureNotFound
		}
		return nil, fmt.Errorf("failed to open profile picture: %w", err)
	}
	return rc, nil
}
