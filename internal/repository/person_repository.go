package repository

import (
	"github.com/yukikurage/project-tracker/internal/database"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/utils"
	"gorm.io/gorm"
)

// GormPersonRepository is a GORM implementation of PersonRepository
type GormPersonRepository struct {
	db *gorm.DB
}

// NewPersonRepository creates a new PersonRepository
func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &GormPersonRepository{db: db}
}

// Create creates a new person
func (r *GormPersonRepository) Create(person *models.Person) error {
	return r.db.Create(person).Error
}

// SetProfilePicture records the storage key of an owned person's picture
func (r *GormPersonRepository) SetProfilePicture(id, ownerID uint64, key string) error {
	res := r.db.Model(&models.Person{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("profile_picture", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a person by ID with optional preloading
func (r *GormPersonRepository) FindByID(id uint64, preload ...string) (*models.Person, error) {
	var person models.Person
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&person, id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// ListByOwner retrieves a page of persons ordered by last name, first name and ID
func (r *GormPersonRepository) ListByOwner(ownerID uint64, page utils.PaginationParams) ([]models.Person, int64, error) {
	var persons []models.Person

	query := r.db.Model(&models.Person{}).Scopes(database.OwnedBy(ownerID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("last_name ASC, first_name ASC, id ASC").
		Scopes(database.Paginate(page)).
		Find(&persons).Error; err != nil {
		return nil, 0, err
	}

	return persons, total, nil
}

// CountByOwner counts the persons owned by a user
func (r *GormPersonRepository) CountByOwner(ownerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Person{}).Scopes(database.OwnedBy(ownerID)).Count(&count).Error
	return count, err
}

// CountOwned counts how many of ids belong to the owner
func (r *GormPersonRepository) CountOwned(ownerID uint64, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Person{}).
		Scopes(database.OwnedBy(ownerID)).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

// Delete removes the person's project associations and the person in a
// single transaction.
func (r *GormPersonRepository) Delete(id, ownerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Person{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("person_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Person{}).Error
	})
}
