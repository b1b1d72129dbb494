package dto

import (
	"time"

	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/utils"
)

// PersonDTO represents a team member in API responses
type PersonDTO struct {
	ID         uint64 `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id"`
	HasPicture bool   `json:"has_picture"`
}

// PersonDetailDTO represents a team member with the projects they work on
type PersonDetailDTO struct {
	PersonDTO
	Projects []ProjectDTO `json:"projects"`
}

// PersonListResponse represents a paginated list of team members
type PersonListResponse struct {
	Persons    []PersonDTO              `json:"persons"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToPersonDTO converts a Person model to PersonDTO
func ToPersonDTO(person models.Person) PersonDTO {
	return PersonDTO{
		ID:         person.ID,
		FirstName:  person.FirstName,
		LastName:   person.LastName,
		FullName:   person.FullName(),
		Email:      person.Email,
		EmployeeID: person.EmployeeID,
		HasPicture: person.HasPicture(),
	}
}

// ToPersonDetailDTO converts a person with preloaded projects
func ToPersonDetailDTO(person models.Person, now time.Time) PersonDetailDTO {
	projects := make([]ProjectDTO, 0, len(person.Projects))
	for _, m := range person.Projects {
		if m.Project.ID == 0 {
			continue
		}
		projects = append(projects, ToProjectDTO(m.Project, now))
	}

	return PersonDetailDTO{
		PersonDTO: ToPersonDTO(person),
		Projects:  projects,
	}
}

// ToPersonListResponse converts a page of persons to PersonListResponse
func ToPersonListResponse(persons []models.Person, page utils.PaginationParams, total int64) PersonListResponse {
	items := make([]PersonDTO, len(persons))
	for i, person := range persons {
		items[i] = ToPersonDTO(person)
	}

	return PersonListResponse{
		Persons: items,
		Pagination: utils.PaginationResponse{
			Page:  page.Page,
			Limit: page.Limit,
			Total: total,
		},
	}
}
