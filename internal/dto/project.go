package dto

import (
	"time"

	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/status"
	"github.com/yukikurage/project-tracker/internal/utils"
)

// ProjectDTO represents a project in API responses and templates. Display
// status and colors are computed at conversion time.
type ProjectDTO struct {
	ID            uint64               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Deadline      time.Time            `json:"deadline"`
	Priority      models.Priority      `json:"priority"`
	Status        models.ProjectStatus `json:"status"`
	DisplayStatus status.Display       `json:"display_status"`
	StatusColor   status.Color         `json:"status_color"`
	PriorityColor status.Color         `json:"priority_color"`
	CreatedAt     time.Time            `json:"created_at"`
	Members       []PersonDTO          `json:"members,omitempty"`
}

// IsComplete reports whether the stored status is Complete.
func (p ProjectDTO) IsComplete() bool {
	return p.Status == models.ProjectStatusComplete
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectDTO             `json:"projects"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToProjectDTO converts a Project model to ProjectDTO, deriving its display
// status relative to now. Times are shown in now's location.
func ToProjectDTO(project models.Project, now time.Time) ProjectDTO {
	display, color := status.Derive(project.Status, project.Deadline, now)

	dto := ProjectDTO{
		ID:            project.ID,
		Name:          project.Name,
		Description:   project.Description,
		Deadline:      project.Deadline.In(now.Location()),
		Priority:      project.Priority,
		Status:        project.Status,
		DisplayStatus: display,
		StatusColor:   color,
		PriorityColor: status.PriorityColor(project.Priority),
		CreatedAt:     project.CreatedAt.In(now.Location()),
	}

	// Include members if preloaded
	if len(project.Members) > 0 {
		dto.Members = make([]PersonDTO, 0, len(project.Members))
		for _, m := range project.Members {
			if m.Person.ID == 0 {
				continue
			}
			dto.Members = append(dto.Members, ToPersonDTO(m.Person))
		}
	}

	return dto
}

// ToProjectListResponse converts a page of projects to ProjectListResponse
func ToProjectListResponse(projects []models.Project, now time.Time, page utils.PaginationParams, total int64) ProjectListResponse {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project, now)
	}

	return ProjectListResponse{
		Projects: items,
		Pagination: utils.PaginationResponse{
			Page:  page.Page,
			Limit: page.Limit,
			Total: total,
		},
	}
}
