package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/status"
	"github.com/yukikurage/project-tracker/internal/utils"
)

func TestToProjectDTO_DerivesStatus(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	project := models.Project{
		ID:       7,
		Name:     "Engine",
		Deadline: now.Add(time.Hour),
		Priority: models.PriorityHigh,
		Status:   models.ProjectStatusActive,
		Members: []models.ProjectMember{
			{ProjectID: 7, PersonID: 1, Person: models.Person{ID: 1, FirstName: "Ada", LastName: "Lovelace"}},
		},
	}

	dto := ToProjectDTO(project, now)
	assert.Equal(t, status.ExpiringSoon, dto.DisplayStatus)
	assert.Equal(t, status.Amber, dto.StatusColor)
	assert.Equal(t, status.Red, dto.PriorityColor)
	assert.False(t, dto.IsComplete())
	require.Len(t, dto.Members, 1)
	assert.Equal(t, "Ada Lovelace", dto.Members[0].FullName)
}

func TestToProjectDTO_ShowsTimesInNowLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2026, 1, 10, 18, 0, 0, 0, tokyo)
	project := models.Project{
		Deadline:  time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Priority:  models.PriorityLow,
		Status:    models.ProjectStatusActive,
	}

	dto := ToProjectDTO(project, now)
	assert.Equal(t, tokyo, dto.Deadline.Location())
	assert.Equal(t, 9, dto.Deadline.Hour())
	assert.True(t, dto.Deadline.Equal(project.Deadline))
	assert.Equal(t, tokyo, dto.CreatedAt.Location())
}

func TestToPersonDetailDTO(t *testing.T) {
	now := time.Now()
	person := models.Person{
		ID:             3,
		FirstName:      "Grace",
		LastName:       "Hopper",
		ProfilePicture: "3.jpg",
		Projects: []models.ProjectMember{
			{Project: models.Project{ID: 1, Name: "Compiler", Deadline: now.Add(-time.Hour), Status: models.ProjectStatusActive}},
			{Project: models.Project{ID: 2, Name: "Cobol", Deadline: now.Add(-time.Hour), Status: models.ProjectStatusComplete}},
		},
	}

	dto := ToPersonDetailDTO(person, now)
	assert.True(t, dto.HasPicture)
	require.Len(t, dto.Projects, 2)
	assert.Equal(t, status.Expired, dto.Projects[0].DisplayStatus)
	assert.Equal(t, status.Complete, dto.Projects[1].DisplayStatus)
}

func TestListResponses(t *testing.T) {
	page := utils.PaginationParams{Page: 2, Limit: 10, Offset: 10}

	projects := ToProjectListResponse([]models.Project{{ID: 1}}, time.Now(), page, 11)
	assert.Len(t, projects.Projects, 1)
	assert.Equal(t, 2, projects.Pagination.Pages())

	persons := ToPersonListResponse(nil, page, 0)
	assert.Empty(t, persons.Persons)
	assert.Equal(t, 2, persons.Pagination.Page)
}
