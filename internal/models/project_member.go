package models

import "time"

// ProjectMember records that a person works on a project.
type ProjectMember struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	PersonID  uint64    `gorm:"primarykey;index" json:"person_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Person  Person  `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}
