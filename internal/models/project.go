package models

import "time"

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "Active"
	ProjectStatusComplete ProjectStatus = "Complete"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority accepts a priority in any letter case.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(titleCase(s)) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	}
	return "", false
}

// ParseProjectStatus accepts a stored status in any letter case.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	switch ProjectStatus(titleCase(s)) {
	case ProjectStatusActive:
		return ProjectStatusActive, true
	case ProjectStatusComplete:
		return ProjectStatusComplete, true
	}
	return "", false
}

type Project struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Deadline    time.Time     `gorm:"not null;index" json:"deadline"`
	Priority    Priority      `gorm:"type:varchar(10);not null;default:'Low'" json:"priority"`
	Status      ProjectStatus `gorm:"type:varchar(10);not null;default:'Active'" json:"status"`
	OwnerID     uint64        `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Owner   User            `gorm:"foreignKey:OwnerID" json:"-"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
}

// IsComplete reports whether the stored status is Complete.
func (p Project) IsComplete() bool {
	return p.Status == ProjectStatusComplete
}
