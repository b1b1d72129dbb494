package models

import "time"

// Person is a team member on a user's roster.
type Person struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	FirstName      string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName       string    `gorm:"type:varchar(255);not null" json:"last_name"`
	Email          string    `gorm:"type:varchar(255);not null" json:"email"`
	EmployeeID     string    `gorm:"type:varchar(64);not null" json:"employee_id"`
	OwnerID        uint64    `gorm:"not null;index" json:"owner_id"`
	ProfilePicture string    `gorm:"type:varchar(255)" json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Owner    User            `gorm:"foreignKey:OwnerID" json:"-"`
	Projects []ProjectMember `gorm:"foreignKey:PersonID" json:"projects,omitempty"`
}

// TableName overrides the "people" table name gorm would infer.
func (Person) TableName() string {
	return "persons"
}

// HasPicture reports whether a profile picture is stored for the person.
func (p Person) HasPicture() bool {
	return p.ProfilePicture != ""
}

// FullName returns "First Last".
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}
