// Package status derives the display status of a project from its stored
// status and deadline. Only Active and Complete are ever persisted.
package status

import (
	"time"

	"github.com/yukikurage/project-tracker/internal/constants"
	"github.com/yukikurage/project-tracker/internal/models"
)

type Display string

const (
	Complete     Display = "Complete"
	Expired      Display = "Expired"
	ExpiringSoon Display = "Expiring Soon"
	Ongoing      Display = "Ongoing"
)

type Color string

const (
	Green Color = "green"
	Amber Color = "amber"
	Red   Color = "red"
)

// Derive maps a stored status and deadline to the status shown to the user.
func Derive(stored models.ProjectStatus, deadline, now time.Time) (Display, Color) {
	if stored == models.ProjectStatusComplete {
		return Complete, Green
	}

	delta := deadline.Sub(now)
	switch {
	case delta <= 0:
		return Expired, Red
	case delta < constants.ExpiringSoonWindow:
		return ExpiringSoon, Amber
	default:
		return Ongoing, Green
	}
}

func PriorityColor(p models.Priority) Color {
	switch p {
	case models.PriorityHigh:
		return Red
	case models.PriorityMedium:
		return Amber
	default:
		return Green
	}
}
