package appointmentRepo

import (
	"time"

	"github.com/Pratik-911/skillswap/models"
)

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique ID. Returns nil when absent.
	GetByID(id string) (*models.Appointment, error)
	// Create inserts a new appointment record.
	Create(appt *models.Appointment) error
	// Update modifies an existing appointment record.
	Update(appt *models.Appointment) error
	// FindByTeacherAtTime looks for an appointment of the teacher at exactly
	// the given instant with one of the given statuses. Conflict detection is
	// exact-timestamp only; overlapping intervals are not considered.
	FindByTeacherAtTime(teacherID string, at time.Time, statuses []string) (*models.Appointment, error)
	// FindRatedCompletedByTeacher retrieves all completed appointments of the
	// teacher that carry a rating.
	FindRatedCompletedByTeacher(teacherID string) ([]models.Appointment, error)
	// FindByParticipant retrieves appointments where the user is teacher or
	// learner, optionally filtered by status, sorted by scheduled date.
	FindByParticipant(userID, status string) ([]models.Appointment, error)
}
