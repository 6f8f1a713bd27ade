package appointment

import (
	"math"

	appointmentRepo "github.com/Pratik-911/skillswap/database/repository/appointment"
	userRepo "github.com/Pratik-911/skillswap/database/repository/user"
	"github.com/Pratik-911/skillswap/utils"
)

// RatingAggregator recomputes a teacher's aggregate rating and session count
// from their completed, rated appointments. The user's rating field is
// derived data: nothing else writes it.
type RatingAggregator struct {
	Users        userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository

	// locks serializes the read-aggregate-write per teacher so two feedback
	// submissions completing concurrently cannot lose an update.
	locks *keyedMutex
}

// NewRatingAggregator wires the aggregator with its repositories.
func NewRatingAggregator(users userRepo.UserRepository, appts appointmentRepo.AppointmentRepository) *RatingAggregator {
	return &RatingAggregator{
		Users:        users,
		Appointments: appts,
		locks:        newKeyedMutex(),
	}
}

// roundRating rounds to one decimal, half up.
func roundRating(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// Recompute loads all completed, rated appointments of the teacher and writes
// back the mean rating (one decimal) and the session count. Invoked after
// every feedback submission; a no-op when the set is empty.
func (a *RatingAggregator) Recompute(teacherID string) error {
	unlock := a.locks.Lock(teacherID)
	defer unlock()

	rated, err := a.Appointments.FindRatedCompletedByTeacher(teacherID)
	if err != nil {
		return utils.NewInfrastructure("failed to load rated appointments", err)
	}
	if len(rated) == 0 {
		return nil
	}

	sum := 0
	for _, appt := range rated {
		if appt.Rating != nil {
			sum += *appt.Rating
		}
	}
	mean := roundRating(float64(sum) / float64(len(rated)))

	teacher, err := a.Users.GetByID(teacherID)
	if err != nil {
		return utils.NewInfrastructure("failed to load teacher", err)
	}
	if teacher == nil {
		return utils.NewNotFound("Teacher not found")
	}

	teacher.Rating = &mean
	teacher.TotalSessions = len(rated)
	if err := a.Users.Update(teacher); err != nil {
		return utils.NewInfrastructure("failed to save teacher rating", err)
	}
	return nil
}
