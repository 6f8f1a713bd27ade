package appointment

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "github.com/Pratik-911/skillswap/database/repository/appointment"
	userRepo "github.com/Pratik-911/skillswap/database/repository/user"
	"github.com/Pratik-911/skillswap/models"
	"github.com/Pratik-911/skillswap/services/matching"
	"github.com/Pratik-911/skillswap/utils"

	"github.com/google/uuid"
)

// Role filters for listing a user's appointments.
const (
	FilterTeaching = "teaching"
	FilterLearning = "learning"
)

// AppointmentService owns the appointment lifecycle: booking with conflict
// detection, status transitions under the role policy, and learner feedback.
type AppointmentService interface {
	Create(ctx context.Context, learnerID string, in models.AppointmentInput) (*models.Appointment, error)
	GetByID(ctx context.Context, id, requesterID string) (*models.Appointment, error)
	ListForUser(ctx context.Context, userID, status, roleFilter string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id, requesterID, newStatus, notes string) (*models.Appointment, error)
	SubmitFeedback(ctx context.Context, id, requesterID string, rating int, feedback string) (*models.Appointment, error)
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo       appointmentRepo.AppointmentRepository
	UserRepo   userRepo.UserRepository
	Aggregator *RatingAggregator

	// bookingLocks serializes the conflict check-then-insert per
	// (teacher, timestamp) so two concurrent bookings cannot both pass.
	bookingLocks *keyedMutex
}

// NewDefaultAppointmentService wires the service with its repositories.
func NewDefaultAppointmentService(repo appointmentRepo.AppointmentRepository, users userRepo.UserRepository, agg *RatingAggregator) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		Repo:         repo,
		UserRepo:     users,
		Aggregator:   agg,
		bookingLocks: newKeyedMutex(),
	}
}

func bookingKey(teacherID string, at time.Time) string {
	return teacherID + "@" + at.UTC().Format(time.RFC3339Nano)
}

// Create books a new session as a pending request from the learner.
func (s *DefaultAppointmentService) Create(ctx context.Context, learnerID string, in models.AppointmentInput) (*models.Appointment, error) {
	teacher, err := s.UserRepo.GetByID(in.TeacherID)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to load teacher", err)
	}
	if teacher == nil {
		return nil, utils.NewNotFound("Teacher not found")
	}
	if in.TeacherID == learnerID {
		return nil, utils.NewValidation("cannot book a session with yourself")
	}

	hasSkill := false
	for _, taught := range teacher.SkillsToTeach {
		if matching.SkillsEquivalent(taught, in.Skill) {
			hasSkill = true
			break
		}
	}
	if !hasSkill {
		return nil, utils.NewValidation("Teacher does not offer this skill")
	}

	duration := in.Duration
	if duration == 0 {
		duration = models.DefaultDuration
	}
	if duration < models.MinDuration || duration > models.MaxDuration {
		return nil, utils.NewValidation(fmt.Sprintf("duration must be between %d and %d minutes", models.MinDuration, models.MaxDuration))
	}

	learner, err := s.UserRepo.GetByID(learnerID)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to load learner", err)
	}
	if learner == nil {
		return nil, utils.NewNotFound("Learner not found")
	}

	unlock := s.bookingLocks.Lock(bookingKey(in.TeacherID, in.ScheduledDate))
	defer unlock()

	conflict, err := s.Repo.FindByTeacherAtTime(in.TeacherID, in.ScheduledDate, []string{models.StatusPending, models.StatusAccepted})
	if err != nil {
		return nil, utils.NewInfrastructure("failed to check for conflicts", err)
	}
	if conflict != nil {
		return nil, utils.NewConflict("Teacher has a conflicting appointment at this time")
	}

	appt := &models.Appointment{
		ID:            uuid.New().String(),
		TeacherID:     in.TeacherID,
		LearnerID:     learnerID,
		Skill:         in.Skill,
		Title:         in.Title,
		Description:   in.Description,
		ScheduledDate: in.ScheduledDate,
		Duration:      duration,
		Status:        models.StatusPending,
		MeetingLink:   in.MeetingLink,
	}
	if err := s.Repo.Create(appt); err != nil {
		return nil, utils.NewInfrastructure("failed to create appointment", err)
	}

	s.attachParties(appt, teacher, learner)
	return appt, nil
}

// GetByID returns the appointment to one of its participants.
func (s *DefaultAppointmentService) GetByID(ctx context.Context, id, requesterID string) (*models.Appointment, error) {
	appt, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if RoleOn(appt, requesterID) == RoleNone {
		return nil, utils.NewForbidden("not a participant of this appointment")
	}
	if err := s.resolveParties(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// ListForUser returns the user's appointments sorted by scheduled date,
// optionally filtered by status and by role (teaching or learning).
func (s *DefaultAppointmentService) ListForUser(ctx context.Context, userID, status, roleFilter string) ([]models.Appointment, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, utils.NewValidation(fmt.Sprintf("invalid status %q", status))
	}

	appts, err := s.Repo.FindByParticipant(userID, status)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to list appointments", err)
	}

	filtered := appts[:0]
	for i := range appts {
		switch roleFilter {
		case FilterTeaching:
			if appts[i].TeacherID != userID {
				continue
			}
		case FilterLearning:
			if appts[i].LearnerID != userID {
				continue
			}
		}
		filtered = append(filtered, appts[i])
	}

	for i := range filtered {
		if err := s.resolveParties(&filtered[i]); err != nil {
			return nil, err
		}
	}
	if filtered == nil {
		filtered = []models.Appointment{}
	}
	return filtered, nil
}

// UpdateStatus applies a status transition on behalf of a participant,
// checked against the transition policy table.
func (s *DefaultAppointmentService) UpdateStatus(ctx context.Context, id, requesterID, newStatus, notes string) (*models.Appointment, error) {
	appt, err := s.load(id)
	if err != nil {
		return nil, err
	}

	role := RoleOn(appt, requesterID)
	if role == RoleNone {
		return nil, utils.NewForbidden("Not authorized to update this appointment")
	}
	if err := checkTransition(appt.Status, newStatus, role); err != nil {
		return nil, err
	}

	appt.Status = newStatus
	if notes != "" {
		appt.Notes = notes
	}
	if err := s.Repo.Update(appt); err != nil {
		return nil, utils.NewInfrastructure("failed to update appointment", err)
	}

	if err := s.resolveParties(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// SubmitFeedback records the learner's rating on a completed session and
// recomputes the teacher's aggregate rating. Re-submission overwrites.
func (s *DefaultAppointmentService) SubmitFeedback(ctx context.Context, id, requesterID string, rating int, feedback string) (*models.Appointment, error) {
	appt, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if requesterID != appt.LearnerID {
		return nil, utils.NewForbidden("Only learner can provide feedback")
	}
	if appt.Status != models.StatusCompleted {
		return nil, utils.NewInvalidState("Can only provide feedback for completed appointments")
	}
	if rating < 1 || rating > 5 {
		return nil, utils.NewValidation("rating must be between 1 and 5")
	}

	appt.Rating = &rating
	appt.Feedback = feedback
	if err := s.Repo.Update(appt); err != nil {
		return nil, utils.NewInfrastructure("failed to save feedback", err)
	}

	if err := s.Aggregator.Recompute(appt.TeacherID); err != nil {
		return nil, err
	}

	if err := s.resolveParties(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *DefaultAppointmentService) load(id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to load appointment", err)
	}
	if appt == nil {
		return nil, utils.NewNotFound("Appointment not found")
	}
	return appt, nil
}

// resolveParties loads and attaches the teacher and learner identities.
func (s *DefaultAppointmentService) resolveParties(appt *models.Appointment) error {
	teacher, err := s.UserRepo.GetByID(appt.TeacherID)
	if err != nil {
		return utils.NewInfrastructure("failed to load teacher", err)
	}
	learner, err := s.UserRepo.GetByID(appt.LearnerID)
	if err != nil {
		return utils.NewInfrastructure("failed to load learner", err)
	}
	s.attachParties(appt, teacher, learner)
	return nil
}

func (s *DefaultAppointmentService) attachParties(appt *models.Appointment, teacher, learner *models.User) {
	if teacher != nil {
		sum := teacher.Summary()
		sum.SkillsToLearn = nil
		appt.Teacher = &sum
	}
	if learner != nil {
		sum := learner.Summary()
		sum.SkillsToTeach = nil
		appt.Learner = &sum
	}
}
