package models

import "time"

// Appointment statuses. An appointment starts pending; the teacher moves it to
// accepted or rejected; accepted sessions end completed or cancelled.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Session duration bounds in minutes.
const (
	MinDuration     = 15
	MaxDuration     = 480
	DefaultDuration = 60
)

// Appointment is a scheduled teaching session between two users.
type Appointment struct {
	ID            string    `bson:"id" json:"id"`
	TeacherID     string    `bson:"teacherId" json:"teacherId"`
	LearnerID     string    `bson:"learnerId" json:"learnerId"`
	Skill         string    `bson:"skill" json:"skill"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	ScheduledDate time.Time `bson:"scheduledDate" json:"scheduledDate"`
	Duration      int       `bson:"duration" json:"duration"`
	Status        string    `bson:"status" json:"status"`
	MeetingLink   string    `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Rating        *int      `bson:"rating,omitempty" json:"rating,omitempty"`
	Feedback      string    `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`

	// Resolved identities, populated by the service layer. Never persisted.
	Teacher *UserSummary `bson:"-" json:"teacher,omitempty"`
	Learner *UserSummary `bson:"-" json:"learner,omitempty"`
}

// IsTerminal reports whether the status admits no further transitions.
func IsTerminal(status string) bool {
	return status == StatusRejected || status == StatusCompleted || status == StatusCancelled
}

// ValidStatus reports whether s is one of the known appointment statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// AppointmentInput is the booking request payload. Shape constraints are
// enforced by binding; business rules by the appointment service.
type AppointmentInput struct {
	TeacherID     string    `json:"teacherId" binding:"required"`
	Skill         string    `json:"skill" binding:"required"`
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description" binding:"omitempty,max=500"`
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
	Duration      int       `json:"duration" binding:"omitempty,min=15,max=480"`
	MeetingLink   string    `json:"meetingLink"`
}

// StatusUpdateInput is the payload for the status transition endpoint.
type StatusUpdateInput struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected completed cancelled"`
	Notes  string `json:"notes" binding:"omitempty,max=1000"`
}

// FeedbackInput is the payload for the learner feedback endpoint.
type FeedbackInput struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback" binding:"omitempty,max=500"`
}
