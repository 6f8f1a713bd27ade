package models

import "time"

// User represents a platform member. Every user may both teach and learn;
// teacher/learner is a per-appointment role, not a user attribute.
//
// Rating and TotalSessions are derived values: they are written only by the
// rating aggregator from completed, rated appointments.
type User struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	Password      string    `bson:"-" json:"password,omitempty"`
	PasswordHash  string    `bson:"passwordHash" json:"-"`
	Bio           string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Location      string    `bson:"location,omitempty" json:"location,omitempty"`
	Avatar        string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	SkillsToTeach []string  `bson:"skillsToTeach" json:"skillsToTeach"`
	SkillsToLearn []string  `bson:"skillsToLearn" json:"skillsToLearn"`
	Rating        *float64  `bson:"rating,omitempty" json:"rating,omitempty"`
	TotalSessions int       `bson:"totalSessions" json:"totalSessions"`
	IsActive      bool      `bson:"isActive" json:"isActive"`
	TokenHash     string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SafeView returns a copy with credential material cleared. Anything embedded
// in a response that is not the caller's own profile goes through this.
func (u User) SafeView() User {
	u.Password = ""
	u.PasswordHash = ""
	u.TokenHash = ""
	return u
}

// RatingValue returns the aggregate rating, or 0 when the user has none yet.
func (u User) RatingValue() float64 {
	if u.Rating == nil {
		return 0
	}
	return *u.Rating
}

// UserSummary is the identity projection attached to appointments and
// conversation listings.
type UserSummary struct {
	ID            string   `bson:"id" json:"id"`
	Name          string   `bson:"name" json:"name"`
	Avatar        string   `bson:"avatar,omitempty" json:"avatar,omitempty"`
	SkillsToTeach []string `bson:"skillsToTeach,omitempty" json:"skillsToTeach,omitempty"`
	SkillsToLearn []string `bson:"skillsToLearn,omitempty" json:"skillsToLearn,omitempty"`
}

// Summary projects the user onto its identity summary.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:            u.ID,
		Name:          u.Name,
		Avatar:        u.Avatar,
		SkillsToTeach: u.SkillsToTeach,
		SkillsToLearn: u.SkillsToLearn,
	}
}
