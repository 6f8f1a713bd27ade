package userRepo

import (
	"github.com/Pratik-911/skillswap/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SkillSearchCriteria selects active users whose skill lists intersect the
// given pattern sets. Patterns are matched case-insensitively as substrings,
// the same equivalence the match engine refines in memory.
type SkillSearchCriteria struct {
	// ExcludeID removes the requesting user from the candidate pool.
	ExcludeID string
	// TeachesAnyOf prefilters on skillsToTeach.
	TeachesAnyOf []string
	// LearnsAnyOf prefilters on skillsToLearn.
	LearnsAnyOf []string
	// RequireBoth demands both directions at once (mutual candidates).
	// Otherwise either direction qualifies.
	RequireBoth bool
}

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID. Returns nil when absent.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns nil when absent.
	GetByEmail(email string) (*models.User, error)
	// GetByTokenHash retrieves a user by the hash of its auth token.
	GetByTokenHash(hash string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	// GetByEmailWithProjection retrieves a user by its email with a projection.
	GetByEmailWithProjection(email string, projection bson.M) (*models.User, error)
	// FindActiveBySkillPatterns retrieves active users matching the criteria.
	FindActiveBySkillPatterns(criteria SkillSearchCriteria) ([]models.User, error)
	// SearchActiveBySkill pages through active users teaching a skill,
	// newest first, and reports the total match count.
	SearchActiveBySkill(excludeID, skill string, page, limit int64) ([]models.User, int64, error)
}
