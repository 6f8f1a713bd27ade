package user

import (
	"context"
	"fmt"
	"time"

	userRepo "github.com/Pratik-911/skillswap/database/repository/user"
	"github.com/Pratik-911/skillswap/models"
	"github.com/Pratik-911/skillswap/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// AuthResponse contains the authenticated user and its JWT token.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// ProfileUpdate carries a partial profile change. Nil fields are left as is.
type ProfileUpdate struct {
	Name          *string  `json:"name" binding:"omitempty,min=2"`
	Bio           *string  `json:"bio" binding:"omitempty,max=500"`
	Location      *string  `json:"location"`
	Avatar        *string  `json:"avatar"`
	SkillsToTeach []string `json:"skillsToTeach"`
	SkillsToLearn []string `json:"skillsToLearn"`
}

// SearchResult is one page of a skill search.
type SearchResult struct {
	Users       []models.User `json:"users"`
	TotalPages  int64         `json:"totalPages"`
	CurrentPage int64         `json:"currentPage"`
}

// UserService defines business logic for user operations.
type UserService interface {
	// RegisterUser creates a new user and returns it with a fresh token.
	RegisterUser(ctx context.Context, in models.User) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and returns the user and a token.
	AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error)
	// GetUserByID retrieves a user (safe view) by its unique ID.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	// UpdateProfile applies a partial profile update.
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error)
	// SearchBySkill pages through active users teaching the given skill.
	SearchBySkill(ctx context.Context, requesterID, skill string, page, limit int64) (*SearchResult, error)
	// RevokeToken invalidates the user's current auth token.
	RevokeToken(ctx context.Context, userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
}

// RegisterUser validates required fields, hashes the password, persists the
// user and returns it with a signed token.
func (s *DefaultUserService) RegisterUser(ctx context.Context, in models.User) (*AuthResponse, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, utils.NewValidation("name, email and password are required")
	}

	existing, err := s.Repo.GetByEmailWithProjection(in.Email, bson.M{"id": 1})
	if err != nil {
		return nil, utils.NewInfrastructure("failed to check for existing user", err)
	}
	if existing != nil {
		return nil, utils.NewConflict(fmt.Sprintf("user with email %s already exists", in.Email))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to hash password", err)
	}
	in.PasswordHash = string(hashed)
	in.Password = ""

	in.ID = uuid.New().String()
	in.IsActive = true
	in.Rating = nil
	in.TotalSessions = 0
	if in.SkillsToTeach == nil {
		in.SkillsToTeach = []string{}
	}
	if in.SkillsToLearn == nil {
		in.SkillsToLearn = []string{}
	}

	token, err := utils.GenerateToken(in.ID, in.Email, tokenTTL)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to generate auth token", err)
	}
	in.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(&in); err != nil {
		return nil, utils.NewInfrastructure("failed to create user", err)
	}

	s.cacheSession(ctx, in.TokenHash, in.ID)
	return &AuthResponse{User: in.SafeView(), Token: token}, nil
}

// AuthenticateUser verifies credentials, rotates the token hash and returns
// the user with a fresh token.
func (s *DefaultUserService) AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to load user", err)
	}
	if usr == nil {
		return nil, utils.NewForbidden("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewForbidden("invalid email or password")
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, tokenTTL)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to generate auth token", err)
	}
	usr.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(usr); err != nil {
		return nil, utils.NewInfrastructure("failed to store auth token", err)
	}

	s.cacheSession(ctx, usr.TokenHash, usr.ID)
	return &AuthResponse{User: usr.SafeView(), Token: token}, nil
}

// GetUserByID retrieves a user by its unique ID.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to load user", err)
	}
	if usr == nil {
		return nil, utils.NewNotFound("User not found")
	}
	safe := usr.SafeView()
	return &safe, nil
}

// UpdateProfile applies a partial profile update. Rating and session counts
// are derived fields and cannot be set here.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to load user", err)
	}
	if usr == nil {
		return nil, utils.NewNotFound("User not found")
	}

	if in.Name != nil && *in.Name != "" {
		usr.Name = *in.Name
	}
	if in.Bio != nil {
		usr.Bio = *in.Bio
	}
	if in.Location != nil {
		usr.Location = *in.Location
	}
	if in.Avatar != nil {
		usr.Avatar = *in.Avatar
	}
	if in.SkillsToTeach != nil {
		usr.SkillsToTeach = in.SkillsToTeach
	}
	if in.SkillsToLearn != nil {
		usr.SkillsToLearn = in.SkillsToLearn
	}

	if err := s.Repo.Update(usr); err != nil {
		return nil, utils.NewInfrastructure("failed to update user", err)
	}
	safe := usr.SafeView()
	return &safe, nil
}

// SearchBySkill pages through active users teaching the given skill.
func (s *DefaultUserService) SearchBySkill(ctx context.Context, requesterID, skill string, page, limit int64) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	users, total, err := s.Repo.SearchActiveBySkill(requesterID, skill, page, limit)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to search users", err)
	}

	safe := make([]models.User, 0, len(users))
	for _, u := range users {
		safe = append(safe, u.SafeView())
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &SearchResult{Users: safe, TotalPages: totalPages, CurrentPage: page}, nil
}

// RevokeToken clears the stored token hash and drops the cached session.
func (s *DefaultUserService) RevokeToken(ctx context.Context, userID string) error {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return utils.NewInfrastructure("failed to load user", err)
	}
	if usr == nil {
		return utils.NewNotFound("User not found")
	}

	if s.AuthCache != nil && usr.TokenHash != "" {
		if err := s.AuthCache.Del(ctx, sessionKey(usr.TokenHash)).Err(); err != nil {
			utils.GetLogger().Warn("failed to drop cached session", zap.Error(err))
		}
	}

	usr.TokenHash = ""
	if err := s.Repo.Update(usr); err != nil {
		return utils.NewInfrastructure("failed to revoke token", err)
	}
	return nil
}

func sessionKey(tokenHash string) string {
	return "session:" + tokenHash
}

func (s *DefaultUserService) cacheSession(ctx context.Context, tokenHash, userID string) {
	if s.AuthCache == nil {
		return
	}
	if err := s.AuthCache.Set(ctx, sessionKey(tokenHash), userID, tokenTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache auth session", zap.Error(err))
	}
}
