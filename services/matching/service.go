package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	userRepo "github.com/Pratik-911/skillswap/database/repository/user"
	"github.com/Pratik-911/skillswap/models"
	"github.com/Pratik-911/skillswap/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// MatchingService computes ranked skill matches for a user.
type MatchingService interface {
	// FindMatches returns the ranked bidirectional match list for the user.
	FindMatches(ctx context.Context, userID string) (*models.MatchResult, error)
	// FindMutualMatches returns only candidates matching in both directions.
	FindMutualMatches(ctx context.Context, userID string) (*models.MatchResult, error)
}

// DefaultMatchingService implements MatchingService. The repository performs a
// coarse regex prefilter; the pure engine applies the full equivalence
// predicate and scoring. Ranked results are cached per user for a short TTL.
type DefaultMatchingService struct {
	UserRepo userRepo.UserRepository
	Cache    *redis.Client
	CacheTTL time.Duration
}

func (s *DefaultMatchingService) FindMatches(ctx context.Context, userID string) (*models.MatchResult, error) {
	return s.compute(ctx, userID, "matches:"+userID, false)
}

func (s *DefaultMatchingService) FindMutualMatches(ctx context.Context, userID string) (*models.MatchResult, error) {
	return s.compute(ctx, userID, "matches:mutual:"+userID, true)
}

func (s *DefaultMatchingService) compute(ctx context.Context, userID, cacheKey string, mutual bool) (*models.MatchResult, error) {
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	current, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to load user", err)
	}
	if current == nil {
		return nil, utils.NewNotFound(fmt.Sprintf("user %s not found", userID))
	}

	var result models.MatchResult
	if mutual {
		if len(current.SkillsToLearn) == 0 || len(current.SkillsToTeach) == 0 {
			result = FindMutualMatches(*current, nil)
			return &result, nil
		}
	} else if len(current.SkillsToLearn) == 0 {
		result = FindMatches(*current, nil)
		return &result, nil
	}

	candidates, err := s.UserRepo.FindActiveBySkillPatterns(userRepo.SkillSearchCriteria{
		ExcludeID:    current.ID,
		TeachesAnyOf: current.SkillsToLearn,
		LearnsAnyOf:  current.SkillsToTeach,
		RequireBoth:  mutual,
	})
	if err != nil {
		return nil, utils.NewInfrastructure("failed to load match candidates", err)
	}

	if mutual {
		result = FindMutualMatches(*current, candidates)
	} else {
		result = FindMatches(*current, candidates)
	}

	s.toCache(ctx, cacheKey, &result)
	return &result, nil
}

// fromCache returns the cached result for the key, or nil on miss or when no
// cache is configured. Cache failures are logged and treated as misses.
func (s *DefaultMatchingService) fromCache(ctx context.Context, key string) *models.MatchResult {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("match cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var result models.MatchResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		utils.GetLogger().Warn("match cache decode failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &result
}

func (s *DefaultMatchingService) toCache(ctx context.Context, key string, result *models.MatchResult) {
	if s.Cache == nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, ttl).Err(); err != nil {
		utils.GetLogger().Warn("match cache write failed", zap.String("key", key), zap.Error(err))
	}
}
