package matching

import (
	"sort"
	"strings"

	"github.com/Pratik-911/skillswap/models"
)

// Guidance messages returned with empty results for incomplete profiles.
const (
	msgAddSkillsToLearn = "Add skills you want to learn to find matches"
	msgAddBothSkills    = "Add both skills to teach and learn to find mutual matches"
)

// topMatches is the cutoff applied to the ranked list of FindMatches.
const topMatches = 20

// sessionBonus is the per-session weight added to a teacher match's score.
const sessionBonus = 0.1

// SkillsEquivalent reports whether two skill labels match: case-insensitively,
// one contains the other as a substring. This is the sole normalization rule.
// It is deliberately permissive and not transitive ("C" matches both "C++"
// and "C#"); do not upgrade it to stemmed or fuzzy matching.
func SkillsEquivalent(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// equivalentSubset returns the skills in pool equivalent to at least one
// skill in against, preserving pool order.
func equivalentSubset(pool, against []string) []string {
	var subset []string
	for _, p := range pool {
		for _, a := range against {
			if SkillsEquivalent(p, a) {
				subset = append(subset, p)
				break
			}
		}
	}
	return subset
}

// FindMatches computes the ranked match list for the current user over an
// explicit candidate snapshot. It is a pure function: no ambient state, safe
// to call concurrently.
//
// Candidates are matched in two passes. Users who can teach something the
// current user wants to learn score shared-skill count plus their rating plus
// a per-session bonus. Users who want to learn something the current user
// teaches score shared-skill count only; when a candidate appears in both
// passes the two contributions merge into a single mutual match.
func FindMatches(current models.User, candidates []models.User) models.MatchResult {
	if len(current.SkillsToLearn) == 0 {
		return models.MatchResult{Matches: []models.Match{}, Message: msgAddSkillsToLearn}
	}

	var matches []models.Match
	index := make(map[string]int)

	// Pass 1: candidates who can teach what the current user wants to learn.
	for _, cand := range candidates {
		common := equivalentSubset(cand.SkillsToTeach, current.SkillsToLearn)
		if len(common) == 0 {
			continue
		}
		index[cand.ID] = len(matches)
		matches = append(matches, models.Match{
			User:         cand.SafeView(),
			MatchType:    models.MatchTypeTeacher,
			CommonSkills: common,
			MatchScore:   float64(len(common)) + cand.RatingValue() + sessionBonus*float64(cand.TotalSessions),
		})
	}

	// Pass 2: candidates who want to learn what the current user teaches.
	// A candidate already matched as teacher becomes a mutual match; a fresh
	// one scores shared-skill count only, without the reputation bonus.
	for _, cand := range candidates {
		common := equivalentSubset(cand.SkillsToLearn, current.SkillsToTeach)
		if len(common) == 0 {
			continue
		}
		if i, ok := index[cand.ID]; ok {
			matches[i].MatchType = models.MatchTypeMutual
			matches[i].WantsToLearnFromMe = common
			matches[i].MatchScore += float64(len(common))
			continue
		}
		matches = append(matches, models.Match{
			User:         cand.SafeView(),
			MatchType:    models.MatchTypeLearner,
			CommonSkills: common,
			MatchScore:   float64(len(common)),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	total := len(matches)
	if len(matches) > topMatches {
		matches = matches[:topMatches]
	}
	if matches == nil {
		matches = []models.Match{}
	}
	return models.MatchResult{Matches: matches, TotalMatches: total}
}

// FindMutualMatches computes the strict mutual variant: only candidates
// matching in both directions at once qualify, and both directions are
// reported separately. Pure, like FindMatches. The result is not truncated.
func FindMutualMatches(current models.User, candidates []models.User) models.MatchResult {
	if len(current.SkillsToLearn) == 0 || len(current.SkillsToTeach) == 0 {
		return models.MatchResult{Matches: []models.Match{}, Message: msgAddBothSkills}
	}

	var matches []models.Match
	for _, cand := range candidates {
		canTeachMe := equivalentSubset(cand.SkillsToTeach, current.SkillsToLearn)
		wantsToLearn := equivalentSubset(cand.SkillsToLearn, current.SkillsToTeach)
		if len(canTeachMe) == 0 || len(wantsToLearn) == 0 {
			continue
		}
		matches = append(matches, models.Match{
			User:               cand.SafeView(),
			MatchType:          models.MatchTypeMutual,
			CanTeachMe:         canTeachMe,
			WantsToLearnFromMe: wantsToLearn,
			MatchScore:         float64(len(canTeachMe)+len(wantsToLearn)) + cand.RatingValue(),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	if matches == nil {
		matches = []models.Match{}
	}
	return models.MatchResult{Matches: matches, TotalMatches: len(matches)}
}
