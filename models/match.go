package models

// Match types describe the direction of a skill match relative to the current
// user: a teacher can teach them, a learner wants to learn from them, a mutual
// match is both at once.
const (
	MatchTypeTeacher = "teacher"
	MatchTypeLearner = "learner"
	MatchTypeMutual  = "mutual"
)

// Match is an ephemeral, computed pairing. It is never persisted.
type Match struct {
	User         User     `json:"user"`
	MatchType    string   `json:"matchType"`
	CommonSkills []string `json:"commonSkills"`
	MatchScore   float64  `json:"matchScore"`

	// CanTeachMe and WantsToLearnFromMe break a mutual match into its two
	// directions. WantsToLearnFromMe is also set when a one-directional match
	// is upgraded to mutual during merging.
	CanTeachMe         []string `json:"canTeachMe,omitempty"`
	WantsToLearnFromMe []string `json:"wantsToLearnFromMe,omitempty"`
}

// MatchResult is the ranked match list plus the pre-truncation total.
type MatchResult struct {
	Matches      []Match `json:"matches"`
	TotalMatches int     `json:"totalMatches"`
	Message      string  `json:"message,omitempty"`
}
