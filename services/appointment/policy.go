package appointment

import "github.com/Pratik-911/skillswap/models"

// Role is a user's role on a specific appointment, not a fixed attribute:
// any user may be teacher on one appointment and learner on another.
type Role int

const (
	RoleNone Role = iota
	RoleTeacher
	RoleLearner
)

// RoleOn resolves the requesting user's role on the appointment.
func RoleOn(appt *models.Appointment, userID string) Role {
	switch userID {
	case appt.TeacherID:
		return RoleTeacher
	case appt.LearnerID:
		return RoleLearner
	}
	return RoleNone
}

// transitionRule declares which states a transition may start from and which
// roles may request it. One table instead of per-route conditionals.
type transitionRule struct {
	from  map[string]bool
	roles map[Role]bool
}

var bothParties = map[Role]bool{RoleTeacher: true, RoleLearner: true}
var teacherOnly = map[Role]bool{RoleTeacher: true}

// transitionPolicy encodes the appointment state machine. Accept and reject
// are teacher decisions on a pending request. Completion and cancellation are
// deliberately loose: either party may invoke them from any non-terminal
// state, including marking a never-accepted session completed.
var transitionPolicy = map[string]transitionRule{
	models.StatusAccepted: {
		from:  map[string]bool{models.StatusPending: true},
		roles: teacherOnly,
	},
	models.StatusRejected: {
		from:  map[string]bool{models.StatusPending: true},
		roles: teacherOnly,
	},
	models.StatusCompleted: {
		from:  map[string]bool{models.StatusPending: true, models.StatusAccepted: true},
		roles: bothParties,
	},
	models.StatusCancelled: {
		from:  map[string]bool{models.StatusPending: true, models.StatusAccepted: true},
		roles: bothParties,
	},
}

// checkTransition validates a requested status change against the policy
// table. It returns the decisive objection: unknown target, terminal or wrong
// current state, then role.
func checkTransition(current, target string, role Role) error {
	rule, ok := transitionPolicy[target]
	if !ok {
		return errInvalidTarget(target)
	}
	if !rule.from[current] {
		return errBadState(current, target)
	}
	if !rule.roles[role] {
		return errRoleForbidden(target)
	}
	return nil
}
