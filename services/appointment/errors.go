package appointment

import (
	"fmt"

	"github.com/Pratik-911/skillswap/utils"
)

func errInvalidTarget(target string) error {
	return utils.NewValidation(fmt.Sprintf("invalid status %q", target))
}

func errBadState(current, target string) error {
	return utils.NewInvalidState(fmt.Sprintf("cannot move a %s appointment to %s", current, target))
}

func errRoleForbidden(target string) error {
	if target == "accepted" || target == "rejected" {
		return utils.NewForbidden("only the teacher can accept or reject appointments")
	}
	return utils.NewForbidden("not a participant of this appointment")
}
