package services

import (
	"strings"

	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/pkg/apperr"
)

// Actor is the authenticated caller. The zero value is anonymous.
type Actor struct {
	ID    uint
	Email string
	Role  string
}

func (a Actor) IsAdmin() bool   { return a.Role == models.RoleAdmin }
func (a Actor) Anonymous() bool { return a.ID == 0 }
func (a Actor) Owns(owner *uint) bool {
	return !a.Anonymous() && owner != nil && *owner == a.ID
}

// Lifecycle is the draft/submit state machine shared by challenges and
// solutions. Draft is initial; Submitted is the only state an owner may move to.
type Lifecycle struct {
	Entity    string
	Draft     string
	Submitted string
	valid     func(string) bool
}

var (
	ChallengeLifecycle = Lifecycle{
		Entity:    "challenge",
		Draft:     models.ChallengeDraft,
		Submitted: models.ChallengePending,
		valid:     models.ValidChallengeStatus,
	}
	SolutionLifecycle = Lifecycle{
		Entity:    "solution",
		Draft:     models.SolutionDraft,
		Submitted: models.SolutionSubmitted,
		valid:     models.ValidSolutionStatus,
	}
)

func (l Lifecycle) Valid(status string) bool { return l.valid(status) }

func (l Lifecycle) invalidStatus(status string) error {
	return apperr.Validation("invalid " + l.Entity + " status: " + status)
}

// InitialStatus resolves the status of a new record. Without an explicit
// status the record is created already submitted.
func (l Lifecycle) InitialStatus(actor Actor, requested string) (string, error) {
	if requested == "" {
		return l.Submitted, nil
	}
	if !l.valid(requested) {
		return "", l.invalidStatus(requested)
	}
	if !actor.IsAdmin() && requested != l.Draft && requested != l.Submitted {
		return "", apperr.Forbidden("only administrators can set " + l.Entity + " status to " + requested)
	}
	return requested, nil
}

// CheckEdit enforces edit rights: admins may edit at any status, owners only
// while the record is a draft and only towards the submitted state.
func (l Lifecycle) CheckEdit(actor Actor, owner *uint, current string, requested *string) error {
	if requested != nil && !l.valid(*requested) {
		return l.invalidStatus(*requested)
	}
	if actor.IsAdmin() {
		return nil
	}
	if !actor.Owns(owner) {
		return apperr.Forbidden("you can only edit your own " + l.Entity)
	}
	if current != l.Draft {
		return apperr.Forbidden(l.Entity + " can no longer be edited after submission")
	}
	if requested != nil && *requested != l.Draft && *requested != l.Submitted {
		return apperr.Forbidden("only administrators can set " + l.Entity + " status to " + *requested)
	}
	return nil
}

func (l Lifecycle) CheckDelete(actor Actor, owner *uint, current string) error {
	if actor.IsAdmin() {
		return nil
	}
	if !actor.Owns(owner) {
		return apperr.Forbidden("you can only delete your own " + l.Entity)
	}
	if current != l.Draft {
		return apperr.Forbidden(l.Entity + " can no longer be deleted after submission")
	}
	return nil
}

// CheckSubmit guards the draft -> submitted transition.
func (l Lifecycle) CheckSubmit(actor Actor, owner *uint, current, title, description string) error {
	if !actor.Owns(owner) {
		return apperr.Forbidden("only the owner can submit this " + l.Entity)
	}
	if current != l.Draft {
		return apperr.Conflict(l.Entity + " was already submitted")
	}
	return RequireSubmittable(title, description)
}

func RequireSubmittable(title, description string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return apperr.Validation("title and description are required to submit")
	}
	return nil
}

// Visible reports whether actor may read a record with this owner and status.
// Drafts are private to their owner and administrators.
func (l Lifecycle) Visible(actor Actor, owner *uint, status string) bool {
	if status != l.Draft {
		return true
	}
	return actor.IsAdmin() || actor.Owns(owner)
}
