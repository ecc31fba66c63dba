// Package funnel holds the voting wizard state machine: pick a product,
// enter an email, cast the vote. The machine owns validation, the in-flight
// submission guard and the user-facing error message for a failed cast; the
// surrounding component only renders its state.
package funnel

import (
	"context"
	"errors"
	"strings"

	"github.com/purebite/purebite/internal/api"
)

type Step int

const (
	StepSelectProduct Step = iota + 1
	StepEnterEmail
	StepConfirmed
)

// Default messages when the server does not provide a detail.
const (
	msgAlreadyVoted = "You have already voted for this option"
	msgVoteLimit    = "Vote limit reached. Upgrade to premium for unlimited voting."
	msgGeneric      = "Failed to cast vote. Please try again."
)

// Caster casts the one mutating call of the funnel.
type Caster interface {
	CastVote(ctx context.Context, email, optionID string) (*api.VoteResult, error)
}

// EmailStore persists the email to the durable client-side cache.
type EmailStore interface {
	SaveEmail(email string) error
}

// Tracker emits fire-and-forget analytics events.
type Tracker interface {
	Track(email, action string, details map[string]any)
}

type Funnel struct {
	caster  Caster
	store   EmailStore
	tracker Tracker

	step       Step
	options    []api.VotingOption
	selectedID string
	email      string
	submitting bool
	limitHit   bool
	errMsg     string
	result     *api.VoteResult
}

func New(caster Caster, store EmailStore, tracker Tracker) *Funnel {
	return &Funnel{
		caster:  caster,
		store:   store,
		tracker: tracker,
		step:    StepSelectProduct,
	}
}

func (f *Funnel) Step() Step                  { return f.step }
func (f *Funnel) Options() []api.VotingOption { return f.options }
func (f *Funnel) SelectedID() string          { return f.selectedID }
func (f *Funnel) Email() string               { return f.email }
func (f *Funnel) Submitting() bool            { return f.submitting }
func (f *Funnel) LimitReached() bool          { return f.limitHit }
func (f *Funnel) ErrorMessage() string        { return f.errMsg }
func (f *Funnel) Result() *api.VoteResult     { return f.result }

func (f *Funnel) SetOptions(options []api.VotingOption) {
	f.options = options
}

func (f *Funnel) SetEmail(email string) {
	f.email = strings.TrimSpace(email)
}

// Selected returns the chosen option, or nil before a selection was made.
func (f *Funnel) Selected() *api.VotingOption {
	for i := range f.options {
		if f.options[i].ID == f.selectedID {
			return &f.options[i]
		}
	}
	return nil
}

// TotalVotes sums the votes of all loaded options, for the social-proof line.
func (f *Funnel) TotalVotes() int {
	total := 0
	for _, o := range f.options {
		total += o.Votes
	}
	return total
}

// Select records the chosen option and advances to the email step. It does
// nothing when no options are loaded or the id is unknown.
func (f *Funnel) Select(id string) {
	if f.step != StepSelectProduct {
		return
	}
	var chosen *api.VotingOption
	for i := range f.options {
		if f.options[i].ID == id {
			chosen = &f.options[i]
			break
		}
	}
	if chosen == nil {
		return
	}

	f.selectedID = id
	f.step = StepEnterEmail
	f.errMsg = ""
	f.limitHit = false
	f.tracker.Track(f.email, "select_voting_option", map[string]any{
		"product_name": chosen.ProductName,
		"option_id":    id,
	})
}

// Back returns from the email step to product selection. The selection and
// any typed email stay intact.
func (f *Funnel) Back() {
	if f.step == StepEnterEmail {
		f.step = StepSelectProduct
	}
}

// ValidEmail is the client-side gate: non-empty, with an @ that has text on
// both sides. Real validation is the backend's job.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1
}

// Submit casts the vote and reports whether a network call was made. It
// refuses while a previous submission is in flight and when the selection or
// email fails validation; in both cases no request leaves the client. On
// failure the funnel stays in the email step with a user-facing message set.
func (f *Funnel) Submit(ctx context.Context) bool {
	if f.submitting || f.step != StepEnterEmail {
		return false
	}
	if f.selectedID == "" || !ValidEmail(f.email) {
		return false
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	// Each attempt starts clean; a stale message or limit flag from a
	// previous attempt must not outlive it.
	f.errMsg = ""
	f.limitHit = false

	res, err := f.caster.CastVote(ctx, f.email, f.selectedID)
	if err != nil {
		f.errMsg = submitMessage(err)
		if isLimit(err) {
			f.limitHit = true
		}
		return true
	}

	f.result = res
	f.step = StepConfirmed
	// The vote stands even if the cache write fails; it is a convenience.
	_ = f.store.SaveEmail(f.email)
	f.tracker.Track(f.email, "cast_vote", map[string]any{
		"product_voted": res.ProductVoted,
		"is_new_user":   res.IsNewUser,
	})
	return true
}

func submitMessage(err error) string {
	var limit *api.LimitReachedError
	if errors.As(err, &limit) {
		if limit.Message != "" {
			return limit.Message
		}
		return msgVoteLimit
	}

	var se *api.StatusError
	if errors.As(err, &se) {
		switch se.Status {
		case 400:
			if se.Detail != "" {
				return se.Detail
			}
			return msgAlreadyVoted
		case 403:
			if se.Detail != "" {
				return se.Detail
			}
			return msgVoteLimit
		}
	}
	return msgGeneric
}

func isLimit(err error) bool {
	var limit *api.LimitReachedError
	if errors.As(err, &limit) {
		return true
	}
	var se *api.StatusError
	return errors.As(err, &se) && se.Status == 403
}
