// Package contactsync syncs one GitHub user into a Freshdesk contact.
//
// A run looks up the GitHub profile, searches Freshdesk for a contact with
// the same email and then updates the single match, creates a contact when
// there is none, or reports a conflict when several contacts share the email.
package contactsync

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"gitdesk/pkg/github"
)

// Console lines printed by a run
const (
	MsgUpdated  = "✅ Contact updated successfully."
	MsgCreated  = "✅ Contact created successfully."
	MsgConflict = "Error: Multiple contacts found with the same email."
	MsgFinished = "Program finished."
)

// Options configures a Syncer
type Options struct {
	// Out receives the human-readable status lines. Defaults to stdout.
	Out io.Writer
	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zerolog.Logger
	// RequireEmail aborts the run when the GitHub user has no public email.
	// By default the search runs with the empty email and a warning is logged.
	RequireEmail bool
}

// Syncer runs the fetch, search and write steps in order
type Syncer struct {
	users        UserFetcher
	contacts     ContactStore
	out          io.Writer
	logger       zerolog.Logger
	requireEmail bool
}

// NewSyncer creates a new syncer
func NewSyncer(users UserFetcher, contacts ContactStore, opts Options) *Syncer {
	s := &Syncer{
		users:        users,
		contacts:     contacts,
		out:          opts.Out,
		logger:       zerolog.Nop(),
		requireEmail: opts.RequireEmail,
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if opts.Logger != nil {
		s.logger = *opts.Logger
	}
	return s
}

// Plan fetches the GitHub user and searches Freshdesk for a matching contact.
// It decides the action without writing anything. Any lookup failure is
// returned wrapped in ErrAborted.
func (s *Syncer) Plan(ctx context.Context, username string) (*Plan, error) {
	s.logger.Debug().Str("username", username).Msg("Fetching GitHub user")
	user, err := s.users.GetUser(ctx, username)
	if err != nil {
		if github.IsNotFound(err) {
			return nil, fmt.Errorf("%w: GitHub user %s does not exist: %w", ErrAborted, username, err)
		}
		return nil, fmt.Errorf("%w: fetching GitHub user %s: %w", ErrAborted, username, err)
	}

	if !user.HasEmail() {
		if s.requireEmail {
			s.logger.Error().
				Str("login", user.Login).
				Msg("GitHub user has no public email, cannot match a Freshdesk contact")
			return nil, fmt.Errorf("%w: %w", ErrAborted, ErrMissingEmail)
		}
		s.logger.Warn().Str("login", user.Login).Msg("GitHub user has no public email, searching Freshdesk with an empty email")
	}

	s.logger.Debug().Str("email", user.Email).Msg("Searching Freshdesk contacts")
	result, err := s.contacts.SearchContacts(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: searching Freshdesk contacts: %w", ErrAborted, err)
	}

	plan := &Plan{
		User:    user,
		Payload: BuildPayload(user),
		Matches: result.Total,
	}

	switch {
	case result.Total == 1:
		if len(result.Results) == 0 {
			s.logger.Error().Int("total", result.Total).Msg("Freshdesk search reported a match but returned no contact")
			return nil, fmt.Errorf("%w: search reported 1 match without results", ErrAborted)
		}
		plan.Action = ActionUpdate
		plan.ContactID = result.Results[0].ID
	case result.Total == 0:
		plan.Action = ActionCreate
	case result.Total > 1:
		plan.Action = ActionConflict
		plan.Conflicts = result.IDs()
	default:
		s.logger.Error().Int("total", result.Total).Msg("Freshdesk search returned a negative total")
		return nil, fmt.Errorf("%w: invalid search total %d", ErrAborted, result.Total)
	}

	s.logger.Debug().Str("action", string(plan.Action)).Int64("contact_id", plan.ContactID).Msg("Planned contact sync")
	return plan, nil
}

// Apply performs the write decided by plan. A conflict writes nothing and
// returns ErrMultipleContacts; a failed write returns ErrWriteFailed.
func (s *Syncer) Apply(ctx context.Context, plan *Plan) (*Result, error) {
	result := &Result{
		State:  StateDone,
		Action: plan.Action,
		Plan:   plan,
	}

	switch plan.Action {
	case ActionUpdate:
		contact, err := s.contacts.UpdateContact(ctx, plan.ContactID, plan.Payload)
		if err != nil {
			return result, fmt.Errorf("%w: updating contact %d: %w", ErrWriteFailed, plan.ContactID, err)
		}
		result.Contact = contact
		fmt.Fprintln(s.out, MsgUpdated)

	case ActionCreate:
		contact, err := s.contacts.CreateContact(ctx, plan.Payload)
		if err != nil {
			return result, fmt.Errorf("%w: creating contact: %w", ErrWriteFailed, err)
		}
		result.Contact = contact
		fmt.Fprintln(s.out, MsgCreated)

	case ActionConflict:
		fmt.Fprintln(s.out, MsgConflict)
		return result, fmt.Errorf("%w: %d contacts share %q", ErrMultipleContacts, plan.Matches, plan.User.Email)

	default:
		return result, fmt.Errorf("unknown sync action %q", plan.Action)
	}

	return result, nil
}

// Run plans and applies a sync for username. "Program finished." is printed
// whenever the run gets past planning, whether or not the write succeeded.
func (s *Syncer) Run(ctx context.Context, username string) (*Result, error) {
	plan, err := s.Plan(ctx, username)
	if err != nil {
		return &Result{State: StateAborted}, err
	}

	result, err := s.Apply(ctx, plan)
	fmt.Fprintln(s.out, MsgFinished)
	return result, err
}

// DryRun plans a sync for username and prints the planned change instead of
// applying it.
func (s *Syncer) DryRun(ctx context.Context, username string) (*Plan, error) {
	plan, err := s.Plan(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := DescribePlan(s.out, plan); err != nil {
		return plan, err
	}
	fmt.Fprintln(s.out, MsgFinished)
	return plan, nil
}

// DescribePlan writes a human-readable summary of plan to w
func DescribePlan(w io.Writer, plan *Plan) error {
	fmt.Fprintf(w, "\n🔍 Dry-run mode: planned change for GitHub user %s\n", plan.User.Login)

	switch plan.Action {
	case ActionUpdate:
		fmt.Fprintf(w, "  ~ Contact: UPDATE Freshdesk contact %d\n", plan.ContactID)
	case ActionCreate:
		fmt.Fprintf(w, "  + Contact: CREATE new Freshdesk contact\n")
	case ActionConflict:
		ids := make([]string, 0, len(plan.Conflicts))
		for _, id := range plan.Conflicts {
			ids = append(ids, fmt.Sprintf("%d", id))
		}
		fmt.Fprintf(w, "  ⚠️  Contact: CONFLICT, %d contacts share this email [%s], nothing will be written\n",
			plan.Matches, strings.Join(ids, ", "))
		fmt.Fprintln(w, MsgConflict)
		return nil
	}

	data, err := yaml.Marshal(plan.Payload)
	if err != nil {
		return fmt.Errorf("failed to render payload: %w", err)
	}
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
	return nil
}
