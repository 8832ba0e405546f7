package contactsync

import (
	"context"

	"gitdesk/pkg/freshdesk"
	"gitdesk/pkg/github"
)

// UserFetcher reads a GitHub user profile
type UserFetcher interface {
	GetUser(ctx context.Context, username string) (*github.User, error)
}

// ContactStore reads and writes Freshdesk contacts
type ContactStore interface {
	SearchContacts(ctx context.Context, email string) (*freshdesk.SearchResult, error)
	CreateContact(ctx context.Context, payload freshdesk.ContactPayload) (*freshdesk.Contact, error)
	UpdateContact(ctx context.Context, id int64, payload freshdesk.ContactPayload) (*freshdesk.Contact, error)
}

// Action is the write a sync run decided on
type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionConflict Action = "conflict"
)

// State is where a sync run ended
type State string

const (
	StateDone    State = "done"
	StateAborted State = "aborted"
)

// Plan is the outcome of looking up both sides, before any write
type Plan struct {
	Action    Action                   `json:"action" yaml:"action"`
	User      *github.User             `json:"user" yaml:"user"`
	Payload   freshdesk.ContactPayload `json:"payload" yaml:"payload"`
	ContactID int64                    `json:"contact_id,omitempty" yaml:"contact_id,omitempty"`
	// Matches is the total reported by the Freshdesk search
	Matches int `json:"matches" yaml:"matches"`
	// Conflicts lists every matched id when more than one contact shares the email
	Conflicts []int64 `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

// Result reports how a sync run ended
type Result struct {
	State   State              `json:"state"`
	Action  Action             `json:"action,omitempty"`
	Plan    *Plan              `json:"plan,omitempty"`
	Contact *freshdesk.Contact `json:"contact,omitempty"`
}
