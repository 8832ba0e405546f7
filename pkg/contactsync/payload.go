package contactsync

import (
	"strconv"

	"gitdesk/pkg/freshdesk"
	"gitdesk/pkg/github"
)

// BuildPayload maps a GitHub profile onto a Freshdesk contact. Phone and
// mobile are always blank; absent profile fields are sent as null.
func BuildPayload(user *github.User) freshdesk.ContactPayload {
	return freshdesk.ContactPayload{
		Name:             optional(user.Name),
		Email:            optional(user.Email),
		Phone:            "",
		Mobile:           "",
		TwitterID:        optional(user.TwitterUsername),
		UniqueExternalID: strconv.FormatInt(user.ID, 10),
		CustomFields: freshdesk.CustomFields{
			GitHubLogin:    optional(user.Login),
			GitHubCompany:  optional(user.Company),
			GitHubLocation: optional(user.Location),
		},
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
