package freshdesk

import "time"

// Contact is a Freshdesk contact as returned by the API
type Contact struct {
	ID               int64                  `json:"id"`
	Name             string                 `json:"name"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone"`
	Mobile           string                 `json:"mobile"`
	TwitterID        string                 `json:"twitter_id"`
	UniqueExternalID string                 `json:"unique_external_id"`
	CustomFields     map[string]interface{} `json:"custom_fields,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ContactPayload is the request body for creating or replacing a contact.
// Nil pointers are sent as JSON null.
type ContactPayload struct {
	Name             *string      `json:"name" yaml:"name"`
	Email            *string      `json:"email" yaml:"email"`
	Phone            string       `json:"phone" yaml:"phone"`
	Mobile           string       `json:"mobile" yaml:"mobile"`
	TwitterID        *string      `json:"twitter_id" yaml:"twitter_id"`
	UniqueExternalID string       `json:"unique_external_id" yaml:"unique_external_id"`
	CustomFields     CustomFields `json:"custom_fields" yaml:"custom_fields"`
}

// CustomFields holds the account-specific contact fields gitdesk fills in.
// They must exist as custom contact fields in the Freshdesk account.
type CustomFields struct {
	GitHubLogin    *string `json:"github_login" yaml:"github_login"`
	GitHubCompany  *string `json:"github_company" yaml:"github_company"`
	GitHubLocation *string `json:"github_location" yaml:"github_location"`
}

// SearchResult is the response of a contact search
type SearchResult struct {
	Total   int       `json:"total"`
	Results []Contact `json:"results"`
}

// IDs returns the ids of all matched contacts
func (r *SearchResult) IDs() []int64 {
	ids := make([]int64, 0, len(r.Results))
	for _, c := range r.Results {
		ids = append(ids, c.ID)
	}
	return ids
}

// searchOptions is encoded into the search query string
type searchOptions struct {
	Query string `url:"query"`
}
