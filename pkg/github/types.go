package github

// User is the subset of a GitHub user profile that gitdesk syncs.
// Optional profile fields are empty when GitHub omits them.
type User struct {
	Login           string `json:"login" yaml:"login"`
	ID              int64  `json:"id" yaml:"id"`
	Name            string `json:"name,omitempty" yaml:"name,omitempty"`
	Company         string `json:"company,omitempty" yaml:"company,omitempty"`
	Location        string `json:"location,omitempty" yaml:"location,omitempty"`
	Email           string `json:"email,omitempty" yaml:"email,omitempty"`
	TwitterUsername string `json:"twitter_username,omitempty" yaml:"twitter_username,omitempty"`
}

// HasEmail reports whether the profile exposes a public email address
func (u *User) HasEmail() bool {
	return u != nil && u.Email != ""
}
