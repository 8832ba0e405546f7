// Package github reads GitHub user profiles for gitdesk.
//
// The Client wraps go-github with an oauth2 bearer transport and converts
// profiles into the User type. Failed calls are logged where they happen and
// returned as *APIError values carrying the HTTP status and raw body.
package github
