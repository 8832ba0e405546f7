// Package freshdesk is a small client for the Freshdesk v2 contacts API.
//
// It covers the three calls gitdesk needs: searching contacts by email,
// creating a contact and replacing an existing one. All calls share a bearer
// token and a base URL of the form https://{subdomain}.freshdesk.com/api/v2/.
package freshdesk
