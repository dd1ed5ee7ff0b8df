// Package webapp serves the HTML frontend of the race-registration site:
// account registration and sign-in, the profile page, the paginated race
// list and race entries. Handlers read and write per-visitor state through
// the session attached to the request context and talk to the entity
// services through the backend clients.
package webapp
