// Package backend provides typed HTTP+JSON clients for the entity services
// the web tier fronts: users, races and the entry list. The services expose
// generated REST-over-ORM endpoints with filter queries
// (q={"filters":[{name,op,val},...]}) and paginated list envelopes
// ({objects, total_pages}).
//
// Every call classifies its outcome: ErrNotFound for a service-reported
// missing record, ErrUnavailable for transport-level failures and
// *StatusError for any other non-success response, carrying the service's
// reported reason for the error page.
package backend
