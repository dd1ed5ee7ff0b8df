package backend

import (
	"context"
	"time"
)

// Entry is a race participation record in the entry list service.
type Entry struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	RaceID   int64     `json:"race_id"`
	RaceTime time.Time `json:"race_time"`
	Class    string    `json:"rclass"`
}

// CreateEntryParams are the fields for entering a race.
type CreateEntryParams struct {
	UserID   int64     `json:"user_id"`
	RaceID   int64     `json:"race_id"`
	RaceTime time.Time `json:"race_time"`
	Class    string    `json:"rclass"`
}

// Entries is the client for the entry list service.
type Entries struct {
	client *Client
}

// NewEntries creates an entry list client on top of the shared plumbing.
func NewEntries(c *Client) *Entries {
	return &Entries{client: c}
}

// Create records a race entry.
func (e *Entries) Create(ctx context.Context, p CreateEntryParams) (*Entry, error) {
	entry := &Entry{}
	if err := e.client.post(ctx, "/entrylist", p, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByUser retrieves all entries of one user.
func (e *Entries) ListByUser(ctx context.Context, userID int64) ([]Entry, error) {
	query, err := Query{Filters: []Filter{Eq("user_id", userID)}}.Values()
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Entries []Entry `json:"objects"`
	}
	if err := e.client.get(ctx, "/entrylist", query, &envelope); err != nil {
		return nil, err
	}
	return envelope.Entries, nil
}

// Exists reports whether the user already entered the race. A transport
// failure is returned as an error, never as a false answer in either
// direction.
func (e *Entries) Exists(ctx context.Context, userID, raceID int64) (bool, error) {
	query, err := Query{Filters: []Filter{
		Eq("user_id", userID),
		Eq("race_id", raceID),
	}}.Values()
	if err != nil {
		return false, err
	}

	var envelope struct {
		Entries []Entry `json:"objects"`
	}
	if err := e.client.get(ctx, "/entrylist", query, &envelope); err != nil {
		return false, err
	}
	return len(envelope.Entries) > 0, nil
}
