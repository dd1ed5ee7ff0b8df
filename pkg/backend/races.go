package backend

import (
	"context"
	"net/url"
	"strconv"
)

// Race is an event record in the races service.
type Race struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Distance string `json:"distance"`
	Laps     string `json:"laps"`
}

// RacePage is one page of the races list envelope.
type RacePage struct {
	Races      []Race `json:"objects"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
}

// Races is the client for the races service.
type Races struct {
	client *Client
}

// NewRaces creates a races client on top of the shared plumbing.
func NewRaces(c *Client) *Races {
	return &Races{client: c}
}

// List retrieves one page of races.
func (r *Races) List(ctx context.Context, page, perPage int) (*RacePage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("results_per_page", strconv.Itoa(perPage))

	result := &RacePage{}
	if err := r.client.get(ctx, "/races", query, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ByID retrieves a race by id.
func (r *Races) ByID(ctx context.Context, id int64) (*Race, error) {
	race := &Race{}
	if err := r.client.get(ctx, "/races/"+strconv.FormatInt(id, 10), nil, race); err != nil {
		return nil, err
	}
	return race, nil
}

// ByIDs retrieves the races whose ids are in the given set.
func (r *Races) ByIDs(ctx context.Context, ids []int64) ([]Race, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, err := Query{Filters: []Filter{In("id", ids)}}.Values()
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Races []Race `json:"objects"`
	}
	if err := r.client.get(ctx, "/races", query, &envelope); err != nil {
		return nil, err
	}
	return envelope.Races, nil
}
