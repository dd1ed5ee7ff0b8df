package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"
)

const defaultStoreTimeout = 5 * time.Second

// HTTPStore implements Store against a remote session service speaking
// HTTP+JSON:
//
//	GET   {base}/sessions/{id} -> 200 {id, user_id, last_used_at, data_items} | 404
//	POST  {base}/sessions      -> 201 with newly allocated id
//	PATCH {base}/sessions/{id} -> 200
//
// Every call is bounded by the underlying client's timeout so a dead store
// cannot stall the request pipeline.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// HTTPStoreOption configures an HTTPStore.
type HTTPStoreOption func(*HTTPStore)

// WithStoreHTTPClient sets a custom HTTP client.
func WithStoreHTTPClient(c *http.Client) HTTPStoreOption {
	return func(h *HTTPStore) {
		if c != nil {
			h.client = c
		}
	}
}

// WithStoreTimeout bounds every store call to the given duration.
func WithStoreTimeout(d time.Duration) HTTPStoreOption {
	return func(h *HTTPStore) {
		if d > 0 {
			h.client.Timeout = d
		}
	}
}

// NewHTTPStore creates a store client for the session service at baseURL.
func NewHTTPStore(baseURL string, opts ...HTTPStoreOption) *HTTPStore {
	h := &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultStoreTimeout},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Fetch looks up a session by id.
func (h *HTTPStore) Fetch(ctx context.Context, id string) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/sessions/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrSessionNotFound
	default:
		return nil, errors.Join(ErrStoreUnavailable, fmt.Errorf("sessions: unexpected status %d", resp.StatusCode))
	}

	var ws wireSession
	if err := json.NewDecoder(resp.Body).Decode(&ws); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return ws.session(), nil
}

// Create asks the store to allocate a new session seeded with no user and
// empty data.
func (h *HTTPStore) Create(ctx context.Context, at time.Time) (*Session, error) {
	body, err := json.Marshal(createRequest{LastUsedAt: at})
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, errors.Join(ErrStoreUnavailable, fmt.Errorf("sessions: unexpected status %d", resp.StatusCode))
	}

	var ws wireSession
	if err := json.NewDecoder(resp.Body).Decode(&ws); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return ws.session(), nil
}

// Update persists the full current state for an existing session id.
func (h *HTTPStore) Update(ctx context.Context, id string, s *Session) error {
	body, err := json.Marshal(updateRequest{
		UserID:     s.UserID,
		LastUsedAt: s.LastUsedAt,
		DataItems:  dataItems(s.Data),
	})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, h.baseURL+"/sessions/"+url.PathEscape(id), bytes.NewReader(body))
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Join(ErrStoreUnavailable, fmt.Errorf("sessions: unexpected status %d", resp.StatusCode))
	}
	return nil
}

// wireID is an opaque session id on the wire. Some session services encode
// ids as JSON numbers, so both forms are accepted and normalized to a string.
type wireID string

func (id *wireID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = wireID(n.String())
	return nil
}

type dataItem struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type wireSession struct {
	ID         wireID     `json:"id"`
	UserID     *int64     `json:"user_id"`
	LastUsedAt time.Time  `json:"last_used_at"`
	DataItems  []dataItem `json:"data_items"`
}

// session rebuilds a Session from its wire form. Data is fully replaced, so
// stale local mutations never survive a reload.
func (ws wireSession) session() *Session {
	s := &Session{
		ID:         string(ws.ID),
		UserID:     ws.UserID,
		LastUsedAt: ws.LastUsedAt,
		Data:       make(map[string]any, len(ws.DataItems)),
	}
	for _, item := range ws.DataItems {
		s.Data[item.Key] = item.Value
	}
	return s
}

type createRequest struct {
	LastUsedAt time.Time `json:"last_used_at"`
}

type updateRequest struct {
	UserID     *int64     `json:"user_id"`
	LastUsedAt time.Time  `json:"last_used_at"`
	DataItems  []dataItem `json:"data_items"`
}

// dataItems flattens session data into the wire's key/value list. Keys are
// sorted so identical content always serializes identically.
func dataItems(data map[string]any) []dataItem {
	items := make([]dataItem, 0, len(data))
	for _, key := range slices.Sorted(maps.Keys(data)) {
		items = append(items, dataItem{Key: key, Value: data[key]})
	}
	return items
}
