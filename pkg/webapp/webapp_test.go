package webapp_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/racedayhq/raceday/pkg/backend"
	"github.com/racedayhq/raceday/pkg/session"
	"github.com/racedayhq/raceday/pkg/webapp"
)

const testPepper = "test-pepper"

// fakeBackends serves the users, races and entry list services from one
// process so every client can point at the same base URL.
type fakeBackends struct {
	mu         sync.Mutex
	nextUserID int64
	users      map[int64]backend.User
	races      []backend.Race
	nextEntry  int64
	entries    []backend.Entry
}

func newFakeBackends() *fakeBackends {
	return &fakeBackends{
		nextUserID: 1,
		users:      make(map[int64]backend.User),
		nextEntry:  1,
		races: []backend.Race{
			{ID: 1, Name: "Vasaloppet", Country: "Sweden", Distance: "90", Laps: "1"},
			{ID: 2, Name: "Birkebeineren", Country: "Norway", Distance: "54", Laps: "1"},
		},
	}
}

func (f *fakeBackends) user(id int64) (backend.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	return u, ok
}

func (f *fakeBackends) deleteUser(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

func (f *fakeBackends) entryList() []backend.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backend.Entry(nil), f.entries...)
}

func parseQuery(r *http.Request) (backend.Query, bool) {
	raw := r.URL.Query().Get("q")
	if raw == "" {
		return backend.Query{}, false
	}
	var q backend.Query
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return backend.Query{}, false
	}
	return q, true
}

func filterVal(q backend.Query, name string) (any, bool) {
	for _, f := range q.Filters {
		if f.Name == name {
			return f.Val, true
		}
	}
	return nil, false
}

func (f *fakeBackends) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		var p backend.CreateUserParams
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		u := backend.User{
			ID:           f.nextUserID,
			Login:        p.Login,
			PasswordHash: p.PasswordHash,
			Name:         p.Name,
			Country:      p.Country,
			Email:        p.Email,
		}
		f.nextUserID++
		f.users[u.ID] = u
		f.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(u)
	})

	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		q, ok := parseQuery(r)
		if !ok || !q.Single {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		login, _ := filterVal(q, "login")
		hash, _ := filterVal(q, "password_hash")

		f.mu.Lock()
		defer f.mu.Unlock()
		for _, u := range f.users {
			if u.Login == login && u.PasswordHash == hash {
				_ = json.NewEncoder(w).Encode(u)
				return
			}
		}
		http.NotFound(w, r)
	})

	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

		f.mu.Lock()
		u, ok := f.users[id]
		f.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(u)
	})

	mux.HandleFunc("PATCH /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

		var p map[string]*string
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		u, ok := f.users[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if v, present := p["password_hash"]; present && v != nil {
			u.PasswordHash = *v
		}
		if v, present := p["name"]; present {
			u.Name = v
		}
		if v, present := p["country"]; present {
			u.Country = v
		}
		if v, present := p["email"]; present {
			u.Email = v
		}
		f.users[id] = u
		_ = json.NewEncoder(w).Encode(u)
	})

	mux.HandleFunc("GET /races", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if q, ok := parseQuery(r); ok {
			ids, _ := filterVal(q, "id")
			wanted := make(map[int64]struct{})
			if vals, ok := ids.([]any); ok {
				for _, v := range vals {
					if n, ok := v.(float64); ok {
						wanted[int64(n)] = struct{}{}
					}
				}
			}
			matched := []backend.Race{}
			for _, race := range f.races {
				if _, ok := wanted[race.ID]; ok {
					matched = append(matched, race)
				}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"objects": matched})
			return
		}

		_ = json.NewEncoder(w).Encode(backend.RacePage{
			Races:      f.races,
			Page:       1,
			TotalPages: 1,
		})
	})

	mux.HandleFunc("GET /races/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

		f.mu.Lock()
		defer f.mu.Unlock()
		for _, race := range f.races {
			if race.ID == id {
				_ = json.NewEncoder(w).Encode(race)
				return
			}
		}
		http.NotFound(w, r)
	})

	mux.HandleFunc("POST /entrylist", func(w http.ResponseWriter, r *http.Request) {
		var p backend.CreateEntryParams
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		e := backend.Entry{
			ID:       f.nextEntry,
			UserID:   p.UserID,
			RaceID:   p.RaceID,
			RaceTime: p.RaceTime,
			Class:    p.Class,
		}
		f.nextEntry++
		f.entries = append(f.entries, e)
		f.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(e)
	})

	mux.HandleFunc("GET /entrylist", func(w http.ResponseWriter, r *http.Request) {
		q, _ := parseQuery(r)

		f.mu.Lock()
		defer f.mu.Unlock()
		matched := []backend.Entry{}
		for _, e := range f.entries {
			if v, ok := filterVal(q, "user_id"); ok {
				if n, _ := v.(float64); int64(n) != e.UserID {
					continue
				}
			}
			if v, ok := filterVal(q, "race_id"); ok {
				if n, _ := v.(float64); int64(n) != e.RaceID {
					continue
				}
			}
			matched = append(matched, e)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"objects": matched})
	})

	return mux
}

// testApp wires the frontend against fake entity services. Individual
// service URLs can be overridden to simulate an outage.
type testApp struct {
	t        *testing.T
	handler  http.Handler
	backends *fakeBackends
}

type appURLs struct {
	Users   string
	Races   string
	Entries string
}

func newTestApp(t *testing.T, override appURLs) *testApp {
	t.Helper()

	backends := newFakeBackends()
	srv := httptest.NewServer(backends.handler())
	t.Cleanup(srv.Close)

	pick := func(u string) string {
		if u != "" {
			return u
		}
		return srv.URL
	}

	sessions := session.New(session.WithStore(session.NewMemoryStore()))

	timeout := backend.WithTimeout(time.Second)
	h, err := webapp.New(webapp.Options{
		Logger:   slog.New(slog.DiscardHandler),
		Sessions: sessions,
		Users:    backend.NewUsers(backend.NewClient(pick(override.Users), timeout)),
		Races:    backend.NewRaces(backend.NewClient(pick(override.Races), timeout)),
		Entries:  backend.NewEntries(backend.NewClient(pick(override.Entries), timeout)),
		Hasher:   webapp.NewHasher(testPepper),
	})
	require.NoError(t, err)

	return &testApp{t: t, handler: h.Router(), backends: backends}
}

// deadServer returns the URL of a server that no longer accepts connections.
func deadServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NewServeMux())
	u := srv.URL
	srv.Close()
	return u
}

func (a *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()

	r := httptest.NewRequest("GET", path, nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, r)
	return w
}

func (a *testApp) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()

	r := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, r)
	return w
}

func cookieOf(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	return nil
}

// signUp registers a fresh account through the real flow and returns the
// signed-in session cookie.
func (a *testApp) signUp(login, password string) *http.Cookie {
	a.t.Helper()

	w := a.postForm("/register", url.Values{
		"login":    {login},
		"password": {password},
		"name":     {"Pete"},
	}, nil)
	require.Equal(a.t, http.StatusSeeOther, w.Code)

	c := cookieOf(a.t, w)
	require.NotNil(a.t, c)
	require.NotEmpty(a.t, c.Value)
	return c
}
