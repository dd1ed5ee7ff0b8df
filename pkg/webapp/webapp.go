package webapp

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/racedayhq/raceday/pkg/backend"
	"github.com/racedayhq/raceday/pkg/session"
)

// Handler holds the dependencies of the HTML frontend.
type Handler struct {
	log      *slog.Logger
	sessions *session.Manager
	users    *backend.Users
	races    *backend.Races
	entries  *backend.Entries
	hasher   *Hasher
	tmpl     *template.Template
}

// Options are the dependencies for New.
type Options struct {
	Logger   *slog.Logger
	Sessions *session.Manager
	Users    *backend.Users
	Races    *backend.Races
	Entries  *backend.Entries
	Hasher   *Hasher
}

// New creates the frontend handler and parses the embedded templates.
func New(opts Options) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Handler{
		log:      log,
		sessions: opts.Sessions,
		users:    opts.Users,
		races:    opts.Races,
		entries:  opts.Entries,
		hasher:   opts.Hasher,
		tmpl:     tmpl,
	}, nil
}

// Router builds the frontend route table with session handling applied to
// every request.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.sessions.Middleware)

	r.Get("/", h.index)
	r.Get("/register", h.registerForm)
	r.Post("/register", h.register)
	r.Get("/sign_in", h.signInForm)
	r.Post("/sign_in", h.signIn)
	r.Get("/sign_out", h.signOut)
	r.Get("/me", h.profile)
	r.Post("/me", h.updateProfile)
	r.Get("/races/", h.listRaces)
	r.Get("/entry", h.entryForm)
	r.Post("/entry", h.enterRace)
	r.Get("/entrylist/", h.listEntries)

	return r
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/races/", http.StatusFound)
}

// requireUser returns the signed-in user id or redirects to the sign-in
// page, remembering where to come back to.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request, redirectTo string) (int64, bool) {
	sess := session.MustFromContext(r.Context())
	id, ok := sess.CurrentUserID()
	if !ok {
		sess.Set("redirect_to", redirectTo)
		http.Redirect(w, r, "/sign_in", http.StatusFound)
		return 0, false
	}
	return id, true
}

// rememberRedirect stashes the redirect_to query parameter, if any, so the
// sign-in flow can send the visitor back after authenticating.
func rememberRedirect(r *http.Request) {
	if rt := r.URL.Query().Get("redirect_to"); rt != "" {
		session.MustFromContext(r.Context()).Set("redirect_to", rt)
	}
}

// formPtr returns the form value as a nullable string: nil when the field
// is absent or empty.
func formPtr(r *http.Request, key string) *string {
	v := r.FormValue(key)
	if v == "" {
		return nil
	}
	return &v
}
