package webapp

import (
	"embed"
	"errors"
	"net/http"

	"github.com/racedayhq/raceday/pkg/backend"
	"github.com/racedayhq/raceday/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error("render template", logger.Error(err))
	}
}

// renderError shows the error page with the reason reported by a
// collaborating service.
func (h *Handler) renderError(w http.ResponseWriter, status int, reason string) {
	h.render(w, status, "error.html", map[string]any{"Reason": reason})
}

// backendError maps a backend client failure to the error page:
// unavailable services get the given message, other failures surface the
// service-reported reason.
func (h *Handler) backendError(w http.ResponseWriter, err error, unavailableMsg string) {
	var statusErr *backend.StatusError
	switch {
	case errors.Is(err, backend.ErrUnavailable):
		h.renderError(w, http.StatusInternalServerError, unavailableMsg)
	case errors.As(err, &statusErr):
		h.renderError(w, http.StatusInternalServerError, statusErr.Reason())
	default:
		h.renderError(w, http.StatusInternalServerError, err.Error())
	}
}
