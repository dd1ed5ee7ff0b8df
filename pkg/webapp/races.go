package webapp

import (
	"net/http"
	"strconv"

	"github.com/racedayhq/raceday/pkg/backend"
	"github.com/racedayhq/raceday/pkg/logger"
	"github.com/racedayhq/raceday/pkg/session"
)

// raceRow is one race in the list, annotated with the visitor's cart
// quantity.
type raceRow struct {
	backend.Race
	Quantity int
}

func (h *Handler) listRaces(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext(r.Context())

	var userName string
	if userID, ok := sess.CurrentUserID(); ok {
		user, err := h.users.ByID(r.Context(), userID)
		if err != nil {
			h.backendError(w, err, "Users backend is unavailable")
			return
		}
		if user.Name != nil {
			userName = *user.Name
		}
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 20)

	if _, ok := sess.Get("cart"); !ok {
		sess.Set("cart", map[string]any{})
	}

	data := map[string]any{
		"UserName": userName,
		"Page":     page,
		"PerPage":  perPage,
		"Pages":    0,
		"Races":    []raceRow(nil),
	}

	// The race list degrades to an empty page when the races service is
	// down; the page itself still renders.
	result, err := h.races.List(r.Context(), page, perPage)
	if err != nil {
		h.log.Warn("list races", logger.Error(err))
	} else {
		rows := make([]raceRow, 0, len(result.Races))
		for _, race := range result.Races {
			rows = append(rows, raceRow{Race: race, Quantity: cartQuantity(sess, race.ID)})
		}
		data["Pages"] = result.TotalPages
		data["Races"] = rows
	}

	h.render(w, http.StatusOK, "races.html", data)
}

// cartQuantity reads the cart count for a race. Cart values arrive as JSON
// numbers after a session reload, so both int and float64 are accepted.
func cartQuantity(sess *session.Session, raceID int64) int {
	cart, ok := sess.Get("cart")
	if !ok {
		return 0
	}
	m, ok := cart.(map[string]any)
	if !ok {
		return 0
	}
	switch v := m[strconv.FormatInt(raceID, 10)].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
