package webapp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/racedayhq/raceday/pkg/backend"
	"github.com/racedayhq/raceday/pkg/logger"
)

// entryRow joins a race entry with the race it belongs to.
type entryRow struct {
	Name     string
	Country  string
	Distance string
	Laps     string
	Class    string
}

func (h *Handler) entryForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r, "/me")
	if !ok {
		return
	}

	raceID, err := strconv.ParseInt(r.URL.Query().Get("race_id"), 10, 64)
	if err != nil {
		h.renderError(w, http.StatusBadRequest, "invalid race id")
		return
	}

	exists, err := h.entries.Exists(r.Context(), userID, raceID)
	if err != nil {
		h.backendError(w, err, "Entry list backend is unavailable")
		return
	}
	if exists {
		h.renderError(w, http.StatusForbidden, "already participated this race!")
		return
	}

	// The entry form still renders without race details when the races
	// service is down.
	race, err := h.races.ByID(r.Context(), raceID)
	if err != nil {
		h.log.Warn("fetch race for entry form", logger.Error(err))
		race = nil
	}

	h.render(w, http.StatusOK, "entry.html", map[string]any{"Race": race})
}

func (h *Handler) enterRace(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r, "/me")
	if !ok {
		return
	}

	raceID, err := strconv.ParseInt(r.URL.Query().Get("race_id"), 10, 64)
	if err != nil {
		h.renderError(w, http.StatusBadRequest, "invalid race id")
		return
	}

	exists, err := h.entries.Exists(r.Context(), userID, raceID)
	if err != nil {
		h.backendError(w, err, "Entry list backend is unavailable")
		return
	}
	if exists {
		h.renderError(w, http.StatusForbidden, "already participated this race!")
		return
	}

	_, err = h.entries.Create(r.Context(), backend.CreateEntryParams{
		UserID:   userID,
		RaceID:   raceID,
		RaceTime: time.Now(),
		Class:    r.FormValue("rclass"),
	})
	if err != nil {
		h.backendError(w, err, "Entry list backend is unavailable")
		return
	}

	http.Redirect(w, r, "/me", http.StatusSeeOther)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r, "/entrylist/")
	if !ok {
		return
	}

	var userName string
	if user, err := h.users.ByID(r.Context(), userID); err != nil {
		h.log.Warn("fetch user for entry list", logger.UserID(userID), logger.Error(err))
	} else if user.Name != nil {
		userName = *user.Name
	}

	entries, err := h.entries.ListByUser(r.Context(), userID)
	if err != nil {
		h.backendError(w, err, "Entry list backend is unavailable")
		return
	}

	rows := make([]entryRow, 0, len(entries))
	if len(entries) > 0 {
		ids := make([]int64, 0, len(entries))
		seen := make(map[int64]struct{}, len(entries))
		for _, entry := range entries {
			if _, ok := seen[entry.RaceID]; ok {
				continue
			}
			seen[entry.RaceID] = struct{}{}
			ids = append(ids, entry.RaceID)
		}

		races, err := h.races.ByIDs(r.Context(), ids)
		if err != nil {
			h.backendError(w, err, "Races backend is unavailable")
			return
		}

		byID := make(map[int64]backend.Race, len(races))
		for _, race := range races {
			byID[race.ID] = race
		}

		for _, entry := range entries {
			race := byID[entry.RaceID]
			rows = append(rows, entryRow{
				Name:     race.Name,
				Country:  race.Country,
				Distance: race.Distance,
				Laps:     race.Laps,
				Class:    entry.Class,
			})
		}
	}

	h.render(w, http.StatusOK, "entrylist.html", map[string]any{
		"UserName": userName,
		"Entries":  rows,
	})
}
