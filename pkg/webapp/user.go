package webapp

import (
	"errors"
	"net/http"

	"github.com/racedayhq/raceday/pkg/backend"
	"github.com/racedayhq/raceday/pkg/logger"
	"github.com/racedayhq/raceday/pkg/session"
)

func (h *Handler) registerForm(w http.ResponseWriter, r *http.Request) {
	rememberRedirect(r)

	if session.MustFromContext(r.Context()).IsAuthenticated() {
		http.Redirect(w, r, "/me", http.StatusFound)
		return
	}

	h.render(w, http.StatusOK, "register.html", nil)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	hash, err := h.hasher.Hash(r.FormValue("password"))
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "could not process the password")
		return
	}

	user, err := h.users.Create(r.Context(), backend.CreateUserParams{
		Login:        r.FormValue("login"),
		PasswordHash: hash,
		Name:         formPtr(r, "name"),
		Country:      formPtr(r, "country"),
		Email:        formPtr(r, "email"),
	})
	if err != nil {
		h.backendError(w, err, "Users backend is unavailable")
		return
	}

	sess := session.MustFromContext(r.Context())
	sess.SetUserID(user.ID)

	target, _ := sess.Pop("redirect_to", "/me").(string)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) signInForm(w http.ResponseWriter, r *http.Request) {
	rememberRedirect(r)

	if session.MustFromContext(r.Context()).IsAuthenticated() {
		http.Redirect(w, r, "/me", http.StatusFound)
		return
	}

	h.render(w, http.StatusOK, "sign_in.html", nil)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	hash, err := h.hasher.Hash(r.FormValue("password"))
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "could not process the password")
		return
	}

	user, err := h.users.ByCredentials(r.Context(), r.FormValue("login"), hash)
	switch {
	case errors.Is(err, backend.ErrNotFound):
		h.renderError(w, http.StatusForbidden, "invalid login or password")
		return
	case err != nil:
		h.backendError(w, err, "Users backend is unavailable")
		return
	}

	sess := session.MustFromContext(r.Context())
	sess.SetUserID(user.ID)

	target, _ := sess.Pop("redirect_to", "/me").(string)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	h.sessions.Invalidate(r.Context(), session.MustFromContext(r.Context()))
	http.Redirect(w, r, "/races/", http.StatusFound)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r, "/me")
	if !ok {
		return
	}

	// The profile page still renders when the users service is down; the
	// visitor just sees an empty profile.
	user, err := h.users.ByID(r.Context(), userID)
	if err != nil {
		h.log.Warn("fetch user for profile", logger.UserID(userID), logger.Error(err))
		user = nil
	}

	h.render(w, http.StatusOK, "me.html", map[string]any{"User": user})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r, "/me")
	if !ok {
		return
	}

	params := backend.UpdateUserParams{}
	if password := r.FormValue("password"); password != "" {
		hash, err := h.hasher.Hash(password)
		if err != nil {
			h.renderError(w, http.StatusInternalServerError, "could not process the password")
			return
		}
		params["password_hash"] = hash
	}
	for _, field := range []string{"name", "country", "email"} {
		if _, present := r.Form[field]; present {
			params[field] = formPtr(r, field)
		}
	}

	user, err := h.users.Update(r.Context(), userID, params)
	if err != nil {
		h.backendError(w, err, "Users backend is unavailable")
		return
	}

	h.render(w, http.StatusOK, "me.html", map[string]any{"User": user})
}
