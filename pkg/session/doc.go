// Package session turns a stateless HTTP exchange into a durable,
// remotely-stored session. A Manager opens a session at the start of every
// request and closes it at response time; in between, handlers read and
// write per-visitor state through the Session's in-memory view.
//
// # Architecture
//
// Three pieces cooperate, connected by explicit interfaces:
//
//   - Store performs the remote operations the Manager needs: fetch by id,
//     create, update. HTTPStore talks to a session service over HTTP+JSON;
//     RedisStore and MemoryStore are alternative backends. Every failure is
//     reported as either ErrSessionNotFound or ErrStoreUnavailable.
//   - Manager applies the lifecycle policy: reuse a fetched session that is
//     still within its TTL, mint a fresh one when the cookie is missing,
//     unknown or expired, and degrade to a request-scoped in-memory session
//     when the store is unreachable.
//   - Transport binds the session id to the HTTP exchange. CookieTransport
//     carries the raw store-assigned id in the session_id cookie.
//
// Store failures are absorbed inside the Manager: an unreachable store
// costs the visitor persistence for one request, never an error page.
// Updates are best effort and idempotent, so a dropped write leaves the
// client presenting the same id and the next request re-fetches it.
//
// # Usage
//
//	store := session.NewHTTPStore("http://localhost:5051")
//	manager := session.New(session.WithStore(store))
//
//	mux := chi.NewRouter()
//	mux.Use(manager.Middleware)
//	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
//		sess := session.MustFromContext(r.Context())
//		sess.Set("cart", map[string]any{"42": 1})
//	})
//
// The middleware buffers the response body so the close phase can persist
// mutated session data and set or clear the cookie after the handler has
// run.
//
// # Concurrency
//
// One Session backs exactly one request; nothing is shared across requests
// in this package. Concurrent requests with the same cookie race at the
// store, and the last writer wins.
package session
