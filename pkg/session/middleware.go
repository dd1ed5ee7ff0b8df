package session

import (
	"bytes"
	"net/http"
)

// Middleware opens a session before the wrapped handler runs and closes it
// afterwards. The response body is buffered so that the close phase can
// still persist the session and write or clear the cookie after handler
// execution; open-phase store failures never reach the handler.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.Open(r.Context(), r)
		ctx := WithSession(r.Context(), s)

		bw := &bufferedWriter{ResponseWriter: w}
		next.ServeHTTP(bw, r.WithContext(ctx))

		m.Close(r.Context(), w, s)
		bw.flush()
	})
}

// bufferedWriter delays the status line and body until flush so that
// cookies can be added after the handler has finished.
type bufferedWriter struct {
	http.ResponseWriter
	buf         bytes.Buffer
	code        int
	wroteHeader bool
}

func (b *bufferedWriter) WriteHeader(code int) {
	if b.wroteHeader {
		return
	}
	b.code = code
	b.wroteHeader = true
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if !b.wroteHeader {
		b.WriteHeader(http.StatusOK)
	}
	return b.buf.Write(p)
}

func (b *bufferedWriter) flush() {
	if b.wroteHeader {
		b.ResponseWriter.WriteHeader(b.code)
	}
	if b.buf.Len() > 0 {
		_, _ = b.ResponseWriter.Write(b.buf.Bytes())
	}
}
