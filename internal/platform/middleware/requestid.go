package middleware

import (
	"net/http"

	"github.com/Bahjat/site-audit/internal/platform/requestid"
	"github.com/google/uuid"
)

// maxInboundIDLen bounds a caller-supplied ID before it reaches the logs.
const maxInboundIDLen = 64

// RequestID tags each request with an ID taken from X-Request-ID or, when
// that header is missing or unusable, a fresh UUID v4. The ID travels in the
// context for the access log and analyzer logs and is echoed to the caller.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if !usableID(id) {
			id = uuid.NewString()
		}

		w.Header().Set(requestid.Header, id)
		next.ServeHTTP(w, r.WithContext(requestid.NewContext(r.Context(), id)))
	})
}

// usableID accepts short IDs made of printable ASCII.
func usableID(id string) bool {
	if id == "" || len(id) > maxInboundIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
