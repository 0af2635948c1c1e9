package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader carries the key of internal callers
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware guards internal endpoints. Any of keys is accepted so a new key can be
// rolled out before the old one is removed. With no keys configured every call is refused.
func APIKeyMiddleware(keys []string) func(http.Handler) http.Handler {
	accepted := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			accepted = append(accepted, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := []byte(r.Header.Get(APIKeyHeader))
			match := 0
			// Compare against every key so timing does not reveal which one matched
			for _, k := range accepted {
				match |= subtle.ConstantTimeCompare(provided, k)
			}
			if len(provided) == 0 || match != 1 {
				writeError(w, http.StatusUnauthorized, "invalid or missing API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
