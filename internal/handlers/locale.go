package handlers

import (
	"context"
	"net/http"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/libs/auth/middleware"
	"go.uber.org/zap"
)

// LocaleSource is the interface that wraps the lookup of a user's language
type LocaleSource interface {
	// Method PreferredLocale returns the language picked in the user's profile.
	PreferredLocale(ctx context.Context, userID int) (string, error)
}

// PreferredLocaleMiddleware switches authenticated requests to the user's preferred language
// unless the request picked one explicitly. It must run after the auth middleware.
func PreferredLocaleMiddleware(source LocaleSource, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := middleware.GetUserID(r.Context())
			if !ok || i18n.HasExplicitLocale(r) {
				next.ServeHTTP(w, r)
				return
			}

			preferred, err := source.PreferredLocale(r.Context(), userID)
			if err != nil {
				logger.Debug("preferred locale unavailable", zap.Error(err), zap.Int("userId", userID))
				next.ServeHTTP(w, r)
				return
			}
			if l := i18n.Normalize(preferred); l != "" {
				w.Header().Set("Content-Language", l)
				r = r.WithContext(i18n.WithLocale(r.Context(), l))
			}
			next.ServeHTTP(w, r)
		})
	}
}
