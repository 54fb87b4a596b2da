package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	gonanoid "github.com/matoous/go-nanoid/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spacecal/spacecal/pkg/user"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {

	// Tag every request with a short id for log correlation.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestId, err := gonanoid.New(12)
			if err == nil {
				w.Header().Set("X-Request-Id", requestId)
				log.Tracef("request %s: %s %s", requestId, req.Method, req.URL.Path)
			}
			next.ServeHTTP(w, req)
		})
	})

	// Turn a valid bearer token into the user context for downstream
	// services. Requests without a token pass through anonymously and
	// fail at the handlers that require a user.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			authHeader := req.Header.Get("Authorization")
			ctx := req.Context()

			if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				uid, err := deps.TokenService.Validate(token)
				if err != nil {
					log.Debugf("rejected bearer token: %v", err)
					http.Error(w, "invalid token", http.StatusUnauthorized)
					return
				}
				u, err := deps.UserService.GetUserByUid(ctx, uid)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("user not found: %s", uid)
						http.Error(w, "user not found", http.StatusForbidden)
						return
					}
					log.Errorf("failed to get user: %v", err)
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
