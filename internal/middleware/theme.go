package middleware

import "net/http"

// DarkModeKey is the cookie (and client localStorage) key of the theme flag.
const DarkModeKey = "darkMode"

// DarkModeEnabled is the only value that turns the dark theme on.
const DarkModeEnabled = "enabled"

// Theme reads the dark-mode flag once per request. Writing the flag is left to the client.
func Theme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		on := false
		if c, err := r.Cookie(DarkModeKey); err == nil && c.Value == DarkModeEnabled {
			on = true
		}
		next.ServeHTTP(w, r.WithContext(WithDarkMode(r.Context(), on)))
	})
}
