package middleware

import (
    "context"
    "net/http"
    "strings"

    "scriptforum.org/catalog-web/internal/i18n"
)

const localeCookieName = "hl"

// Locale resolves the preferred language: `hl` query override (persisted to the `hl`
// cookie), then the cookie, then Accept-Language.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            // make fallback available to request context for helpers
            ctx := context.WithValue(r.Context(), ctxKeyLocaleFB, bundle.Fallback())
            lang := ""
            if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("hl"))); q != "" && bundle.IsSupported(q) {
                lang = q
                http.SetCookie(w, &http.Cookie{Name: localeCookieName, Value: q, Path: "/", SameSite: http.SameSiteLaxMode})
            } else if c, err := r.Cookie(localeCookieName); err == nil && bundle.IsSupported(strings.ToLower(c.Value)) {
                lang = strings.ToLower(c.Value)
            } else {
                lang = bundle.Resolve(r.Header.Get("Accept-Language"))
            }
            ctx = context.WithValue(ctx, ctxKeyLocale, lang)
            // surface Content-Language; responses differ per language
            w.Header().Set("Content-Language", lang)
            w.Header().Add("Vary", "Accept-Language")
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// Lang returns current lang from context or default "id".
func Lang(r *http.Request) string {
    if v, ok := r.Context().Value(ctxKeyLocale).(string); ok && v != "" {
        return v
    }
    if v := r.Context().Value(ctxKeyLocaleFB); v != nil {
        if fb, ok := v.(string); ok && fb != "" {
            return fb
        }
    }
    return "id"
}
