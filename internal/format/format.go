package format

import (
    "fmt"
    "strings"
    "time"
)

// Style selects the long (detail page) or short (list card) date form.
type Style int

const (
    Short Style = iota
    Long
)

var dateLayouts = []string{
    time.RFC3339,
    "2006-01-02T15:04:05",
    "2006-01-02",
    "2006/01/02",
    "2006-1-2",
}

var months = map[string]struct{ long, short [12]string }{
    "id": {
        long:  [12]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"},
        short: [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"},
    },
    "en": {
        long:  [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
        short: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
    },
}

// ParseDate parses an ISO-like calendar date.
func ParseDate(raw string) (time.Time, bool) {
    raw = strings.TrimSpace(raw)
    if raw == "" {
        return time.Time{}, false
    }
    for _, layout := range dateLayouts {
        if t, err := time.Parse(layout, raw); err == nil {
            return t, true
        }
    }
    return time.Time{}, false
}

// Date renders raw in the given language and style.
// Example: Date("2025-10-15", "id", Long) => "15 Oktober 2025"
// Input that is not a date is returned unchanged.
func Date(raw, lang string, style Style) string {
    t, ok := ParseDate(raw)
    if !ok {
        return raw
    }
    return FmtDate(t, lang, style)
}

// FmtDate formats t; unknown languages use Indonesian month names.
func FmtDate(t time.Time, lang string, style Style) string {
    lang = strings.ToLower(strings.TrimSpace(lang))
    if i := strings.IndexByte(lang, '-'); i != -1 {
        lang = lang[:i]
    }
    names, ok := months[lang]
    if !ok {
        lang = "id"
        names = months[lang]
    }
    m := names.short[t.Month()-1]
    if style == Long {
        m = names.long[t.Month()-1]
    }
    if lang == "en" {
        return fmt.Sprintf("%s %d, %d", m, t.Day(), t.Year())
    }
    return fmt.Sprintf("%d %s %d", t.Day(), m, t.Year())
}
