package i18n

import (
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"
    "sort"
    "strings"

    "golang.org/x/text/language"
)

type Bundle struct {
    dict      map[string]map[string]string
    fallback  string
    supported map[string]struct{}
    // order lines up with the matcher's tag list; order[0] is the fallback.
    order   []string
    matcher language.Matcher
}

func Load(dir string, fallback string, supported []string) (*Bundle, error) {
    b := &Bundle{
        dict:      map[string]map[string]string{},
        fallback:  fallback,
        supported: map[string]struct{}{},
    }
    if len(supported) == 0 {
        supported = []string{"id", "en"}
    }
    for _, l := range supported {
        b.supported[l] = struct{}{}
        path := filepath.Join(dir, l+".json")
        raw, err := os.ReadFile(path)
        if err != nil {
            // allow missing file for non-default locales
            if l == fallback {
                return nil, fmt.Errorf("load locale %s: %w", l, err)
            }
            continue
        }
        var m map[string]string
        if err := json.Unmarshal(raw, &m); err != nil {
            return nil, fmt.Errorf("unmarshal %s: %w", l, err)
        }
        b.dict[l] = m
    }
    if _, ok := b.dict[fallback]; !ok {
        return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
    }

    b.order = append(b.order, fallback)
    for _, l := range supported {
        if l != fallback {
            b.order = append(b.order, l)
        }
    }
    tags := make([]language.Tag, 0, len(b.order))
    for _, l := range b.order {
        tag, err := language.Parse(l)
        if err != nil {
            return nil, fmt.Errorf("parse locale tag %s: %w", l, err)
        }
        tags = append(tags, tag)
    }
    b.matcher = language.NewMatcher(tags)
    return b, nil
}

func (b *Bundle) Supported() []string {
    out := make([]string, 0, len(b.supported))
    for k := range b.supported {
        out = append(out, k)
    }
    sort.Strings(out)
    return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang is one of the configured locales.
func (b *Bundle) IsSupported(lang string) bool {
    _, ok := b.supported[lang]
    return ok
}

// T returns translation for key in lang, falling back to default and finally key.
func (b *Bundle) T(lang, key string) string {
    if lang != "" {
        if m, ok := b.dict[lang]; ok {
            if v, ok := m[key]; ok {
                return v
            }
        }
    }
    if m, ok := b.dict[b.fallback]; ok {
        if v, ok := m[key]; ok {
            return v
        }
    }
    return key
}

// Tf translates key and formats it with args.
func (b *Bundle) Tf(lang, key string, args ...any) string {
    return fmt.Sprintf(b.T(lang, key), args...)
}

// Resolve chooses best language from Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
    if strings.TrimSpace(acceptLang) == "" {
        return b.fallback
    }
    prefs, _, err := language.ParseAcceptLanguage(acceptLang)
    if err != nil || len(prefs) == 0 {
        return b.fallback
    }
    _, idx, conf := b.matcher.Match(prefs...)
    if conf == language.No || idx < 0 || idx >= len(b.order) {
        return b.fallback
    }
    return b.order[idx]
}
