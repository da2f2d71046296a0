package seo

import (
    "html/template"
    "net/url"
    "strings"
)

type OpenGraph struct {
    Title       string
    Description string
    Image       string
    Type        string
    URL         string
    SiteName    string
}

type Twitter struct {
    Card  string
    Image string
}

// Alternate is one hreflang link.
type Alternate struct {
    Href     string
    Hreflang string
}

type Meta struct {
    Title       string
    Description string
    Canonical   string
    Robots      string
    OG          OpenGraph
    Twitter     Twitter
    Alternates  []Alternate
    JSONLD      []template.JS
}

// Absolute joins a site base URL and a root-relative path. Already absolute
// references and an empty base leave ref untouched.
func Absolute(base, ref string) string {
    if ref == "" || base == "" {
        return ref
    }
    if u, err := url.Parse(ref); err == nil && u.IsAbs() {
        return ref
    }
    return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}

// Alternates builds hreflang links for path in every language, setting the hl query parameter.
func Alternates(base, path string, langs []string) []Alternate {
    if base == "" {
        return nil
    }
    out := make([]Alternate, 0, len(langs))
    for _, lang := range langs {
        u, err := url.Parse(path)
        if err != nil {
            continue
        }
        q := u.Query()
        q.Set("hl", lang)
        u.RawQuery = q.Encode()
        out = append(out, Alternate{Href: Absolute(base, u.String()), Hreflang: lang})
    }
    return out
}
