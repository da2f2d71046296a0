package seo

import (
    "encoding/json"
    "html/template"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
    b, err := json.Marshal(v)
    if err != nil {
        return ""
    }
    return string(b)
}

// LD marshals v for a ld+json script block. encoding/json escapes <, > and &,
// so the payload cannot close the script element early.
func LD(v any) template.JS {
    return template.JS(JSON(v))
}

// WebSite returns a minimal WebSite schema with optional SearchAction.
func WebSite(name, url, searchActionURL string) map[string]any {
    m := map[string]any{
        "@context": "https://schema.org",
        "@type":    "WebSite",
        "name":     name,
    }
    if url != "" { m["url"] = url }
    if searchActionURL != "" {
        m["potentialAction"] = map[string]any{
            "@type": "SearchAction",
            "target": searchActionURL + "{search_term_string}",
            "query-input": "required name=search_term_string",
        }
    }
    return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
    Name string
    Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
    el := make([]map[string]any, 0, len(items))
    for i, it := range items {
        entry := map[string]any{
            "@type":    "ListItem",
            "position": i + 1,
            "name":     it.Name,
        }
        if it.Item != "" {
            entry["item"] = it.Item
        }
        el = append(el, entry)
    }
    return map[string]any{
        "@context":        "https://schema.org",
        "@type":           "BreadcrumbList",
        "itemListElement": el,
    }
}

// App describes a downloadable script for the SoftwareApplication schema.
// Empty fields are omitted from the payload.
type App struct {
    Name          string
    Description   string
    URL           string
    Image         string
    Author        string
    Version       string
    DatePublished string
    License       string
    FileSize      string
    Requirements  string
    DownloadURL   string
    Category      string
}

// SoftwareApplication returns a schema.org SoftwareApplication payload.
func SoftwareApplication(app App) map[string]any {
    m := map[string]any{
        "@context":            "https://schema.org",
        "@type":               "SoftwareApplication",
        "name":                app.Name,
        "applicationCategory": "GameApplication",
    }
    set := func(key, v string) {
        if v != "" {
            m[key] = v
        }
    }
    set("description", app.Description)
    set("url", app.URL)
    set("image", app.Image)
    set("softwareVersion", app.Version)
    set("datePublished", app.DatePublished)
    set("license", app.License)
    set("fileSize", app.FileSize)
    set("softwareRequirements", app.Requirements)
    set("downloadUrl", app.DownloadURL)
    set("applicationSubCategory", app.Category)
    if app.Author != "" {
        m["author"] = map[string]any{"@type": "Person", "name": app.Author}
    }
    return m
}
