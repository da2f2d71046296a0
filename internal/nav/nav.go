package nav

import (
    "strings"
)

// Item represents a top-level navigation item.
type Item struct {
    Path     string // e.g. "/"
    LabelKey string // i18n key, e.g. "nav.home"
    External bool
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
    Href     string
    LabelKey string
    Active   bool
    External bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
    Href     string
    LabelKey string
    Label    string
    Active   bool
}

// Main is the primary navigation definition. The list page is served on both
// "/" and "/index.html".
var Main = []Item{
    {Path: "/", LabelKey: "nav.home"},
}

// Build renders navigation items with active state given the current path.
// A non-empty communityURL appends an external link to the forum community.
func Build(currentPath, communityURL string) []RenderedItem {
    if currentPath == "" {
        currentPath = "/"
    }
    items := make([]RenderedItem, 0, len(Main)+1)
    for _, it := range Main {
        items = append(items, RenderedItem{
            Href:     it.Path,
            LabelKey: it.LabelKey,
            Active:   isActive(it.Path, currentPath),
            External: it.External,
        })
    }
    if communityURL != "" {
        items = append(items, RenderedItem{Href: communityURL, LabelKey: "nav.community", External: true})
    }
    return items
}

func isActive(itemPath, currentPath string) bool {
    if itemPath == "/" {
        return currentPath == "/" || currentPath == "/index.html"
    }
    // match exact or prefix boundary: "/x" or "/x/..."
    if currentPath == itemPath {
        return true
    }
    return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds the trail for a page. The list page is only Home; any other
// page gets Home followed by its title as the active crumb.
func Breadcrumbs(currentPath, title string) []Crumb {
    if currentPath == "" {
        currentPath = "/"
    }
    home := isActive("/", currentPath)
    crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: home}}
    if home {
        return crumbs
    }
    label := strings.TrimSpace(title)
    if label == "" {
        label = titleFromSegment(strings.TrimSuffix(strings.Trim(currentPath, "/"), ".html"))
    }
    return append(crumbs, Crumb{Href: currentPath, Label: label, Active: true})
}

func titleFromSegment(seg string) string {
    if seg == "" {
        return seg
    }
    s := strings.ReplaceAll(seg, "-", " ")
    s = strings.ReplaceAll(s, "_", " ")
    r := []rune(s)
    r[0] = toUpper(r[0])
    return string(r)
}

func toUpper(r rune) rune {
    // ASCII only is sufficient for slugs here
    if r >= 'a' && r <= 'z' {
        return r - ('a' - 'A')
    }
    return r
}
