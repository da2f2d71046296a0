package handlers

import (
    "scriptforum.org/catalog-web/internal/nav"
    "scriptforum.org/catalog-web/internal/seo"
)

// PageData is the view model every page hands to the shared layout.
type PageData struct {
    Title     string
    Lang      string
    Langs     []string
    DarkMode  bool
    SEO       seo.Meta
    Analytics Analytics

    Path        string
    URL         string
    Nav         []nav.RenderedItem
    Breadcrumbs []nav.Crumb

    // Exactly one of the payloads is set per page.
    List   any
    Detail any
    Error  any
}

// HasBreadcrumbs hides the trail on the home page where it would only say "Home".
func (p PageData) HasBreadcrumbs() bool {
    return len(p.Breadcrumbs) > 1
}
