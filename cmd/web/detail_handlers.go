package main

import (
    "errors"
    "net/http"
    "strings"

    "go.uber.org/zap"

    "scriptforum.org/catalog-web/internal/catalog"
    mw "scriptforum.org/catalog-web/internal/middleware"
    "scriptforum.org/catalog-web/internal/observability"
    "scriptforum.org/catalog-web/internal/richtext"
    "scriptforum.org/catalog-web/internal/seo"
)

// DetailHandler renders one item resolved from the id query parameter.
func (a *app) DetailHandler(w http.ResponseWriter, r *http.Request) {
    lang := mw.Lang(r)
    cat, err := a.store.Catalog()
    if err != nil {
        a.logLoadError(r, err)
        a.renderError(w, r, http.StatusServiceUnavailable, ErrorView{
            Title:   a.i18n.T(lang, "error.load.title"),
            Message: a.i18n.T(lang, "error.load.detail"),
        })
        return
    }

    raw := r.URL.Query().Get("id")
    item, err := cat.Lookup(raw)
    if err != nil {
        var nf *catalog.NotFoundError
        key := "error.not_found"
        if errors.As(err, &nf) && nf.Reason == catalog.ReasonInvalidID {
            key = "error.invalid_id"
        }
        observability.FromContext(r.Context()).Info("detail lookup failed", zap.String("id", raw), zap.Error(err))
        a.renderError(w, r, http.StatusNotFound, ErrorView{Message: a.i18n.T(lang, key)})
        return
    }

    view := a.buildDetailView(item, lang)
    vm := a.basePage(r, item.Title, richtext.Excerpt(item.Description, excerptRunes))
    vm.Detail = view
    vm.SEO.Canonical = a.absoluteURL(detailURL(item.ID))
    vm.SEO.OG.URL = vm.SEO.Canonical
    vm.SEO.OG.Type = "article"
    if thumb := item.Thumbnail(); thumb != "" {
        vm.SEO.OG.Image = a.absoluteURL(thumb)
        vm.SEO.Twitter.Image = vm.SEO.OG.Image
    }

    sw := seo.App{
        Name:          item.Title,
        Description:   vm.SEO.Description,
        URL:           vm.SEO.Canonical,
        Image:         vm.SEO.OG.Image,
        Author:        item.Author,
        Version:       item.Version,
        DatePublished: item.ReleaseDate,
        License:       item.License,
        FileSize:      item.FileSize,
        Requirements:  item.Requirements,
    }
    if len(item.DownloadLinks) > 0 {
        sw.DownloadURL = a.absoluteURL(item.DownloadLinks[0].URL)
    }
    if len(item.Categories) > 0 {
        sw.Category = a.categories.Name(item.Categories[0])
    }
    crumbs := make([]seo.BreadcrumbItem, 0, len(vm.Breadcrumbs))
    for _, c := range vm.Breadcrumbs {
        name := c.Label
        if c.LabelKey != "" {
            name = a.i18n.T(lang, c.LabelKey)
        }
        href := ""
        if !c.Active {
            href = a.absoluteURL(c.Href)
        }
        crumbs = append(crumbs, seo.BreadcrumbItem{Name: strings.TrimSpace(name), Item: href})
    }
    vm.SEO.JSONLD = append(vm.SEO.JSONLD,
        seo.LD(seo.SoftwareApplication(sw)),
        seo.LD(seo.BreadcrumbList(crumbs)),
    )
    a.renderPage(w, r, http.StatusOK, vm)
}
