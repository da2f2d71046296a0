package main

import (
    "errors"
    "net/http"

    "go.uber.org/zap"

    "scriptforum.org/catalog-web/internal/catalog"
    mw "scriptforum.org/catalog-web/internal/middleware"
    "scriptforum.org/catalog-web/internal/observability"
    "scriptforum.org/catalog-web/internal/seo"
)

// ListHandler renders the searchable list page.
func (a *app) ListHandler(w http.ResponseWriter, r *http.Request) {
    lang := mw.Lang(r)
    cat, err := a.store.Catalog()
    if err != nil {
        a.renderLoadError(w, r, err)
        return
    }
    view := a.buildListView(cat, lang, r.URL.Query())

    vm := a.basePage(r, "", "")
    vm.List = view
    site := a.i18n.T(lang, "site.title")
    if base := a.cfg.Web.SiteURL; base != "" {
        vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.LD(seo.WebSite(site, base+"/", base+"/?q=")))
    }
    // filtered variants are not separate documents
    if view.PageURL != "/" {
        vm.SEO.Canonical = a.absoluteURL("/")
        vm.SEO.OG.URL = vm.SEO.Canonical
    }
    a.renderPage(w, r, http.StatusOK, vm)
}

// ListFrag renders only the result region for htmx live search.
func (a *app) ListFrag(w http.ResponseWriter, r *http.Request) {
    lang := mw.Lang(r)
    cat, err := a.store.Catalog()
    if err != nil {
        a.renderLoadErrorFrag(w, r, err)
        return
    }
    view := a.buildListView(cat, lang, r.URL.Query())
    w.Header().Set("HX-Push-Url", view.PageURL)
    a.renderTemplate(w, r, http.StatusOK, "frag_list", view)
}

// renderLoadError shows the load-error state in place of any content. No query runs.
func (a *app) renderLoadError(w http.ResponseWriter, r *http.Request, err error) {
    lang := mw.Lang(r)
    a.logLoadError(r, err)
    a.renderError(w, r, http.StatusServiceUnavailable, ErrorView{
        Title:   a.i18n.T(lang, "error.load.title"),
        Message: a.i18n.T(lang, "error.load.body"),
    })
}

func (a *app) renderLoadErrorFrag(w http.ResponseWriter, r *http.Request, err error) {
    lang := mw.Lang(r)
    a.logLoadError(r, err)
    a.renderTemplate(w, r, http.StatusServiceUnavailable, "frag_error", map[string]any{
        "Lang":  lang,
        "Error": ErrorView{Title: a.i18n.T(lang, "error.load.title"), Message: a.i18n.T(lang, "error.load.body"), BackURL: "/"},
    })
}

func (a *app) logLoadError(r *http.Request, err error) {
    fields := []zap.Field{zap.Error(err)}
    var le *catalog.LoadError
    if errors.As(err, &le) {
        fields = append(fields, zap.String("source", le.Source), zap.Int("upstream_status", le.Status))
    }
    observability.FromContext(r.Context()).Warn("catalog unavailable", fields...)
}
