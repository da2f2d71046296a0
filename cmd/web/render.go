package main

import (
    "bytes"
    "fmt"
    "html/template"
    "io/fs"
    "net/http"
    "net/url"
    "path/filepath"
    "strings"
    "sync"
    "time"

    "go.uber.org/zap"

    handlersPkg "scriptforum.org/catalog-web/internal/handlers"
    mw "scriptforum.org/catalog-web/internal/middleware"
    "scriptforum.org/catalog-web/internal/nav"
    "scriptforum.org/catalog-web/internal/observability"
    "scriptforum.org/catalog-web/internal/seo"
)

// templateSet owns the parsed templates. In dev mode templates are reparsed on each request.
type templateSet struct {
    dir   string
    dev   bool
    funcs template.FuncMap

    mu     sync.RWMutex
    cached *template.Template
}

func newTemplateSet(dir string, dev bool, funcs template.FuncMap) *templateSet {
    return &templateSet{dir: dir, dev: dev, funcs: funcs}
}

func (s *templateSet) init() error {
    t, err := s.parse()
    if err != nil {
        return err
    }
    s.mu.Lock()
    s.cached = t
    s.mu.Unlock()
    return nil
}

func (s *templateSet) get() (*template.Template, error) {
    if s.dev {
        return s.parse()
    }
    s.mu.RLock()
    t := s.cached
    s.mu.RUnlock()
    if t == nil {
        return nil, fmt.Errorf("templates not initialized")
    }
    return t, nil
}

func (s *templateSet) parse() (*template.Template, error) {
    // Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
    var files []string
    if err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
        if err != nil {
            return err
        }
        if d.IsDir() {
            return nil
        }
        if strings.HasSuffix(d.Name(), ".tmpl") {
            files = append(files, path)
        }
        return nil
    }); err != nil {
        return nil, err
    }
    if len(files) == 0 {
        return nil, fmt.Errorf("no templates found under %s", s.dir)
    }
    return template.New("_root").Funcs(s.funcs).ParseFiles(files...)
}

func (a *app) funcMap() template.FuncMap {
    return template.FuncMap{
        "now": time.Now,
        "t": func(lang, key string) string {
            return a.i18n.T(lang, key)
        },
        "tf": func(lang, key string, args ...any) string {
            return a.i18n.Tf(lang, key, args...)
        },
        "langURL": func(rawURL, lang string) string {
            u, err := url.Parse(rawURL)
            if err != nil {
                return rawURL
            }
            q := u.Query()
            q.Set("hl", lang)
            u.RawQuery = q.Encode()
            return u.String()
        },
    }
}

// renderPage executes the base layout with status.
func (a *app) renderPage(w http.ResponseWriter, r *http.Request, status int, vm handlersPkg.PageData) {
    a.renderTemplate(w, r, status, "base", vm)
}

// renderTemplate executes a named template into a buffer so a failed execution
// still produces a clean 500 instead of a half-written page.
func (a *app) renderTemplate(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
    logger := observability.FromContext(r.Context())
    t, err := a.tmpl.get()
    if err != nil {
        logger.Error("template parse", zap.Error(err))
        http.Error(w, "template parse error", http.StatusInternalServerError)
        return
    }
    var buf bytes.Buffer
    if err := t.ExecuteTemplate(&buf, name, data); err != nil {
        logger.Error("template exec", zap.String("template", name), zap.Error(err))
        http.Error(w, "template exec error", http.StatusInternalServerError)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(status)
    _, _ = buf.WriteTo(w)
}

// basePage fills the layout fields shared by every page.
func (a *app) basePage(r *http.Request, title, description string) handlersPkg.PageData {
    lang := mw.Lang(r)
    site := a.i18n.T(lang, "site.title")
    if description == "" {
        description = a.i18n.T(lang, "site.tagline")
    }
    vm := handlersPkg.PageData{
        Title:       title,
        Lang:        lang,
        Langs:       a.i18n.Supported(),
        DarkMode:    mw.DarkMode(r.Context()),
        Analytics:   handlersPkg.AnalyticsFromConfig(a.cfg.Analytics),
        Path:        r.URL.Path,
        URL:         r.URL.RequestURI(),
        Nav:         nav.Build(r.URL.Path, a.cfg.Web.CommunityURL),
        Breadcrumbs: nav.Breadcrumbs(r.URL.Path, title),
    }
    vm.SEO.Title = site
    if title != "" {
        vm.SEO.Title = title + " | " + site
    }
    vm.SEO.Description = description
    vm.SEO.Canonical = a.absoluteURL(r.URL.RequestURI())
    vm.SEO.OG.URL = vm.SEO.Canonical
    vm.SEO.OG.SiteName = site
    vm.SEO.OG.Title = vm.SEO.Title
    vm.SEO.OG.Description = vm.SEO.Description
    vm.SEO.OG.Type = "website"
    vm.SEO.Twitter.Card = "summary_large_image"
    vm.SEO.Alternates = seo.Alternates(a.cfg.Web.SiteURL, r.URL.RequestURI(), vm.Langs)
    return vm
}

// absoluteURL resolves a root-relative reference against the configured site URL.
// Without a site URL the reference is returned as is.
func (a *app) absoluteURL(ref string) string {
    return seo.Absolute(a.cfg.Web.SiteURL, ref)
}

// ErrorView is the payload of the localized error panel.
type ErrorView struct {
    Title   string
    Message string
    BackURL string
}

func (a *app) renderError(w http.ResponseWriter, r *http.Request, status int, ev ErrorView) {
    lang := mw.Lang(r)
    if ev.Title == "" {
        ev.Title = a.i18n.T(lang, "error.title")
    }
    if ev.BackURL == "" {
        ev.BackURL = "/"
    }
    vm := a.basePage(r, ev.Title, ev.Message)
    vm.SEO.Robots = "noindex"
    vm.Error = ev
    a.renderPage(w, r, status, vm)
}

// NotFoundHandler renders unknown paths with the error panel.
func (a *app) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
    lang := mw.Lang(r)
    a.renderError(w, r, http.StatusNotFound, ErrorView{Message: a.i18n.T(lang, "error.page_not_found")})
}
