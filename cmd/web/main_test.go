package main

import (
    "bytes"
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "path/filepath"
    "strings"
    "testing"

    "github.com/PuerkitoBio/goquery"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    "scriptforum.org/catalog-web/internal/config"
)

const fixture = "../../internal/catalog/testdata/data.json"

// newTestApp builds the app the way serve does, pointed at the repo's templates and locales.
func newTestApp(t *testing.T, source string) *app {
    t.Helper()
    cfg, err := config.Load(
        config.WithEnvMap(map[string]string{
            "CATALOG_WEB_DATA_SOURCE":     source,
            "CATALOG_WEB_TEMPLATES_DIR":   "../../templates",
            "CATALOG_WEB_PUBLIC_DIR":      "../../public",
            "CATALOG_WEB_LOCALES_DIR":     "../../locales",
            "CATALOG_WEB_CATEGORIES_FILE": "../../config/categories.yaml",
            "CATALOG_WEB_SITE_URL":        "https://scripts.example.com",
        }),
        config.WithoutSystemEnv(),
        config.WithEnvFile(""),
    )
    require.NoError(t, err)
    a, err := newApp(cfg, zap.NewNop())
    require.NoError(t, err)
    _ = a.store.Load(context.Background())
    return a
}

func newTestRouter(t *testing.T) http.Handler {
    t.Helper()
    return newTestApp(t, fixture).routes()
}

func get(t *testing.T, h http.Handler, target string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
    t.Helper()
    req := httptest.NewRequest(http.MethodGet, target, nil)
    for _, m := range mutate {
        m(req)
    }
    rec := httptest.NewRecorder()
    h.ServeHTTP(rec, req)
    return rec
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
    t.Helper()
    doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Body.Bytes()))
    require.NoError(t, err)
    return doc
}

func TestHealthzOK(t *testing.T) {
    rec := get(t, newTestRouter(t), "/healthz")
    require.Equal(t, http.StatusOK, rec.Code)
    require.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestReadyz(t *testing.T) {
    rec := get(t, newTestRouter(t), "/readyz")
    require.Equal(t, http.StatusOK, rec.Code)

    broken := newTestApp(t, filepath.Join(t.TempDir(), "missing.json")).routes()
    rec = get(t, broken, "/readyz")
    require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListPageRendersCatalog(t *testing.T) {
    rec := get(t, newTestRouter(t), "/")
    require.Equal(t, http.StatusOK, rec.Code)
    require.Contains(t, rec.Header().Get("Content-Type"), "text/html")

    doc := parseDoc(t, rec)
    require.Equal(t, 3, doc.Find(".forum-item").Length())
    require.Equal(t, "3", doc.Find("#totalItems").Text())
    require.Equal(t, "4", doc.Find("#totalCategories").Text())
    require.Equal(t, "3", doc.Find("#totalDownloads").Text())

    filters := doc.Find(".category-filter")
    require.Equal(t, 5, filters.Length())
    require.Equal(t, "Semua Script", strings.TrimSpace(filters.First().Text()))
    require.True(t, filters.First().HasClass("active"))
    require.Equal(t, "Moon Loader", strings.TrimSpace(doc.Find(`.category-filter[data-category="moon-loader"]`).Text()))

    first := doc.Find(`.forum-item[data-id="1"]`)
    href, _ := first.Attr("href")
    require.Equal(t, "/detail?id=1", href)
    style, _ := first.Find(`.item-category[data-category="monet"]`).Attr("style")
    require.Contains(t, style, "#60A5FA20")
    require.Contains(t, first.Find(".meta-version").Text(), "v2.1")
    require.Contains(t, first.Find(".meta-files").Text(), "2 file")
    require.Contains(t, first.Find(".meta-size").Text(), "1.3 MB")
    require.Contains(t, first.Find(".meta-date").Text(), "15 Mar 2024")
    require.Equal(t, 0, first.Find(".video-badge").Length())
    require.Contains(t, first.Find(".item-description").Text(), "Custom menu for Monetloader")

    second := doc.Find(`.forum-item[data-id="2"]`)
    require.Equal(t, 1, second.Find(".video-badge").Length())

    third := doc.Find(`.forum-item[data-id="3"]`)
    require.Contains(t, third.Find(".meta-version").Text(), "v1.0")
    require.Contains(t, third.Find(".meta-files").Text(), "0 file")
    require.Equal(t, 0, third.Find(".meta-date").Length())
    src, _ := third.Find(".item-image").Attr("src")
    require.Equal(t, "/images/default.jpg", src)
    fallback, _ := doc.Find(".item-image").First().Attr("data-fallback")
    require.Equal(t, "/images/default.jpg", fallback)
}

func TestListPageFilters(t *testing.T) {
    h := newTestRouter(t)

    tests := []struct {
        name    string
        target  string
        wantIDs []string
    }{
        {name: "author match", target: "/?q=carlos", wantIDs: []string{"3"}},
        {name: "category", target: "/?category=pc", wantIDs: []string{"1"}},
        {name: "tag match case insensitive", target: "/?q=VEHICLE", wantIDs: []string{"2"}},
        {name: "whitespace term", target: "/?q=%20%20", wantIDs: []string{"1", "2", "3"}},
        {name: "index alias", target: "/index.html?category=android", wantIDs: []string{"2"}},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            rec := get(t, h, tt.target)
            require.Equal(t, http.StatusOK, rec.Code)
            var ids []string
            parseDoc(t, rec).Find(".forum-item").Each(func(_ int, s *goquery.Selection) {
                id, _ := s.Attr("data-id")
                ids = append(ids, id)
            })
            require.Equal(t, tt.wantIDs, ids)
        })
    }
}

func TestListPageNoResultsIsNotAnError(t *testing.T) {
    rec := get(t, newTestRouter(t), "/?q=menu&category=android")
    require.Equal(t, http.StatusOK, rec.Code)
    doc := parseDoc(t, rec)
    require.Equal(t, 0, doc.Find(".forum-item").Length())
    require.Equal(t, 1, doc.Find(".no-results").Length())
    require.Equal(t, 0, doc.Find(".error-message").Length())
    require.Contains(t, doc.Find(".no-results h3").Text(), "Tidak ada script yang ditemukan")

    active := doc.Find(".category-filter.active")
    require.Equal(t, "android", active.AttrOr("data-category", ""))
}

func TestListFragmentForHTMX(t *testing.T) {
    rec := get(t, newTestRouter(t), "/items?q=spawn&category=all", func(r *http.Request) {
        r.Header.Set("HX-Request", "true")
    })
    require.Equal(t, http.StatusOK, rec.Code)
    require.Equal(t, "/?q=spawn", rec.Header().Get("HX-Push-Url"))
    require.NotContains(t, rec.Body.String(), "<html")

    doc := parseDoc(t, rec)
    require.Equal(t, 1, doc.Find("#results").Length())
    require.Equal(t, 1, doc.Find(".forum-item").Length())
    oob := doc.Find(`#categoryInput[hx-swap-oob]`)
    require.Equal(t, "all", oob.AttrOr("value", ""))

    href := doc.Find(`.category-filter[data-category="android"]`).AttrOr("hx-get", "")
    require.Equal(t, "/items?category=android&q=spawn", href)
}

func TestDetailPageRendersItem(t *testing.T) {
    rec := get(t, newTestRouter(t), "/detail?id=1")
    require.Equal(t, http.StatusOK, rec.Code)
    doc := parseDoc(t, rec)

    require.Equal(t, "Menu Mod", strings.TrimSpace(doc.Find("h1.detail-title").Text()))
    require.Equal(t, 2, doc.Find(".detail-content .item-category").Length())
    require.Equal(t, "menu", doc.Find(".detail-description b").Text())
    require.Equal(t, "lua", doc.Find(".detail-body strong").Text())

    gallery := doc.Find(".gallery-item")
    require.Equal(t, 2, gallery.Length())
    require.Equal(t, "Preview 1 dari 2", gallery.First().AttrOr("data-caption", ""))
    require.Equal(t, "Preview 2 dari 2", gallery.Last().AttrOr("data-caption", ""))
    require.Equal(t, 1, doc.Find("dialog#imageModal").Length())

    downloads := doc.Find(".download-link")
    require.Equal(t, 2, downloads.Length())
    require.Equal(t, "archive", downloads.First().AttrOr("data-kind", ""))
    require.True(t, downloads.First().Find("i").HasClass("fa-file-archive"))
    require.Contains(t, downloads.First().Find(".download-url").Text(), "Size: 1.2 MB")
    require.Equal(t, "source", downloads.Last().AttrOr("data-kind", ""))

    var keys []string
    doc.Find(".metadata-item").Each(func(_ int, s *goquery.Selection) {
        keys = append(keys, s.AttrOr("data-key", ""))
    })
    require.Equal(t, []string{"author", "version", "released", "size"}, keys)
    require.Contains(t, doc.Find(`.metadata-item[data-key="released"]`).Text(), "15 Maret 2024")

    require.Equal(t, 0, doc.Find(".video-section").Length())
    require.Equal(t, 0, doc.Find(".no-downloads").Length())

    var sawApp bool
    doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
        var payload map[string]any
        require.NoError(t, json.Unmarshal([]byte(s.Text()), &payload))
        if payload["@type"] == "SoftwareApplication" {
            sawApp = true
            require.Equal(t, "Menu Mod", payload["name"])
            require.Equal(t, "https://scripts.example.com/detail?id=1", payload["url"])
        }
    })
    require.True(t, sawApp)
    require.Equal(t, "https://scripts.example.com/detail?id=1", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
}

func TestDetailPageOptionalSections(t *testing.T) {
    h := newTestRouter(t)

    doc := parseDoc(t, get(t, h, "/detail.html?id=2"))
    require.Equal(t, 1, doc.Find(".video-tutorial").Length())
    require.Equal(t, 0, doc.Find(".video-preview").Length())
    require.Equal(t, 0, doc.Find(".preview-section").Length())
    require.Equal(t, 0, doc.Find(".metadata-section").Length())

    doc = parseDoc(t, get(t, h, "/detail?id=3"))
    require.Equal(t, 1, doc.Find(".no-downloads").Length())
    require.Contains(t, doc.Find(".no-downloads").Text(), "Tidak ada file yang tersedia untuk diunduh")
    require.Equal(t, "Moon Loader", strings.TrimSpace(doc.Find(".detail-content .item-category").Text()))
}

func TestDetailPageErrors(t *testing.T) {
    h := newTestRouter(t)

    tests := []struct {
        target string
        want   string
    }{
        {target: "/detail", want: "ID script tidak ditemukan atau tidak valid"},
        {target: "/detail?id=abc", want: "ID script tidak ditemukan atau tidak valid"},
        {target: "/detail?id=0", want: "ID script tidak ditemukan atau tidak valid"},
        {target: "/detail?id=-4", want: "ID script tidak ditemukan atau tidak valid"},
        {target: "/detail?id=99", want: "Script tidak ditemukan"},
    }
    for _, tt := range tests {
        t.Run(tt.target, func(t *testing.T) {
            rec := get(t, h, tt.target)
            require.Equal(t, http.StatusNotFound, rec.Code)
            doc := parseDoc(t, rec)
            panel := doc.Find(".error-message")
            require.Equal(t, 1, panel.Length())
            require.Equal(t, tt.want, strings.TrimSpace(panel.Find("p").Text()))
            require.Equal(t, "/", panel.Find("a.back-button").AttrOr("href", ""))
            require.Equal(t, 0, doc.Find(".detail-content").Length())
        })
    }
}

func TestLoadErrorState(t *testing.T) {
    h := newTestApp(t, filepath.Join(t.TempDir(), "missing.json")).routes()

    rec := get(t, h, "/?q=menu")
    require.Equal(t, http.StatusServiceUnavailable, rec.Code)
    doc := parseDoc(t, rec)
    require.Contains(t, doc.Find(".error-message h2").Text(), "Gagal memuat data")
    require.Equal(t, 0, doc.Find(".forum-item").Length())
    require.Equal(t, 0, doc.Find(".no-results").Length())

    rec = get(t, h, "/detail?id=1")
    require.Equal(t, http.StatusServiceUnavailable, rec.Code)
    require.Contains(t, parseDoc(t, rec).Find(".error-message p").Text(), "Gagal memuat data. Silakan periksa file data.json")

    rec = get(t, h, "/items")
    require.Equal(t, http.StatusServiceUnavailable, rec.Code)
    require.Equal(t, 1, parseDoc(t, rec).Find("#results .error-message").Length())

    rec = get(t, h, "/data.json")
    require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestEnglishLocale(t *testing.T) {
    h := newTestRouter(t)
    rec := get(t, h, "/", func(r *http.Request) {
        r.Header.Set("Accept-Language", "en-GB,en;q=0.8")
    })
    require.Equal(t, "en", rec.Header().Get("Content-Language"))
    doc := parseDoc(t, rec)
    require.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
    require.Equal(t, "All Scripts", strings.TrimSpace(doc.Find(".category-filter").First().Text()))
    require.Contains(t, doc.Find(`.forum-item[data-id="1"] .meta-date`).Text(), "Mar 15, 2024")

    doc = parseDoc(t, get(t, h, "/detail?id=1&hl=en"))
    require.Contains(t, doc.Find(`.metadata-item[data-key="released"]`).Text(), "March 15, 2024")
    require.Equal(t, "Preview 1 of 2", doc.Find(".gallery-item").First().AttrOr("data-caption", ""))
}

func TestDarkModeCookie(t *testing.T) {
    h := newTestRouter(t)
    doc := parseDoc(t, get(t, h, "/"))
    require.False(t, doc.Find("body").HasClass("dark-mode"))

    doc = parseDoc(t, get(t, h, "/", func(r *http.Request) {
        r.AddCookie(&http.Cookie{Name: "darkMode", Value: "enabled"})
    }))
    require.True(t, doc.Find("body").HasClass("dark-mode"))
}

func TestDataJSON(t *testing.T) {
    rec := get(t, newTestRouter(t), "/data.json")
    require.Equal(t, http.StatusOK, rec.Code)
    var doc struct {
        ForumItems []struct {
            ID    int    `json:"id"`
            Title string `json:"title"`
        } `json:"forumItems"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
    require.Len(t, doc.ForumItems, 3)
    require.Equal(t, "Car Spawner", doc.ForumItems[1].Title)
}

func TestUnknownPathRendersNotFound(t *testing.T) {
    rec := get(t, newTestRouter(t), "/nope")
    require.Equal(t, http.StatusNotFound, rec.Code)
    require.Contains(t, parseDoc(t, rec).Find(".error-message p").Text(), "Halaman tidak ditemukan")
}

func TestStaticAssets(t *testing.T) {
    h := newTestRouter(t)
    rec := get(t, h, "/assets/js/app.js")
    require.Equal(t, http.StatusOK, rec.Code)
    require.NotEmpty(t, rec.Header().Get("ETag"))

    rec = get(t, h, "/images/default.jpg")
    require.Equal(t, http.StatusOK, rec.Code)
}

func TestFileKindOf(t *testing.T) {
    tests := map[string]FileKind{
        "https://x.test/a.unitypackage":  KindPackage,
        "https://x.test/a.ZIP":           KindArchive,
        "https://x.test/a.tar.gz":        KindArchive,
        "https://x.test/a.7z?dl=1":       KindArchive,
        "https://x.test/manual.pdf":      KindDocument,
        "https://x.test/notes.txt":       KindDocument,
        "https://x.test/setup.exe":       KindExecutable,
        "https://x.test/game.apk":        KindExecutable,
        "https://x.test/hook.asi":        KindLibrary,
        "https://x.test/lib.dll":         KindLibrary,
        "https://x.test/main.lua":        KindSource,
        "https://x.test/Program.cs":      KindSource,
        "https://x.test/cs/readme":       KindGeneric,
        "https://x.test/file.cshtml":     KindGeneric,
        "https://x.test/download?id=zip": KindGeneric,
    }
    for url, want := range tests {
        require.Equal(t, want, fileKindOf(url), url)
    }
    require.Equal(t, "fa-file-download", KindGeneric.Icon())
    require.Equal(t, "fa-cube", KindPackage.Icon())
}

func TestRunCheckPrintsStats(t *testing.T) {
    cfg := config.Config{
        Catalog: config.CatalogConfig{
            Source:         fixture,
            CategoriesFile: "../../config/categories.yaml",
            FetchTimeout:   1e9,
        },
    }
    var out bytes.Buffer
    require.NoError(t, runCheck(context.Background(), cfg, &out))
    s := out.String()
    require.Contains(t, s, "items:      3")
    require.Contains(t, s, "categories: 4")
    require.Contains(t, s, "downloads:  3")
    require.Contains(t, s, "monet (Monetloader, #60A5FA)")
    require.Contains(t, s, "moon-loader (Moon Loader, #4285F4)")

    cfg.Catalog.Source = filepath.Join(t.TempDir(), "missing.json")
    require.Error(t, runCheck(context.Background(), cfg, &out))
}
