package main

import (
    "html/template"
    "net/url"
    "path"
    "strconv"
    "strings"

    "scriptforum.org/catalog-web/internal/catalog"
    "scriptforum.org/catalog-web/internal/format"
)

// FileKind classifies a download by its URL extension.
type FileKind string

const (
    KindPackage    FileKind = "package"
    KindArchive    FileKind = "archive"
    KindDocument   FileKind = "document"
    KindExecutable FileKind = "executable"
    KindLibrary    FileKind = "library"
    KindSource     FileKind = "source"
    KindGeneric    FileKind = "generic"
)

var extKinds = map[string]FileKind{
    ".unitypackage": KindPackage,
    ".zip":          KindArchive,
    ".rar":          KindArchive,
    ".7z":           KindArchive,
    ".tar":          KindArchive,
    ".gz":           KindArchive,
    ".pdf":          KindDocument,
    ".doc":          KindDocument,
    ".docx":         KindDocument,
    ".txt":          KindDocument,
    ".exe":          KindExecutable,
    ".msi":          KindExecutable,
    ".apk":          KindExecutable,
    ".dll":          KindLibrary,
    ".so":           KindLibrary,
    ".asi":          KindLibrary,
    ".cs":           KindSource,
    ".lua":          KindSource,
    ".js":           KindSource,
    ".py":           KindSource,
    ".cpp":          KindSource,
    ".c":            KindSource,
    ".h":            KindSource,
}

var kindIcons = map[FileKind]string{
    KindPackage:    "fa-cube",
    KindArchive:    "fa-file-archive",
    KindDocument:   "fa-file-pdf",
    KindExecutable: "fa-cogs",
    KindLibrary:    "fa-microchip",
    KindSource:     "fa-file-code",
    KindGeneric:    "fa-file-download",
}

// fileKindOf sniffs the extension of the URL path; query strings and fragments are ignored.
func fileKindOf(rawURL string) FileKind {
    p := rawURL
    if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil {
        p = u.Path
    }
    if k, ok := extKinds[strings.ToLower(path.Ext(p))]; ok {
        return k
    }
    return KindGeneric
}

// Icon returns the icon class for the kind.
func (k FileKind) Icon() string {
    if icon, ok := kindIcons[k]; ok {
        return icon
    }
    return kindIcons[KindGeneric]
}

// DetailView is the payload of the detail page.
type DetailView struct {
    Lang        string
    ID          int
    Title       string
    Chips       []Chip
    Description template.HTML
    Body        template.HTML
    Gallery     []GalleryImage
    Placeholder string
    Videos      []VideoCard
    Downloads   []DownloadView
    Meta        []MetaRow
}

// GalleryImage is one thumbnail that opens the full-screen overlay.
type GalleryImage struct {
    Src     string
    Alt     string
    Caption string
}

// VideoCard links out to a preview or tutorial video.
type VideoCard struct {
    Kind  string
    Href  string
    Title string
    Body  string
    CTA   string
    Icon  string
}

// DownloadView is one row of the download list.
type DownloadView struct {
    URL  string
    Name string
    Size string
    Kind FileKind
    Icon string
}

// MetaRow is one present metadata field.
type MetaRow struct {
    Key   string
    Label string
    Value string
    Icon  string
}

func detailURL(id int) string {
    return "/detail?id=" + strconv.Itoa(id)
}

func (a *app) buildDetailView(it catalog.Item, lang string) DetailView {
    view := DetailView{
        Lang:        lang,
        ID:          it.ID,
        Title:       it.Title,
        Chips:       a.chips(it.Categories),
        Description: a.rich.Sanitize(it.Description),
        Body:        a.rich.Render(it.Content),
        Placeholder: a.placeholder(),
    }

    total := len(it.Images)
    for i, src := range it.Images {
        view.Gallery = append(view.Gallery, GalleryImage{
            Src:     src,
            Alt:     a.i18n.Tf(lang, "gallery.alt", i+1),
            Caption: a.i18n.Tf(lang, "gallery.caption", i+1, total),
        })
    }

    if u := strings.TrimSpace(it.PreviewLink); u != "" {
        view.Videos = append(view.Videos, VideoCard{
            Kind:  "preview",
            Href:  u,
            Title: a.i18n.T(lang, "detail.preview.title"),
            Body:  a.i18n.T(lang, "detail.preview.body"),
            CTA:   a.i18n.T(lang, "detail.preview.cta"),
            Icon:  "fa-play-circle",
        })
    }
    if u := it.TutorialURL(); u != "" {
        view.Videos = append(view.Videos, VideoCard{
            Kind:  "tutorial",
            Href:  u,
            Title: a.i18n.T(lang, "detail.tutorial.title"),
            Body:  a.i18n.T(lang, "detail.tutorial.body"),
            CTA:   a.i18n.T(lang, "detail.tutorial.cta"),
            Icon:  "fa-graduation-cap",
        })
    }

    for _, dl := range it.DownloadLinks {
        kind := fileKindOf(dl.URL)
        name := dl.Name
        if strings.TrimSpace(name) == "" {
            name = path.Base(dl.URL)
        }
        view.Downloads = append(view.Downloads, DownloadView{
            URL:  dl.URL,
            Name: name,
            Size: dl.Size,
            Kind: kind,
            Icon: kind.Icon(),
        })
    }

    add := func(key, value, icon string) {
        if strings.TrimSpace(value) == "" {
            return
        }
        view.Meta = append(view.Meta, MetaRow{Key: key, Label: a.i18n.T(lang, "meta."+key), Value: value, Icon: icon})
    }
    add("author", it.Author, "fa-user")
    add("version", it.Version, "fa-tag")
    add("released", format.Date(it.ReleaseDate, lang, format.Long), "fa-calendar")
    add("license", it.License, "fa-balance-scale")
    add("size", it.FileSize, "fa-hdd")
    add("requirements", it.Requirements, "fa-cogs")
    return view
}
