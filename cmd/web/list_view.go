package main

import (
    "net/url"
    "strings"

    "scriptforum.org/catalog-web/internal/catalog"
    "scriptforum.org/catalog-web/internal/category"
    "scriptforum.org/catalog-web/internal/format"
    "scriptforum.org/catalog-web/internal/richtext"
)

const (
    defaultVersion   = "v1.0"
    excerptRunes     = 160
    placeholderImage = "/images/default.jpg"
)

// ListView aggregates the list page and the /items fragment.
type ListView struct {
    Lang     string
    Term     string
    Category string
    Filters  []FilterButton
    Stats    StatsView
    Cards    []ItemCard
    Empty    bool
    // PageURL is the full-page URL for the current filter state (HX-Push-Url).
    PageURL string
}

// StatsView is the header counter strip.
type StatsView struct {
    Items      int
    Categories int
    Downloads  int
}

// FilterButton is one category filter in the bar. The "all" button comes first.
type FilterButton struct {
    Tag     string
    Label   string
    Href    string
    FragURL string
    Active  bool
}

// Chip is a colored category label; Background is Color with a 0x20 alpha suffix.
type Chip struct {
    Tag        string
    Name       string
    Color      string
    Background string
}

// ItemCard is one entry of the list.
type ItemCard struct {
    ID          int
    Href        string
    Title       string
    Excerpt     string
    Thumbnail   string
    Placeholder string
    Chips       []Chip
    Version     string
    Files       int
    FileSize    string
    ReleaseDate string
    HasVideo    bool
}

// listQuery reads the filter state from the request query.
func listQuery(q url.Values) (cat, term string) {
    cat = strings.TrimSpace(q.Get("category"))
    if cat == "" {
        cat = category.All
    }
    return cat, q.Get("q")
}

// listURL encodes a filter state back into a list page URL. Defaults are omitted.
func listURL(cat, term string) string {
    v := url.Values{}
    if strings.TrimSpace(term) != "" {
        v.Set("q", term)
    }
    if cat != "" && cat != category.All {
        v.Set("category", cat)
    }
    if len(v) == 0 {
        return "/"
    }
    return "/?" + v.Encode()
}

// fragURL maps a list page URL onto the /items fragment endpoint.
func fragURL(pageURL string) string {
    return "/items" + strings.TrimPrefix(pageURL, "/")
}

// buildListView filters the snapshot and turns the result into cards.
func (a *app) buildListView(cat *catalog.Catalog, lang string, q url.Values) ListView {
    active, term := listQuery(q)
    items := cat.Items()
    st := cat.Stats()

    view := ListView{
        Lang:     lang,
        Term:     term,
        Category: active,
        Stats:    StatsView{Items: st.Items, Categories: st.Categories, Downloads: st.Downloads},
        PageURL:  listURL(active, term),
    }

    for _, tag := range category.Index(items) {
        label := a.categories.Name(tag)
        if tag == category.All {
            label = a.i18n.T(lang, "category.all")
        }
        view.Filters = append(view.Filters, FilterButton{
            Tag:     tag,
            Label:   label,
            Href:    listURL(tag, term),
            FragURL: fragURL(listURL(tag, term)),
            Active:  tag == active,
        })
    }

    filtered := catalog.Filter(items, active, term)
    view.Empty = len(filtered) == 0
    view.Cards = make([]ItemCard, 0, len(filtered))
    for _, it := range filtered {
        view.Cards = append(view.Cards, a.itemCard(it, lang))
    }
    return view
}

func (a *app) itemCard(it catalog.Item, lang string) ItemCard {
    card := ItemCard{
        ID:          it.ID,
        Href:        detailURL(it.ID),
        Title:       it.Title,
        Excerpt:     richtext.Excerpt(it.Description, excerptRunes),
        Thumbnail:   it.Thumbnail(),
        Placeholder: a.placeholder(),
        Chips:       a.chips(it.Categories),
        Version:     it.Version,
        Files:       len(it.DownloadLinks),
        FileSize:    it.FileSize,
        ReleaseDate: format.Date(it.ReleaseDate, lang, format.Short),
        HasVideo:    it.HasTutorialVideo(),
    }
    if card.Thumbnail == "" {
        card.Thumbnail = card.Placeholder
    }
    if strings.TrimSpace(card.Version) == "" {
        card.Version = defaultVersion
    }
    return card
}

func (a *app) chips(tags []string) []Chip {
    if len(tags) == 0 {
        return nil
    }
    out := make([]Chip, 0, len(tags))
    for _, tag := range tags {
        color := a.categories.Color(tag)
        out = append(out, Chip{
            Tag:        tag,
            Name:       a.categories.Name(tag),
            Color:      color,
            Background: color + "20",
        })
    }
    return out
}

func (a *app) placeholder() string {
    if a.cfg.Web.PlaceholderImage != "" {
        return a.cfg.Web.PlaceholderImage
    }
    return placeholderImage
}
