package catalog

import "strings"

// Item is one downloadable script as described by the catalog document.
type Item struct {
	ID            int            `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Content       string         `json:"content"`
	Categories    []string       `json:"categories,omitempty"`
	Images        []string       `json:"images,omitempty"`
	DownloadLinks []DownloadLink `json:"downloadLinks,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	Author        string         `json:"author,omitempty"`
	Version       string         `json:"version,omitempty"`
	ReleaseDate   string         `json:"releaseDate,omitempty"`
	License       string         `json:"license,omitempty"`
	FileSize      string         `json:"fileSize,omitempty"`
	Requirements  string         `json:"requirements,omitempty"`
	PreviewLink   string         `json:"previewLink,omitempty"`
	TutorialLink  string         `json:"tutorialLink,omitempty"`
	// TikTokURL is accepted from older documents and counts as a tutorial video.
	TikTokURL string `json:"tiktokUrl,omitempty"`
}

// DownloadLink is a single downloadable file attached to an item.
type DownloadLink struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Size string `json:"size,omitempty"`
}

// Thumbnail returns the first image, or an empty string when the item has none.
func (it Item) Thumbnail() string {
	for _, img := range it.Images {
		if strings.TrimSpace(img) != "" {
			return img
		}
	}
	return ""
}

// HasCategory reports whether tag is one of the item's categories (exact match).
func (it Item) HasCategory(tag string) bool {
	for _, c := range it.Categories {
		if c == tag {
			return true
		}
	}
	return false
}

// HasTutorialVideo reports whether a tutorial video link is present.
func (it Item) HasTutorialVideo() bool {
	return strings.TrimSpace(it.TutorialLink) != "" || strings.TrimSpace(it.TikTokURL) != ""
}

// TutorialURL returns the tutorial link, falling back to the legacy TikTok URL.
func (it Item) TutorialURL() string {
	if u := strings.TrimSpace(it.TutorialLink); u != "" {
		return u
	}
	return strings.TrimSpace(it.TikTokURL)
}

// HasVideos reports whether the detail page should show the video section.
func (it Item) HasVideos() bool {
	return strings.TrimSpace(it.PreviewLink) != "" || it.HasTutorialVideo()
}

func cloneItem(it Item) Item {
	cp := it
	if it.Categories != nil {
		cp.Categories = append([]string(nil), it.Categories...)
	}
	if it.Images != nil {
		cp.Images = append([]string(nil), it.Images...)
	}
	if it.Tags != nil {
		cp.Tags = append([]string(nil), it.Tags...)
	}
	if it.DownloadLinks != nil {
		cp.DownloadLinks = append([]DownloadLink(nil), it.DownloadLinks...)
	}
	return cp
}
