package category

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"scriptforum.org/catalog-web/internal/catalog"
)

// All is the synthetic universal tag shown first in the filter bar.
const All = catalog.AllCategories

// DefaultColor is used for tags without a configured color.
const DefaultColor = "#4285F4"

// Style is the display configuration of one category tag.
type Style struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Registry maps category tags to their display style.
type Registry struct {
	styles       map[string]Style
	defaultColor string
}

type registryFile struct {
	DefaultColor string           `yaml:"default_color"`
	Categories   map[string]Style `yaml:"categories"`
}

var builtin = map[string]Style{
	"monet":   {Name: "Monetloader", Color: "#60A5FA"},
	"moon":    {Name: "Moonloader", Color: "#34D399"},
	"android": {Name: "Android", Color: "#7C3AED"},
	"pc":      {Name: "PC", Color: "#FBBF24"},
	"cleo":    {Name: "Cleo", Color: "#F87171"},
}

// NewRegistry builds a registry from styles. An empty defaultColor means DefaultColor.
func NewRegistry(styles map[string]Style, defaultColor string) *Registry {
	r := &Registry{styles: make(map[string]Style, len(styles)), defaultColor: strings.TrimSpace(defaultColor)}
	for tag, st := range styles {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		r.styles[tag] = Style{Name: strings.TrimSpace(st.Name), Color: strings.TrimSpace(st.Color)}
	}
	if r.defaultColor == "" {
		r.defaultColor = DefaultColor
	}
	return r
}

// Defaults returns the registry of the built-in loader categories.
func Defaults() *Registry {
	return NewRegistry(builtin, DefaultColor)
}

// LoadFile reads a YAML registry. A missing file yields the defaults.
func LoadFile(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return Defaults(), nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("category: read %s: %w", path, err)
	}
	var f registryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("category: parse %s: %w", path, err)
	}
	return NewRegistry(f.Categories, f.DefaultColor), nil
}

// Name returns the display name for tag.
func (r *Registry) Name(tag string) string {
	if r != nil {
		if st, ok := r.styles[tag]; ok && st.Name != "" {
			return st.Name
		}
	}
	return FormatName(tag)
}

// Color returns the chip color for tag.
func (r *Registry) Color(tag string) string {
	if r == nil {
		return DefaultColor
	}
	if st, ok := r.styles[tag]; ok && st.Color != "" {
		return st.Color
	}
	return r.defaultColor
}

// Len returns the number of configured tags.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.styles)
}

// FormatName renders an unknown tag: hyphens become spaces and each word gets an
// upper-case first letter, the rest untouched.
func FormatName(tag string) string {
	parts := strings.Split(tag, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = toUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func toUpper(r rune) rune {
	return []rune(strings.ToUpper(string(r)))[0]
}

// Index returns All followed by every distinct tag in first-seen order.
func Index(items []catalog.Item) []string {
	seen := map[string]struct{}{}
	out := []string{All}
	for _, it := range items {
		for _, tag := range it.Categories {
			if tag == All {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
