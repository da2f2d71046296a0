package catalog

import "strings"

// AllCategories is the synthetic tag that matches every item.
const AllCategories = "all"

// Query combines a category selector with a free-text term.
type Query struct {
	Category string
	Term     string
	// MatchAuthor extends term matching to the author field.
	MatchAuthor bool
}

// Filter applies the list page query: category plus a term matched against title,
// description, tags, and author.
func Filter(items []Item, category, term string) []Item {
	return Query{Category: category, Term: term, MatchAuthor: true}.Apply(items)
}

// Apply returns the matching items in input order. Both predicates must hold.
// The input slice is never modified.
func (q Query) Apply(items []Item) []Item {
	category := strings.TrimSpace(q.Category)
	term := strings.ToLower(q.Term)
	if strings.TrimSpace(term) == "" {
		term = ""
	}

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if category != "" && category != AllCategories && !it.HasCategory(category) {
			continue
		}
		if term != "" && !q.matchesTerm(it, term) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// IsZero reports whether the query passes everything.
func (q Query) IsZero() bool {
	c := strings.TrimSpace(q.Category)
	return (c == "" || c == AllCategories) && strings.TrimSpace(q.Term) == ""
}

func (q Query) matchesTerm(it Item, term string) bool {
	if strings.Contains(strings.ToLower(it.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Description), term) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return q.MatchAuthor && it.Author != "" && strings.Contains(strings.ToLower(it.Author), term)
}
