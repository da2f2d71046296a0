package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultFetchTimeout = 10 * time.Second
	// maxDocumentBytes caps remote payloads.
	maxDocumentBytes = 32 << 20
)

var errMissingItems = errors.New(`document has no "forumItems" array`)

// Loader fetches the catalog document from a local path or an http(s) URL.
type Loader struct {
	source string
	http   *http.Client
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient overrides the client used for remote sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) {
		if c != nil {
			l.http = c
		}
	}
}

// WithFetchTimeout sets the timeout of the default HTTP client.
func WithFetchTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.http = &http.Client{Timeout: d}
		}
	}
}

// NewLoader constructs a Loader for source.
func NewLoader(source string, opts ...LoaderOption) *Loader {
	l := &Loader{
		source: strings.TrimSpace(source),
		http:   &http.Client{Timeout: defaultFetchTimeout},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the configured source.
func (l *Loader) Source() string { return l.source }

// IsRemote reports whether the source is fetched over HTTP.
func (l *Loader) IsRemote() bool { return isRemote(l.source) }

// Load fetches and parses the document once. Any failure is a *LoadError.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	var (
		raw []byte
		err error
	)
	if l.IsRemote() {
		raw, err = l.fetchRemote(ctx)
	} else {
		raw, err = os.ReadFile(l.source)
	}
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &LoadError{Source: l.source, Err: err}
	}
	items, err := Decode(raw)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}
	return New(items, l.source), nil
}

func (l *Loader) fetchRemote(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{Source: l.source, Status: resp.StatusCode}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
}

// Decode parses a catalog document of the form {"forumItems": [...]}.
func Decode(raw []byte) ([]Item, error) {
	var doc struct {
		ForumItems *[]Item `json:"forumItems"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc.ForumItems == nil {
		return nil, errMissingItems
	}
	return *doc.ForumItems, nil
}

// Encode writes items back into the document shape.
func Encode(w io.Writer, items []Item) error {
	enc := json.NewEncoder(w)
	return enc.Encode(struct {
		ForumItems []Item `json:"forumItems"`
	}{ForumItems: items})
}

func isRemote(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
