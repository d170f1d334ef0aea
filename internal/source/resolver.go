package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

var ErrEmptyRef = errors.New("empty asset reference")

// LocalPath strips the file:// scheme the backend prefixes local paths with.
func LocalPath(ref string) string {
	return strings.TrimPrefix(ref, "file://")
}

// splitPDFRef recognises "doc.pdf#page=N" (1-based).
func splitPDFRef(ref string) (path string, index int, ok bool) {
	i := strings.LastIndex(ref, "#page=")
	if i < 0 || !strings.HasSuffix(strings.ToLower(ref[:i]), ".pdf") {
		return "", 0, false
	}
	n, err := strconv.Atoi(ref[i+len("#page="):])
	if err != nil || n < 1 {
		return "", 0, false
	}
	return ref[:i], n - 1, true
}

// Resolver loads opaque image references: local files, file:// URLs,
// http(s) URLs and PDF pages. Decoded images are cached for the session and
// concurrent requests for the same reference share a single load.
type Resolver struct {
	DPI    int
	Client *http.Client

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]image.Image
	pdfs  map[string]*FitzPDFSource
}

func NewResolver(dpi int) *Resolver {
	return &Resolver{
		DPI:   dpi,
		cache: make(map[string]image.Image),
		pdfs:  make(map[string]*FitzPDFSource),
	}
}

// Load returns the image behind ref.
func (r *Resolver) Load(ctx context.Context, ref string) (image.Image, error) {
	if ref == "" {
		return nil, ErrEmptyRef
	}

	r.mu.RLock()
	img, ok := r.cache[ref]
	r.mu.RUnlock()
	if ok {
		return img, nil
	}

	v, err, _ := r.group.Do(ref, func() (interface{}, error) {
		img, err := r.load(ctx, ref)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.cache[ref] = img
		r.mu.Unlock()
		return img, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load asset %q: %w", ref, err)
	}
	return v.(image.Image), nil
}

func (r *Resolver) load(ctx context.Context, ref string) (image.Image, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return r.fetch(ctx, ref)
	}

	path := LocalPath(ref)
	if pdfPath, index, ok := splitPDFRef(path); ok {
		return r.renderPDFPage(pdfPath, index)
	}
	return decodeFile(path)
}

func (r *Resolver) fetch(ctx context.Context, url string) (image.Image, error) {
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	return img, err
}

func (r *Resolver) renderPDFPage(path string, index int) (image.Image, error) {
	r.mu.Lock()
	doc, ok := r.pdfs[path]
	if !ok {
		var err error
		doc, err = NewFitzPDFSource(path)
		if err != nil {
			r.mu.Unlock()
			return nil, err
		}
		r.pdfs[path] = doc
	}
	r.mu.Unlock()

	if index >= doc.PageCount() {
		return nil, fmt.Errorf("page %d out of range (document has %d)", index+1, doc.PageCount())
	}
	dpi := r.DPI
	if dpi <= 0 {
		dpi = 150
	}
	return doc.RenderPage(index, dpi)
}

// Close releases open PDF documents.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for path, doc := range r.pdfs {
		if err := doc.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", path, err))
		}
		delete(r.pdfs, path)
	}
	return errors.Join(errs...)
}
