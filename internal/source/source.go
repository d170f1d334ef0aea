package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"github.com/ivlev/pdfstudio/internal/timeline"
)

// Source is a paged image input: a PDF document or a folder of slide images.
type Source interface {
	PageCount() int
	GetPageDimensions(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	// PageRef is an asset reference the Resolver can load the page back from.
	PageRef(index int) string
	Close() error
}

type FitzPDFSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) GetPageDimensions(index int) (float64, float64, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

// RenderPage opens its own document handle so pages can be rasterised in parallel.
func (f *FitzPDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(dpi))
}

func (f *FitzPDFSource) PageRef(index int) string {
	return fmt.Sprintf("%s#page=%d", f.path, index+1)
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}

// PagesFromSource turns every page of src into a slide without narration,
// shown on the content card for pageDuration seconds.
func PagesFromSource(src Source, pageDuration float64) []timeline.PageAsset {
	pages := make([]timeline.PageAsset, src.PageCount())
	for i := range pages {
		pages[i] = timeline.PageAsset{
			PageNumber:       i + 1,
			ContentImageRefs: []string{src.PageRef(i)},
			DurationSeconds:  pageDuration,
		}
	}
	return pages
}
