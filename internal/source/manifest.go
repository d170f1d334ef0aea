package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/pdfstudio/internal/timeline"
)

// Manifest is the page list returned by the processing backend for one job.
type Manifest struct {
	JobID      string         `json:"job_id" yaml:"job_id"`
	Status     string         `json:"status,omitempty" yaml:"status,omitempty"`
	Pages      []ManifestPage `json:"pages" yaml:"pages"`
	TotalPages int            `json:"total_pages,omitempty" yaml:"total_pages,omitempty"`
}

// ManifestPage mirrors the backend's per-page record.
type ManifestPage struct {
	PageNum           int      `json:"page_num" yaml:"page_num"`
	Title             string   `json:"title,omitempty" yaml:"title,omitempty"`
	TeacherScript     string   `json:"teacher_script,omitempty" yaml:"teacher_script,omitempty"`
	PDFImagePath      string   `json:"pdf_image_path,omitempty" yaml:"pdf_image_path,omitempty"`
	UnsplashImagePath string   `json:"unsplash_image_path,omitempty" yaml:"unsplash_image_path,omitempty"`
	AudioPath         string   `json:"audio_path,omitempty" yaml:"audio_path,omitempty"`
	Duration          float64  `json:"duration" yaml:"duration"`
	Images            []string `json:"images,omitempty" yaml:"images,omitempty"`
}

// Assets converts the manifest into timeline input. The stock photo becomes the
// background; the rendered PDF page and any extra images go on the content card.
func (m *Manifest) Assets() []timeline.PageAsset {
	if m.TotalPages != 0 && m.TotalPages != len(m.Pages) {
		log.Printf("[!] Манифест %s: total_pages=%d, а страниц %d", m.JobID, m.TotalPages, len(m.Pages))
	}

	assets := make([]timeline.PageAsset, len(m.Pages))
	for i, p := range m.Pages {
		var content []string
		if p.PDFImagePath != "" {
			content = append(content, p.PDFImagePath)
		}
		content = append(content, p.Images...)

		assets[i] = timeline.PageAsset{
			PageNumber:         p.PageNum,
			Title:              p.Title,
			NarrationText:      p.TeacherScript,
			BackgroundImageRef: p.UnsplashImagePath,
			ContentImageRefs:   content,
			AudioRef:           p.AudioPath,
			DurationSeconds:    p.Duration,
		}
	}
	return assets
}

// DecodeManifest parses JSON, or YAML when yamlFormat is set.
func DecodeManifest(r io.Reader, yamlFormat bool) (*Manifest, error) {
	var m Manifest
	if yamlFormat {
		if err := yaml.NewDecoder(r).Decode(&m); err != nil {
			return nil, fmt.Errorf("decode yaml manifest: %w", err)
		}
		return &m, nil
	}
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode json manifest: %w", err)
	}
	return &m, nil
}

// LoadManifest reads a manifest file; .yaml/.yml files are parsed as YAML, anything else as JSON.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	return DecodeManifest(f, ext == ".yaml" || ext == ".yml")
}

// FetchManifest downloads the page list of a job from the backend API.
func FetchManifest(ctx context.Context, client *http.Client, apiBase, jobID string) (*Manifest, error) {
	if client == nil {
		client = http.DefaultClient
	}
	endpoint := strings.TrimRight(apiBase, "/") + "/api/video/data/" + url.PathEscape(jobID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch video data %s: %w", jobID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch video data %s: status %d: %s", jobID, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	m, err := DecodeManifest(resp.Body, false)
	if err != nil {
		return nil, err
	}
	if m.JobID == "" {
		m.JobID = jobID
	}
	return m, nil
}

// FillDurations asks probe for the length of each page's audio when the page
// carries no duration. Pages whose probe fails are left untouched; the
// timeline builder rejects them with a page-specific error.
func FillDurations(pages []timeline.PageAsset, probe func(ref string) (float64, error)) int {
	filled := 0
	for i := range pages {
		if pages[i].DurationSeconds > 0 || pages[i].AudioRef == "" {
			continue
		}
		d, err := probe(LocalPath(pages[i].AudioRef))
		if err != nil {
			log.Printf("[!] Не удалось получить длительность аудио страницы %d: %v", pages[i].PageNumber, err)
			continue
		}
		pages[i].DurationSeconds = d
		filled++
	}
	return filled
}
