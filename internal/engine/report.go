package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/pdfstudio/internal/system"
)

// Report collects timings of one run for the performance report.
type Report struct {
	Build    string
	Input    string
	Pages    int
	Frames   int
	Stills   int
	Start    time.Time
	Timeline time.Duration
	Render   time.Duration
}

func (r *Report) Print() {
	total := time.Since(r.Start)
	fps := 0.0
	if r.Render > 0 {
		fps = float64(r.Stills) / r.Render.Seconds()
	}

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Timeline: %.3fs (%d pages, %d frames)\n"+
			"Rendering (CPU): %.2fs (%d stills)\n"+
			"Effective FPS: %.2f\n"+
			"Host: %s\n"+
			"----------------------------\n",
		r.Build, total.Seconds(), r.Timeline.Seconds(), r.Pages, r.Frames, r.Render.Seconds(), r.Stills, fps, system.Snapshot(),
	)
}

// AppendLog adds a one-line summary of the run to path.
func (r *Report) AppendLog(path string) error {
	line := fmt.Sprintf("[%s] Build: %s | Input: %s | Pages: %d | Frames: %d | Total: %.2fs | Render: %.2fs | Stills: %d\n",
		time.Now().Format("2006-01-02 15:04:05"),
		r.Build,
		filepath.Base(r.Input),
		r.Pages,
		r.Frames,
		time.Since(r.Start).Seconds(),
		r.Render.Seconds(),
		r.Stills,
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
