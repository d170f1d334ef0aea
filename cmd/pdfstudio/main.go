package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ivlev/pdfstudio/internal/config"
	"github.com/ivlev/pdfstudio/internal/engine"
	"github.com/ivlev/pdfstudio/internal/history"
	"github.com/ivlev/pdfstudio/internal/renderer"
	"github.com/ivlev/pdfstudio/internal/source"
	"github.com/ivlev/pdfstudio/internal/storyboard"
	"github.com/ivlev/pdfstudio/internal/system"
	"github.com/ivlev/pdfstudio/internal/timeline"
)

var buildVersion = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"input/pages", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	configPtr := flag.String("config", "", "YAML-файл проекта (флаги командной строки имеют приоритет)")
	inputPtr := flag.String("input", "", "Манифест страниц (.json/.yaml), PDF или папка с изображениями (по умолчанию: самый свежий файл в input/pages/)")
	jobPtr := flag.String("job", "", "ID задания на бэкенде: страницы загружаются из {api}/api/video/data/{job}")
	apiPtr := flag.String("api", "http://localhost:8000", "Адрес бэкенда")
	outputPtr := flag.String("output", "output", "Папка для результатов")
	pageDurationPtr := flag.Float64("page-duration", 5, "Длительность страницы PDF/изображения в секундах (для входов без манифеста)")
	widthPtr := flag.Int("width", 1920, "Ширина")
	heightPtr := flag.Int("height", 1080, "Высота")
	fpsPtr := flag.Int("fps", 30, "FPS")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Потоки")
	dpiPtr := flag.Int("dpi", 150, "DPI для страниц PDF")
	presetPtr := flag.String("preset", "", "Пресет формата: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	captionCharsPtr := flag.Int("caption-chars", 30, "Максимальная длина субтитра в символах")
	shareURLPtr := flag.String("share-url", "", "Ссылка для QR-кода в углу кадра")
	probeAudioPtr := flag.Bool("probe-audio", false, "Определять длительность страниц без duration по аудио (ffprobe)")
	historyPtr := flag.String("history", "", "SQLite-файл истории заданий")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")

	framePtr := flag.Int("frame", -1, "Сохранить один кадр в PNG")
	stillsPtr := flag.Bool("stills", false, "Сохранить раскадровку (каждый -step кадр) в PNG")
	stepPtr := flag.Int("step", 30, "Шаг раскадровки в кадрах")
	srtPtr := flag.Bool("srt", false, "Сохранить субтитры в формате SRT")
	storyboardPtr := flag.Bool("storyboard", false, "Сохранить раскладку таймлайна в YAML")
	verifyPtr := flag.String("verify", "", "Сравнить таймлайн с сохраненной раскладкой YAML (\"latest\" - самая свежая)")
	previewPtr := flag.Bool("preview", false, "Проиграть таймлайн в терминале в реальном времени")
	listPtr := flag.Int("list", 0, "Показать N последних заданий из истории и выйти")

	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := &config.Config{}
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка конфигурации: %v", err)
		}
		cfg = loaded
		fmt.Printf("[*] Конфигурация: %s\n", *configPtr)
	}

	apply := func(name string, fn func()) {
		if set[name] || *configPtr == "" {
			fn()
		}
	}
	apply("input", func() { cfg.InputPath = *inputPtr })
	apply("job", func() { cfg.JobID = *jobPtr })
	apply("api", func() { cfg.APIBase = *apiPtr })
	apply("output", func() { cfg.OutputDir = *outputPtr })
	apply("width", func() { cfg.Width = *widthPtr })
	apply("height", func() { cfg.Height = *heightPtr })
	apply("fps", func() { cfg.FPS = *fpsPtr })
	apply("workers", func() { cfg.Workers = *workersPtr })
	apply("dpi", func() { cfg.DPI = *dpiPtr })
	apply("preset", func() { cfg.Preset = *presetPtr })
	apply("caption-chars", func() { cfg.CaptionChars = *captionCharsPtr })
	apply("share-url", func() { cfg.ShareURL = *shareURLPtr })
	apply("probe-audio", func() { cfg.ProbeAudio = *probeAudioPtr })
	apply("history", func() { cfg.HistoryDB = *historyPtr })
	apply("stats", func() { cfg.ShowStats = *statsPtr })
	if set["step"] {
		cfg.StillStep = *stepPtr
	}
	cfg.BuildVersion = buildVersion

	if err := cfg.ApplyPreset(); err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *listPtr > 0 {
		if err := listHistory(ctx, cfg.HistoryDB, *listPtr); err != nil {
			log.Fatalf("[-] Ошибка истории: %v", err)
		}
		return
	}

	report := &engine.Report{Build: cfg.BuildVersion, Start: time.Now()}

	pages, err := loadPages(ctx, cfg, *pageDurationPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка загрузки страниц: %v", err)
	}

	if cfg.ProbeAudio {
		n := source.FillDurations(pages, func(path string) (float64, error) {
			return system.GetAudioDuration(ctx, path)
		})
		if n > 0 {
			fmt.Printf("[*] Длительность %d страниц определена по аудио\n", n)
		}
	}

	timelineStart := time.Now()
	comp, err := engine.NewComposition(cfg, pages)
	if err != nil {
		log.Fatalf("[-] Ошибка таймлайна: %v", err)
	}
	report.Timeline = time.Since(timelineStart)
	report.Input = cfg.InputPath
	report.Pages = len(pages)
	report.Frames = comp.TotalFrames()

	tl := comp.Timeline()
	fmt.Println("--- [PROJECT: TIMELINE ENGINE] ---")
	fmt.Printf("[*] Источник: %s | Страниц: %d\n", cfg.InputPath, len(tl.Entries))
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Кадров: %d (%.2fs)\n", cfg.Width, cfg.Height, cfg.FPS, tl.TotalFrames, tl.Duration())
	for _, e := range tl.Entries {
		fmt.Printf("    стр. %-3d кадры %6d-%-6d %s\n", e.Page.PageNumber, e.StartFrame, e.EndFrame()-1, e.Page.Title)
	}
	fmt.Println("-----------------------------")

	resolver := source.NewResolver(cfg.DPI)
	resolver.Client = &http.Client{Timeout: time.Duration(cfg.FetchTimeout * float64(time.Second))}
	defer resolver.Close()

	raster, err := renderer.NewRasterizer(cfg.Width, cfg.Height, resolver, cfg.ShareURL)
	if err != nil {
		log.Fatalf("[-] Ошибка QR-кода: %v", err)
	}

	outputs := []string{}

	if *framePtr >= 0 {
		path := filepath.Join(cfg.OutputDir, fmt.Sprintf("frame_%06d.png", *framePtr))
		if err := comp.RenderStill(ctx, raster, *framePtr, path); err != nil {
			log.Fatalf("[-] Ошибка рендеринга кадра: %v", err)
		}
		fmt.Printf("[+++] Кадр сохранен: %s\n", path)
		outputs = append(outputs, path)
	}

	if *stillsPtr {
		dir := filepath.Join(cfg.OutputDir, fmt.Sprintf("stills_%s", time.Now().Format("2006-01-02_15-04-05")))
		renderStart := time.Now()
		paths, err := comp.ExportStills(ctx, raster, dir, cfg.StillStep)
		if err != nil {
			log.Fatalf("[-] Ошибка раскадровки: %v", err)
		}
		report.Render = time.Since(renderStart)
		report.Stills = len(paths)
		fmt.Printf("[+++] Раскадровка: %d кадров в %s\n", len(paths), dir)
		outputs = append(outputs, dir)
	}

	if *srtPtr {
		path := filepath.Join(cfg.OutputDir, outputName(cfg, ".srt"))
		if err := comp.WriteSRT(path); err != nil {
			log.Fatalf("[-] %v", err)
		}
		fmt.Printf("[+++] Субтитры сохранены: %s\n", path)
		outputs = append(outputs, path)
	}

	sb := storyboard.FromComposition(comp)
	if *storyboardPtr {
		path := storyboard.GeneratePath(cfg.OutputDir)
		if err := storyboard.Write(sb, path); err != nil {
			log.Fatalf("[-] Ошибка записи раскладки: %v", err)
		}
		fmt.Printf("[+++] Раскладка сохранена: %s\n", path)
		outputs = append(outputs, path)
	}

	if *verifyPtr != "" {
		path := *verifyPtr
		if path == "latest" {
			path, err = storyboard.FindLatest(cfg.OutputDir)
			if err != nil {
				log.Fatalf("[-] Ошибка: %v", err)
			}
		}
		saved, err := storyboard.Read(path)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения раскладки: %v", err)
		}
		if diffs := storyboard.Compare(saved, sb); len(diffs) > 0 {
			for _, d := range diffs {
				log.Printf("[!] %s", d)
			}
			log.Fatalf("[-] Таймлайн отличается от %s (%d расхождений)", path, len(diffs))
		}
		fmt.Printf("[+++] Таймлайн совпадает с %s\n", path)
	}

	if *previewPtr {
		preview(ctx, comp)
	}

	if cfg.HistoryDB != "" {
		if err := recordHistory(ctx, cfg, comp, len(pages), strings.Join(outputs, ";")); err != nil {
			log.Printf("[!] Не удалось записать историю: %v", err)
		}
	}

	if cfg.ShowStats {
		report.Print()
		if err := report.AppendLog("benchmark.log"); err != nil {
			fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
		}
	}
}

// loadPages reads the page list from the backend, a manifest, a PDF or an image folder.
func loadPages(ctx context.Context, cfg *config.Config, pageDuration float64) ([]timeline.PageAsset, error) {
	if cfg.JobID != "" {
		client := &http.Client{Timeout: time.Duration(cfg.FetchTimeout * float64(time.Second))}
		m, err := source.FetchManifest(ctx, client, cfg.APIBase, cfg.JobID)
		if err != nil {
			return nil, err
		}
		cfg.InputPath = cfg.APIBase + "#" + m.JobID
		fmt.Printf("[*] Задание %s: %d страниц\n", m.JobID, len(m.Pages))
		return m.Assets(), nil
	}

	if cfg.InputPath == "" {
		exts := append(append([]string{}, system.ManifestExtensions...), system.PDFExtensions...)
		latest, err := system.FindLatestFile("input/pages", exts...)
		if err != nil {
			return nil, fmt.Errorf("%v. Положите манифест или PDF в input/pages/", err)
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", latest)
	}

	ext := strings.ToLower(filepath.Ext(cfg.InputPath))
	switch {
	case ext == ".json" || ext == ".yaml" || ext == ".yml":
		m, err := source.LoadManifest(cfg.InputPath)
		if err != nil {
			return nil, err
		}
		return m.Assets(), nil
	case ext == ".pdf":
		src, err := source.NewFitzPDFSource(cfg.InputPath)
		if err != nil {
			return nil, err
		}
		defer src.Close()
		return source.PagesFromSource(src, pageDuration), nil
	default:
		src, err := source.NewImageSource(cfg.InputPath)
		if err != nil {
			return nil, err
		}
		defer src.Close()
		if src.PageCount() == 0 {
			return nil, fmt.Errorf("в %s нет изображений", cfg.InputPath)
		}
		return source.PagesFromSource(src, pageDuration), nil
	}
}

func outputName(cfg *config.Config, ext string) string {
	base := filepath.Base(cfg.InputPath)
	if cfg.JobID != "" {
		base = cfg.JobID
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("%s_%s%s", name, time.Now().Format("2006-01-02_15-04-05"), ext)
}

func recordHistory(ctx context.Context, cfg *config.Config, comp *engine.Composition, pages int, output string) error {
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	job := &history.Job{
		JobID:       cfg.JobID,
		Input:       cfg.InputPath,
		Pages:       pages,
		TotalFrames: comp.TotalFrames(),
		FPS:         comp.FPS(),
		Output:      output,
	}
	if err := store.Record(ctx, job); err != nil {
		return err
	}
	fmt.Printf("[*] Задание записано в историю: %s\n", job.ID)
	return nil
}

func listHistory(ctx context.Context, path string, limit int) error {
	if path == "" {
		return fmt.Errorf("не задан файл истории (-history)")
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	jobs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	for _, j := range jobs {
		fmt.Printf("%s  %-14s  %3d стр.  %8s  %s\n", shortID(j.ID), humanize.Time(j.CreatedAt), j.Pages, j.Duration().Round(100*time.Millisecond), j.Input)
	}
	return nil
}

// shortID trims a uuid to its first group for listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
