package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ivlev/pdfstudio/internal/engine"
	"github.com/ivlev/pdfstudio/internal/playback"
)

// preview plays the composition in real time and prints page and caption changes.
func preview(ctx context.Context, comp *engine.Composition) {
	player := playback.NewPlayer(comp, false)
	player.Play()

	ticker := time.NewTicker(time.Second / time.Duration(comp.FPS()))
	defer ticker.Stop()

	lastPage, lastCaption := -1, ""
	last := time.Now()
	for player.Playing() {
		fr := player.Frame()
		if fr.PageNumber != lastPage {
			lastPage = fr.PageNumber
			fmt.Printf("[>] %6.2fs  стр. %d\n", float64(fr.Frame)/float64(comp.FPS()), fr.PageNumber)
		}
		if fr.Caption != nil && fr.Caption.Text != lastCaption {
			lastCaption = fr.Caption.Text
			fmt.Printf("           %s\n", lastCaption)
		}

		select {
		case <-ctx.Done():
			fmt.Println("[!] Просмотр прерван")
			return
		case now := <-ticker.C:
			player.Tick(now.Sub(last))
			last = now
		}
	}
	fmt.Println("[+++] Просмотр завершен")
}
