// Diagnostic program: fetch a chapter, list its reciters and print where
// each ayah is expected to start for a given recitation length.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/llehouerou/tilawa/internal/config"
	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/quran"
)

func main() {
	chapter := flag.Int("chapter", 1, "chapter number (1-114)")
	reciter := flag.String("reciter", "", "narrator id, defaults to the first one")
	length := flag.Duration("length", 0, "recitation length used to estimate ayah starts")
	flag.Parse()

	if !quran.ValidNumber(*chapter) {
		log.Fatalf("Invalid chapter %d", *chapter)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client := quran.NewClient(cfg.GetAPIBaseURL(), quran.WithRateLimit(cfg.GetRequestsPerSecond(), 1))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Printf("Fetching chapter %d from %s...", *chapter, cfg.GetAPIBaseURL())
	ch, err := client.Chapter(ctx, *chapter)
	if err != nil {
		log.Fatalf("Failed to fetch chapter: %v", err)
	}
	log.Printf("%d. %s (%s) - %s, %d ayahs, revealed in %s",
		ch.Number, ch.Name, ch.NameArabic, ch.NameTranslation, ch.TotalVerses, ch.RevelationPlace)

	log.Printf("Reciters (%d):", len(ch.Narrators))
	for _, n := range ch.Narrators {
		log.Printf("  [%s] %s - %s", n.ID, n.Name, n.URL)
	}

	id, url, err := playback.ResolveOrDefault(ch, *reciter)
	if err != nil {
		log.Printf("No recitation available: %v", err)
		os.Exit(1)
	}
	if id != *reciter && *reciter != "" {
		log.Printf("Reciter %s not found, using %s", *reciter, id)
	}
	log.Printf("Selected recitation: %s", url)

	if *length <= 0 {
		return
	}

	// Walk the recitation and report each point where the estimate moves on.
	log.Printf("Estimated ayah starts for a %s recitation:", *length)
	prev := playback.NoVerse
	for t := time.Duration(0); t < *length; t += 100 * time.Millisecond {
		v := playback.EstimateVerse(t, *length, ch.TotalVerses)
		if v != prev {
			log.Printf("  %8s  ayah %d: %s", t.Truncate(100*time.Millisecond), v+1, ch.Verse(v).English)
			prev = v
		}
	}
}
