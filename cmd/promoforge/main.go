// Command promoforge harvests promotional codes from a list of URLs,
// reports the dominant templates and affixes, and optionally generates
// marked sample codes from the top-ranked template.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cognicore/promoforge/internal/fetch"
	"github.com/cognicore/promoforge/pkg/promoforge"
	"github.com/cognicore/promoforge/pkg/promoforge/config"
	"github.com/cognicore/promoforge/pkg/promoforge/infer"
	"github.com/cognicore/promoforge/pkg/promoforge/store/sqlite"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	var urlFlags multiFlag
	var (
		dbPath       = flag.String("db", "", "SQLite database path (required)")
		configPath   = flag.String("config", "", "YAML configuration file (optional)")
		urlsFile     = flag.String("urls", "", "File with URLs, one per line")
		exportPath   = flag.String("export", "", "Export path (.json or CSV base)")
		autoGenerate = flag.Bool("auto-generate", false, "Generate codes after harvesting")
		genCount     = flag.Int("generate-count", 0, "How many codes to generate")
		prefix       = flag.String("prefix", "", "Fixed prefix for generation")
		suffix       = flag.String("suffix", "", "Fixed suffix for generation")
		marker       = flag.String("marker", "", "Marker appended to generated codes")
		delay        = flag.Duration("delay", 0, "Delay between requests")
	)
	flag.Var(&urlFlags, "url", "URL to harvest (can repeat)")
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *marker != "" {
		cfg.Marker = *marker
	}
	if *prefix != "" {
		cfg.Prefix = *prefix
	}
	if *suffix != "" {
		cfg.Suffix = *suffix
	}
	if *genCount > 0 {
		cfg.GenerateCount = *genCount
	}
	if *delay > 0 {
		cfg.Delay = config.Duration(*delay)
	}

	urls, err := collectURLs(*urlsFile, urlFlags)
	if err != nil {
		log.Fatal(err)
	}
	if len(urls) == 0 {
		log.Fatal("no URLs provided; use --urls or --url")
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal("open store:", err)
	}

	forge := promoforge.New(promoforge.Options{
		Store:   st,
		Fetcher: fetch.New(cfg.Timeout.Std(), cfg.UserAgent),
		Config:  &cfg,
	})
	defer forge.Close()

	log.Printf("Harvesting %d URLs...", len(urls))
	start := time.Now()
	found, err := forge.HarvestURLs(ctx, urls)
	if err != nil {
		// Partial failures are logged, not fatal.
		log.Printf("harvest warnings: %v", err)
	}
	log.Printf("Harvest complete: %d codes found in %s", len(found), time.Since(start).Round(time.Millisecond))

	res, err := forge.InferTemplates(ctx)
	if err != nil {
		log.Fatal("infer:", err)
	}
	logRanking("templates", entriesToLines(res.Templates))
	logRanking("prefixes", entriesToLines(res.Prefixes))
	logRanking("suffixes", entriesToLines(res.Suffixes))

	if *autoGenerate {
		template := res.TopTemplate()
		if template == "" {
			log.Print("nothing to generate: no templates inferred")
		} else {
			genPrefix := cfg.Prefix
			if genPrefix == "" {
				genPrefix = res.TopPrefix()
			}
			genSuffix := cfg.Suffix
			if genSuffix == "" {
				genSuffix = res.TopSuffix()
			}
			recs, err := forge.GenerateCodes(ctx, template, cfg.GenerateCount, genPrefix, genSuffix)
			if err != nil {
				log.Fatal("generate:", err)
			}
			log.Printf("Generated %d codes from template %s (marker %s)", len(recs), template, forge.Marker())
			for _, r := range recs {
				fmt.Println(r.Code)
			}
		}
	}

	if *exportPath != "" {
		if err := forge.Export(ctx, *exportPath); err != nil {
			log.Fatal("export:", err)
		}
		log.Printf("Exported to %s", *exportPath)
	}
}

// collectURLs merges the URLs file with repeated --url flags.
func collectURLs(path string, extra []string) ([]string, error) {
	var urls []string

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("read urls file: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				urls = append(urls, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read urls file: %w", err)
		}
	}

	urls = append(urls, extra...)
	return urls, nil
}

func entriesToLines(entries []infer.Entry) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s (%d)", e.Value, e.Count))
	}
	return lines
}

func logRanking(name string, lines []string) {
	if len(lines) == 0 {
		log.Printf("Top %s: none", name)
		return
	}
	log.Printf("Top %s: %s", name, strings.Join(lines, ", "))
}
