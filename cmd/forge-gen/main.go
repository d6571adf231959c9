// Command forge-gen generates marked sample codes from a template
// without a harvest run. Useful for trying out templates by hand.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/cognicore/promoforge/pkg/promoforge/gen"
)

func main() {
	var (
		template = flag.String("template", "", "Character-class template, e.g. LLDD (required)")
		count    = flag.Int("count", 20, "How many codes to generate")
		prefix   = flag.String("prefix", "", "Prefix prepended to each code")
		suffix   = flag.String("suffix", "", "Suffix appended before the marker")
		marker   = flag.String("marker", gen.DefaultMarker, "Marker appended to every code")
		seed     = flag.Int64("seed", 0, "Random seed (0 = time-based)")
	)
	flag.Parse()

	if *template == "" {
		log.Fatal("--template required")
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	g := gen.New(rand.New(rand.NewSource(s)))

	codes, err := g.GenerateBatch(*template, *count, gen.Options{
		Prefix: *prefix,
		Suffix: *suffix,
		Marker: *marker,
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, code := range codes {
		fmt.Println(code)
	}
}
