// Package export renders store contents as CSV or JSON.
//
// The tabular schema is fixed for compatibility with downstream
// tooling: found codes export as `code,source_url`, generated codes as
// `code,template,marker`. The JSON form nests both lists under `found`
// and `generated` keys.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/promoforge/pkg/promoforge/store"
)

// FoundRecord is the JSON shape of one harvested code.
type FoundRecord struct {
	Code      string `json:"code"`
	SourceURL string `json:"source_url"`
}

// GeneratedRecord is the JSON shape of one synthesized code.
type GeneratedRecord struct {
	Code     string `json:"code"`
	Template string `json:"template"`
	Marker   string `json:"marker"`
}

// Document is the top-level JSON export shape.
type Document struct {
	Found     []FoundRecord     `json:"found"`
	Generated []GeneratedRecord `json:"generated"`
}

// WriteFoundCSV writes harvested codes as `code,source_url` rows.
func WriteFoundCSV(w io.Writer, recs []store.Found) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"code", "source_url"}); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write([]string{r.Code, r.SourceURL}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGeneratedCSV writes synthesized codes as `code,template,marker`
// rows.
func WriteGeneratedCSV(w io.Writer, recs []store.Generated) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"code", "template", "marker"}); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write([]string{r.Code, r.Template, r.Marker}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes both record sets as one JSON document.
func WriteJSON(w io.Writer, found []store.Found, generated []store.Generated) error {
	doc := Document{
		Found:     make([]FoundRecord, 0, len(found)),
		Generated: make([]GeneratedRecord, 0, len(generated)),
	}
	for _, r := range found {
		doc.Found = append(doc.Found, FoundRecord{Code: r.Code, SourceURL: r.SourceURL})
	}
	for _, r := range generated {
		doc.Generated = append(doc.Generated, GeneratedRecord{
			Code:     r.Code,
			Template: r.Template,
			Marker:   r.Marker,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ToFile exports the store contents to path. A .json extension produces
// one JSON document; anything else produces two CSV files named
// <base>_found.csv and <base>_generated.csv.
func ToFile(ctx context.Context, s store.Store, path string) error {
	found, err := s.ListFound(ctx)
	if err != nil {
		return fmt.Errorf("export: list found: %w", err)
	}
	generated, err := s.ListGenerated(ctx)
	if err != nil {
		return fmt.Errorf("export: list generated: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return WriteJSON(f, found, generated)
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))

	ff, err := os.Create(base + "_found.csv")
	if err != nil {
		return err
	}
	defer ff.Close()
	if err := WriteFoundCSV(ff, found); err != nil {
		return err
	}

	gf, err := os.Create(base + "_generated.csv")
	if err != nil {
		return err
	}
	defer gf.Close()
	return WriteGeneratedCSV(gf, generated)
}
