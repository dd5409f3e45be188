package superaln

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Taxonomy maps genome accessions to human friendly display names. It only
// serves labelling; no pipeline stage depends on its contents.
type Taxonomy struct {
	names map[string]string
}

// ReadTaxonomy loads a tab separated taxonomy table. The header row must
// name accession, genus and species columns; their order does not matter.
func ReadTaxonomy(path string) (*Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open taxonomy table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1 // ragged GTDB exports are common

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy table %s: %v: %w", path, err, ErrInputFormat)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("taxonomy table %s is empty: %w", path, ErrInputFormat)
	}

	cols := map[string]int{}
	for i, name := range rows[0] {
		cols[name] = i
	}
	for _, want := range []string{"accession", "genus", "species"} {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("taxonomy table %s: no %s column: %w", path, want, ErrInputFormat)
		}
	}

	t := &Taxonomy{names: map[string]string{}}
	for _, row := range rows[1:] {
		widest := cols["accession"]
		if cols["genus"] > widest {
			widest = cols["genus"]
		}
		if cols["species"] > widest {
			widest = cols["species"]
		}
		if len(row) <= widest {
			continue
		}
		t.names[row[cols["accession"]]] = fmt.Sprintf("%s:%s", row[cols["genus"]], row[cols["species"]])
	}
	return t, nil
}

// DisplayName returns the genus:species label for an accession, or the
// accession itself when the table does not know it
func (t *Taxonomy) DisplayName(accession string) string {
	if name, ok := t.names[accession]; ok {
		return name
	}
	return accession
}
