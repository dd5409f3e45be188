package superaln

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/FranziskaReden/bacillus-project/config"
	log "github.com/sirupsen/logrus"
)

// MergeGroup is a curated set of genome labels known to be the same
// physical sample under different assembly labels. Keep survives under a
// merged name; Members are removed regardless of measured identity.
type MergeGroup struct {
	Keep    string   `json:"keep"`
	Members []string `json:"members"`
}

// ReadMergeGroups loads the curated merge groups file. An empty path means
// no curated groups.
func ReadMergeGroups(path string) ([]MergeGroup, error) {
	if path == "" {
		return nil, nil
	}

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read merge groups: %w", err)
	}

	var groups []MergeGroup
	if err := json.Unmarshal(dat, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse merge groups %s: %v: %w", path, err, ErrInputFormat)
	}

	for _, g := range groups {
		if g.Keep == "" {
			return nil, fmt.Errorf("merge groups %s: group without a keep label: %w", path, ErrInputFormat)
		}
		if len(g.Members) == 0 {
			return nil, fmt.Errorf("merge groups %s: group %s has no members: %w", path, g.Keep, ErrInputFormat)
		}
	}
	return groups, nil
}

// Resolution is the outcome of duplicate detection: the genomes to drop
// and the survivor renames to apply.
type Resolution struct {
	Drop   map[string]bool
	Rename map[string]string
}

// Resolve decides which genomes to remove. Curated merge groups are applied
// unconditionally; then every unordered pair at or above the identity
// threshold is a near-duplicate candidate unless either label carries the
// assembly marker, which hands it to the curated channel instead. For a
// candidate pair the genome with fewer gap characters survives; at equal
// counts the earlier genome in the fixed ordering survives.
func Resolve(m *Matrix, sa *SuperAlignment, groups []MergeGroup, rc config.ReduceConfig) (*Resolution, error) {
	res := &Resolution{
		Drop:   map[string]bool{},
		Rename: map[string]string{},
	}

	for _, g := range groups {
		if _, dup := res.Rename[g.Keep]; dup {
			return nil, fmt.Errorf("merge groups: %s kept by two groups: %w", g.Keep, ErrInputFormat)
		}
		if res.Drop[g.Keep] {
			return nil, fmt.Errorf("merge groups: %s both kept and removed: %w", g.Keep, ErrInputFormat)
		}
		res.Rename[g.Keep] = mergedName(g.Keep, g.Members, rc.AssemblyMarker)

		for _, member := range g.Members {
			if member == g.Keep || res.Rename[member] != "" {
				return nil, fmt.Errorf("merge groups: %s both kept and removed: %w", member, ErrInputFormat)
			}
			res.Drop[member] = true
		}
	}

	taxa := m.Taxa()
	for i := 0; i < len(taxa); i++ {
		for j := i + 1; j < len(taxa); j++ {
			if m.at(i, j) < rc.Threshold {
				continue
			}
			a, b := taxa[i], taxa[j]
			if rc.IsAssembly(a) || rc.IsAssembly(b) {
				continue
			}

			seqA, ok := sa.Seqs[a]
			if !ok {
				return nil, fmt.Errorf("failed to find matrix genome %s in the super-alignment", a)
			}
			seqB, ok := sa.Seqs[b]
			if !ok {
				return nil, fmt.Errorf("failed to find matrix genome %s in the super-alignment", b)
			}

			log.Infof("near-duplicate: %s, %s (%.4f)", a, b, m.at(i, j))
			if countGaps(seqA) <= countGaps(seqB) {
				res.Drop[b] = true
			} else {
				res.Drop[a] = true
			}
		}
	}

	for keep := range res.Rename {
		if res.Drop[keep] {
			return nil, fmt.Errorf("genome %s both kept under a new name and removed: %w", keep, ErrInputFormat)
		}
	}

	return res, nil
}

// mergedName renames a group's survivor so the label encodes every merged
// member. The assembly marker is pulled off the parts and re-appended once,
// so SRL221_assembly merged with SRL244_assembly becomes
// SRL221_SRL244_assembly.
func mergedName(keep string, members []string, marker string) string {
	tail := ""
	base := keep
	if marker != "" && strings.HasSuffix(keep, "_"+marker) {
		base = strings.TrimSuffix(keep, "_"+marker)
		tail = "_" + marker
	}

	parts := []string{base}
	for _, member := range members {
		if marker != "" {
			member = strings.TrimSuffix(member, "_"+marker)
		}
		parts = append(parts, member)
	}
	return strings.Join(parts, "_") + tail
}

// Apply builds the reduced super-alignment: dropped genomes are left out,
// survivor renames are applied, order is otherwise preserved.
func (r *Resolution) Apply(sa *SuperAlignment) (*SuperAlignment, error) {
	reduced := &SuperAlignment{
		Seqs:   map[string]string{},
		Length: sa.Length,
	}
	for _, name := range sa.Taxa {
		if r.Drop[name] {
			continue
		}
		out := name
		if renamed, ok := r.Rename[name]; ok {
			out = renamed
		}
		if _, dup := reduced.Seqs[out]; dup {
			return nil, fmt.Errorf("rename collision: two genomes labelled %s: %w", out, ErrInputFormat)
		}
		reduced.Taxa = append(reduced.Taxa, out)
		reduced.Seqs[out] = sa.Seqs[name]
	}

	for keep := range r.Rename {
		if _, ok := sa.Seqs[keep]; !ok {
			log.Warnf("merge group keeps %s but the super-alignment has no such genome", keep)
		}
	}

	return reduced, nil
}

// writeGeneSlices re-slices the reduced super-alignment gene by gene and
// writes one alignment file per gene. A genome whose slice is nothing but
// gaps has no data for that gene and is left out of its file.
func writeGeneSlices(outDir string, reduced *SuperAlignment, partitions []Partition) error {
	for _, p := range partitions {
		if p.End > reduced.Length {
			return fmt.Errorf("partition %s ends at %d but the alignment is %d wide: %w",
				p.Gene, p.End, reduced.Length, ErrPartitionDecode)
		}

		path := filepath.Join(outDir, p.Gene+".fna")
		err := atomicWrite(path, func(w io.Writer) error {
			for _, name := range reduced.Taxa {
				sliced := reduced.Seqs[name][p.Start:p.End]
				if allGaps(sliced) {
					continue
				}
				if err := writeFastaRecord(w, name, sliced); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
