package superaln

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Partition is the half-open column range [Start, End) that one gene
// occupies in the super-alignment. Partitions are contiguous, ordered by
// gene file order, and together cover the whole alignment.
type Partition struct {
	// Gene is the gene's short name (file name with the suffix stripped)
	Gene string

	// Start is the 0-based first column of the gene
	Start int

	// End is one past the gene's last column
	End int
}

// writePartitions encodes partitions in the RAxML-style text form
// "DNA, <gene> = <start>-<end>" with 1-based, inclusive-end coordinates
func writePartitions(w io.Writer, partitions []Partition) error {
	for _, p := range partitions {
		if _, err := fmt.Fprintf(w, "DNA, %s = %d-%d\n", p.Gene, p.Start+1, p.End); err != nil {
			return err
		}
	}
	return nil
}

// ReadPartitions decodes the partition table written next to the
// super-alignment. Decoding is the exact inverse of encoding: 1-based
// inclusive ranges turn back into 0-based half-open ones.
func ReadPartitions(path string) ([]Partition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open partition table: %w", err)
	}
	defer f.Close()

	var partitions []Partition
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		p, err := parsePartition(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, n, err)
		}
		partitions = append(partitions, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read partition table %s: %w", path, err)
	}

	return partitions, nil
}

// checkCoverage validates that partitions tile an alignment of the given
// width exactly: contiguous from column 0 through the last column. A stale
// partition table next to a rewritten super-alignment fails here instead of
// deep in the identity calculation.
func checkCoverage(partitions []Partition, length int) error {
	offset := 0
	for _, p := range partitions {
		if p.Start != offset {
			return fmt.Errorf("partition %s starts at column %d, want %d: %w",
				p.Gene, p.Start+1, offset+1, ErrPartitionDecode)
		}
		offset = p.End
	}
	if offset != length {
		return fmt.Errorf("partitions cover %d columns but the alignment is %d wide: %w",
			offset, length, ErrPartitionDecode)
	}
	return nil
}

// parsePartition decodes one "DNA, <gene> = <start>-<end>" line
func parsePartition(line string) (Partition, error) {
	halves := strings.SplitN(line, " = ", 2)
	if len(halves) != 2 {
		return Partition{}, fmt.Errorf("%q: missing \" = \": %w", line, ErrPartitionDecode)
	}

	tagAndGene := strings.SplitN(halves[0], ", ", 2)
	if len(tagAndGene) != 2 || tagAndGene[1] == "" {
		return Partition{}, fmt.Errorf("%q: missing gene name: %w", line, ErrPartitionDecode)
	}

	bounds := strings.SplitN(halves[1], "-", 2)
	if len(bounds) != 2 {
		return Partition{}, fmt.Errorf("%q: missing range: %w", line, ErrPartitionDecode)
	}

	start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return Partition{}, fmt.Errorf("%q: bad start: %w", line, ErrPartitionDecode)
	}
	end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return Partition{}, fmt.Errorf("%q: bad end: %w", line, ErrPartitionDecode)
	}
	if start < 1 || end < start {
		return Partition{}, fmt.Errorf("%q: bad range %d-%d: %w", line, start, end, ErrPartitionDecode)
	}

	return Partition{Gene: tagAndGene[1], Start: start - 1, End: end}, nil
}
