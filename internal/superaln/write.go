package superaln

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// fastaLineWidth is the number of sequence characters per output line
const fastaLineWidth = 60

// atomicWrite publishes a file by writing to a temp file in the same
// directory and renaming it into place, so a failed stage never leaves a
// truncated artifact behind.
func atomicWrite(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}

	w := bufio.NewWriter(tmp)
	if err := write(w); err == nil {
		err = w.Flush()
	} else {
		w.Flush()
	}
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish %s: %w", path, err)
	}
	return nil
}

// writeFastaRecord writes one ">name" header and its wrapped sequence
func writeFastaRecord(w io.Writer, name, seq string) error {
	if _, err := fmt.Fprintf(w, ">%s\n", name); err != nil {
		return err
	}
	for len(seq) > fastaLineWidth {
		if _, err := fmt.Fprintln(w, seq[:fastaLineWidth]); err != nil {
			return err
		}
		seq = seq[fastaLineWidth:]
	}
	_, err := fmt.Fprintln(w, seq)
	return err
}

// writeSuperAlignment persists a super-alignment as a FASTA file
func writeSuperAlignment(path string, sa *SuperAlignment) error {
	return atomicWrite(path, func(w io.Writer) error {
		for _, name := range sa.Taxa {
			if err := writeFastaRecord(w, name, sa.Seqs[name]); err != nil {
				return err
			}
		}
		return nil
	})
}

// readSuperAlignment reloads a persisted super-alignment. The equal-width
// check readAlignment applies is exactly the super-alignment invariant.
func readSuperAlignment(path string) (*SuperAlignment, error) {
	aln, err := readAlignment(path)
	if err != nil {
		return nil, err
	}
	return &SuperAlignment{Taxa: aln.Taxa, Seqs: aln.Seqs, Length: aln.Width}, nil
}
