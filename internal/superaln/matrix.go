package superaln

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"gonum.org/v1/gonum/mat"
)

// Matrix is the symmetric pairwise identity matrix over a fixed genome
// ordering. The diagonal is 1 by construction and both (a,b) and (b,a)
// read from the same cell.
type Matrix struct {
	taxa  []string
	index map[string]int
	vals  *mat.SymDense
}

// NewMatrix returns a zeroed identity matrix over the given genome ordering
func NewMatrix(taxa []string) *Matrix {
	index := make(map[string]int, len(taxa))
	for i, name := range taxa {
		index[name] = i
	}
	return &Matrix{
		taxa:  taxa,
		index: index,
		vals:  mat.NewSymDense(len(taxa), nil),
	}
}

// Taxa returns the genome ordering the matrix is keyed by
func (m *Matrix) Taxa() []string { return m.taxa }

// At returns the identity between two genomes by label
func (m *Matrix) At(a, b string) (float64, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, fmt.Errorf("failed to find genome %s in the identity matrix", a)
	}
	j, ok := m.index[b]
	if !ok {
		return 0, fmt.Errorf("failed to find genome %s in the identity matrix", b)
	}
	return m.vals.At(i, j), nil
}

// at returns the identity between two genomes by index
func (m *Matrix) at(i, j int) float64 { return m.vals.At(i, j) }

// pair is one unordered genome pair, i < j in the fixed ordering
type pair struct {
	i, j int
}

// BuildOptions tunes the pairwise identity computation
type BuildOptions struct {
	// Workers is the size of the worker pool; 1 computes sequentially
	Workers int

	// WarnThreshold is the identity at which a pair is reported as a
	// likely duplicate; this is an advisory, never an error
	WarnThreshold float64

	// Progress draws a progress bar over the pair loop
	Progress bool
}

// BuildMatrix computes the full identity matrix for a super-alignment.
// Each unordered pair is computed once, iterating the upper triangle of a
// fixed genome ordering, so results are independent of worker count; the
// diagonal is set to 1 without invoking the calculator. Cells of distinct
// pairs never alias, so workers write without locking.
func BuildMatrix(sa *SuperAlignment, partitions []Partition, opts BuildOptions) (*Matrix, error) {
	if err := checkCoverage(partitions, sa.Length); err != nil {
		return nil, err
	}

	m := NewMatrix(sa.Taxa)
	n := len(sa.Taxa)
	for i := 0; i < n; i++ {
		m.vals.SetSym(i, i, 1)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var progress *mpb.Progress
	var bar *mpb.Bar
	if opts.Progress {
		progress = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar = progress.AddBar(int64(n*(n-1)/2),
			mpb.PrependDecorators(
				decor.Name("pairwise identities: "),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Percentage(),
			),
		)
	}

	// workers drain the remaining pairs after a failure instead of
	// returning, so the producer below can never block forever
	var once sync.Once
	var failed atomic.Bool
	var buildErr error

	jobs := make(chan pair, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				if bar != nil {
					bar.Increment()
				}
				if failed.Load() {
					continue
				}

				a, b := sa.Taxa[p.i], sa.Taxa[p.j]
				identity, err := Identity(sa.Seqs[a], sa.Seqs[b], partitions)
				if err != nil {
					once.Do(func() {
						buildErr = fmt.Errorf("failed to compute identity of %s and %s: %w", a, b, err)
					})
					failed.Store(true)
					continue
				}
				if opts.WarnThreshold > 0 && identity >= opts.WarnThreshold {
					log.Warnf("very similar: %s, %s (%.4f)", a, b, identity)
				}
				m.vals.SetSym(p.i, p.j, identity)
			}
		}()
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			jobs <- pair{i, j}
		}
	}
	close(jobs)
	wg.Wait()
	if progress != nil {
		progress.Wait()
	}

	if buildErr != nil {
		return nil, buildErr
	}
	return m, nil
}

// WriteTSV persists the matrix as a tab separated table with genome labels
// on both axes
func (m *Matrix) WriteTSV(path string) error {
	return atomicWrite(path, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "\t%s\n", strings.Join(m.taxa, "\t")); err != nil {
			return err
		}
		for i, name := range m.taxa {
			if _, err := fmt.Fprint(w, name); err != nil {
				return err
			}
			for j := range m.taxa {
				if _, err := fmt.Fprintf(w, "\t%s", strconv.FormatFloat(m.vals.At(i, j), 'f', 6, 64)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadMatrixTSV reloads a persisted identity matrix
func ReadMatrixTSV(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open identity matrix: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024) // wide rows for large runs

	if !scanner.Scan() {
		return nil, fmt.Errorf("identity matrix %s is empty: %w", path, ErrInputFormat)
	}
	header := strings.Split(scanner.Text(), "\t")
	if len(header) < 2 || header[0] != "" {
		return nil, fmt.Errorf("identity matrix %s: bad header: %w", path, ErrInputFormat)
	}
	taxa := header[1:]

	m := NewMatrix(taxa)
	row := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if row >= len(taxa) {
			return nil, fmt.Errorf("identity matrix %s: more rows than genomes: %w", path, ErrInputFormat)
		}

		fields := strings.Split(line, "\t")
		if len(fields) != len(taxa)+1 {
			return nil, fmt.Errorf("identity matrix %s row %s: %d fields, want %d: %w",
				path, fields[0], len(fields), len(taxa)+1, ErrInputFormat)
		}
		if fields[0] != taxa[row] {
			return nil, fmt.Errorf("identity matrix %s: row %s out of order, want %s: %w",
				path, fields[0], taxa[row], ErrInputFormat)
		}

		for j, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("identity matrix %s row %s: bad value %q: %w",
					path, fields[0], field, ErrInputFormat)
			}
			if j >= row { // upper triangle carries the whole symmetric matrix
				m.vals.SetSym(row, j, v)
			}
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read identity matrix %s: %w", path, err)
	}
	if row != len(taxa) {
		return nil, fmt.Errorf("identity matrix %s: %d rows for %d genomes: %w", path, row, len(taxa), ErrInputFormat)
	}

	return m, nil
}
