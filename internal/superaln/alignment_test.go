package superaln

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTestFile drops file contents into a temp dir and returns the path
func writeTestFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_readAlignment(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "gene1.fna.afa", ">SRL2\nacg-\n>SRL1\nACGT\n")

	aln, err := readAlignment(path)
	if err != nil {
		t.Fatalf("readAlignment() error = %v", err)
	}

	if !reflect.DeepEqual(aln.Taxa, []string{"SRL1", "SRL2"}) {
		t.Errorf("readAlignment() taxa = %v, want sorted [SRL1 SRL2]", aln.Taxa)
	}
	if aln.Width != 4 {
		t.Errorf("readAlignment() width = %d, want 4", aln.Width)
	}
	if aln.Seqs["SRL2"] != "ACG-" {
		t.Errorf("readAlignment() SRL2 = %q, want uppercased ACG-", aln.Seqs["SRL2"])
	}
}

func Test_readAlignment_multiLineRecords(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "gene1.fna.afa", ">SRL1\nACGT\nACGT\n>SRL2\nACG-\nACG-\n")

	aln, err := readAlignment(path)
	if err != nil {
		t.Fatalf("readAlignment() error = %v", err)
	}
	if aln.Seqs["SRL1"] != "ACGTACGT" {
		t.Errorf("readAlignment() SRL1 = %q, want joined ACGTACGT", aln.Seqs["SRL1"])
	}
}

func Test_readAlignment_errors(t *testing.T) {
	dir := t.TempDir()

	type args struct {
		contents string
	}
	tests := []struct {
		name    string
		args    args
		wantErr error
	}{
		{
			"unequal widths",
			args{">SRL1\nACGT\n>SRL2\nACG\n"},
			ErrLengthMismatch,
		},
		{
			"empty file",
			args{""},
			ErrInputFormat,
		},
		{
			"duplicate record",
			args{">SRL1\nACGT\n>SRL1\nACGT\n"},
			ErrInputFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, dir, "in.afa", tt.args.contents)
			if _, err := readAlignment(path); !errors.Is(err, tt.wantErr) {
				t.Errorf("readAlignment() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func Test_allGaps(t *testing.T) {
	if !allGaps("----") {
		t.Error("allGaps(----) = false, want true")
	}
	if allGaps("--A-") {
		t.Error("allGaps(--A-) = true, want false")
	}
	if !allGaps("") {
		t.Error("allGaps(empty) = false, want true")
	}
}

func Test_countGaps(t *testing.T) {
	if got := countGaps("AC--G-"); got != 3 {
		t.Errorf("countGaps() = %d, want 3", got)
	}
}
