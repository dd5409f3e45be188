package superaln

import (
	"errors"
	"reflect"
	"testing"
)

func TestAssemble(t *testing.T) {
	dir := t.TempDir()
	gene1 := writeTestFile(t, dir, "gene1.fna.afa", ">A\nACGT\n>B\nACGA\n")
	gene2 := writeTestFile(t, dir, "gene2.fna.afa", ">A\nTTT\n")

	sa, partitions, err := Assemble([]string{gene1, gene2}, ".fna.afa")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if sa.Length != 7 {
		t.Errorf("Assemble() length = %d, want 7", sa.Length)
	}
	if !reflect.DeepEqual(sa.Taxa, []string{"A", "B"}) {
		t.Errorf("Assemble() taxa = %v, want [A B]", sa.Taxa)
	}
	if sa.Seqs["A"] != "ACGTTTT" {
		t.Errorf("Assemble() A = %q, want ACGTTTT", sa.Seqs["A"])
	}
	if sa.Seqs["B"] != "ACGA---" {
		t.Errorf("Assemble() B = %q, want gap-filled ACGA---", sa.Seqs["B"])
	}

	wantPartitions := []Partition{
		{Gene: "gene1", Start: 0, End: 4},
		{Gene: "gene2", Start: 4, End: 7},
	}
	if !reflect.DeepEqual(partitions, wantPartitions) {
		t.Errorf("Assemble() partitions = %v, want %v", partitions, wantPartitions)
	}
}

// every genome ends up with the same total width and partitions tile the
// alignment without holes
func TestAssemble_invariants(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeTestFile(t, dir, "a.fna.afa", ">X\nACGT-\n>Y\nACGTT\n"),
		writeTestFile(t, dir, "b.fna.afa", ">Y\nGG\n>Z\nGC\n"),
		writeTestFile(t, dir, "c.fna.afa", ">X\nTTTT\n>Z\nTTTA\n"),
	}

	sa, partitions, err := Assemble(files, ".fna.afa")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	for _, name := range sa.Taxa {
		if len(sa.Seqs[name]) != sa.Length {
			t.Errorf("genome %s is %d wide, want %d", name, len(sa.Seqs[name]), sa.Length)
		}
	}

	if partitions[0].Start != 0 {
		t.Errorf("first partition starts at %d, want 0", partitions[0].Start)
	}
	for i := 1; i < len(partitions); i++ {
		if partitions[i].Start != partitions[i-1].End {
			t.Errorf("partition %s starts at %d, previous ends at %d",
				partitions[i].Gene, partitions[i].Start, partitions[i-1].End)
		}
	}
	if last := partitions[len(partitions)-1]; last.End != sa.Length {
		t.Errorf("last partition ends at %d, want %d", last.End, sa.Length)
	}
}

func TestAssemble_errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("no files", func(t *testing.T) {
		if _, _, err := Assemble(nil, ".fna.afa"); !errors.Is(err, ErrInputFormat) {
			t.Errorf("Assemble() error = %v, want ErrInputFormat", err)
		}
	})

	t.Run("duplicate gene names", func(t *testing.T) {
		sub := t.TempDir()
		one := writeTestFile(t, dir, "gene1.fna.afa", ">A\nACGT\n")
		two := writeTestFile(t, sub, "gene1.fna.afa", ">A\nACGT\n")
		if _, _, err := Assemble([]string{one, two}, ".fna.afa"); !errors.Is(err, ErrInputFormat) {
			t.Errorf("Assemble() error = %v, want ErrInputFormat", err)
		}
	})

	t.Run("unequal widths", func(t *testing.T) {
		bad := writeTestFile(t, dir, "bad.fna.afa", ">A\nACGT\n>B\nAC\n")
		if _, _, err := Assemble([]string{bad}, ".fna.afa"); !errors.Is(err, ErrLengthMismatch) {
			t.Errorf("Assemble() error = %v, want ErrLengthMismatch", err)
		}
	})
}

func Test_geneShortName(t *testing.T) {
	type args struct {
		file       string
		geneSuffix string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			"known suffix",
			args{"alignments/rpoB.fna.afa", ".fna.afa"},
			"rpoB",
		},
		{
			"suffix does not apply",
			args{"alignments/rpoB.afa", ".fna.afa"},
			"rpoB",
		},
		{
			"no suffix configured",
			args{"alignments/rpoB.afa", ""},
			"rpoB",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := geneShortName(tt.args.file, tt.args.geneSuffix); got != tt.want {
				t.Errorf("geneShortName() = %v, want %v", got, tt.want)
			}
		})
	}
}
