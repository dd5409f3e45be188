package superaln

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func Test_parsePartition(t *testing.T) {
	type args struct {
		line string
	}
	tests := []struct {
		name    string
		args    args
		want    Partition
		wantErr bool
	}{
		{
			"first gene",
			args{line: "DNA, gene1 = 1-4"},
			Partition{Gene: "gene1", Start: 0, End: 4},
			false,
		},
		{
			"later gene",
			args{line: "DNA, rpoB = 1201-4800"},
			Partition{Gene: "rpoB", Start: 1200, End: 4800},
			false,
		},
		{
			"missing separator",
			args{line: "DNA, gene1 1-4"},
			Partition{},
			true,
		},
		{
			"missing gene name",
			args{line: "DNA = 1-4"},
			Partition{},
			true,
		},
		{
			"bad start",
			args{line: "DNA, gene1 = one-4"},
			Partition{},
			true,
		},
		{
			"inverted range",
			args{line: "DNA, gene1 = 5-4"},
			Partition{},
			true,
		},
		{
			"zero start",
			args{line: "DNA, gene1 = 0-4"},
			Partition{},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePartition(tt.args.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePartition() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrPartitionDecode) {
				t.Errorf("parsePartition() error = %v, want ErrPartitionDecode", err)
			}
			if got != tt.want {
				t.Errorf("parsePartition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_partitionRoundTrip(t *testing.T) {
	want := []Partition{
		{Gene: "gene1", Start: 0, End: 4},
		{Gene: "gene2", Start: 4, End: 7},
		{Gene: "gene3", Start: 7, End: 1207},
	}

	var buf bytes.Buffer
	if err := writePartitions(&buf, want); err != nil {
		t.Fatalf("writePartitions() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "partitions.txt")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadPartitions(path)
	if err != nil {
		t.Fatalf("ReadPartitions() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadPartitions() = %v, want %v", got, want)
	}
}

func Test_checkCoverage(t *testing.T) {
	type args struct {
		partitions []Partition
		length     int
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			"exact tiling",
			args{[]Partition{{Gene: "gene1", Start: 0, End: 4}, {Gene: "gene2", Start: 4, End: 7}}, 7},
			false,
		},
		{
			"wider than the alignment",
			args{[]Partition{{Gene: "gene1", Start: 0, End: 4}, {Gene: "gene2", Start: 4, End: 10}}, 7},
			true,
		},
		{
			"short of the last column",
			args{[]Partition{{Gene: "gene1", Start: 0, End: 4}}, 7},
			true,
		},
		{
			"gap between genes",
			args{[]Partition{{Gene: "gene1", Start: 0, End: 4}, {Gene: "gene2", Start: 5, End: 7}}, 7},
			true,
		},
		{
			"no partitions for a non-empty alignment",
			args{nil, 7},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkCoverage(tt.args.partitions, tt.args.length)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkCoverage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrPartitionDecode) {
				t.Errorf("checkCoverage() error = %v, want ErrPartitionDecode", err)
			}
		})
	}
}

func Test_writePartitions_encoding(t *testing.T) {
	var buf bytes.Buffer
	err := writePartitions(&buf, []Partition{{Gene: "gene2", Start: 4, End: 7}})
	if err != nil {
		t.Fatalf("writePartitions() error = %v", err)
	}

	want := "DNA, gene2 = 5-7\n"
	if buf.String() != want {
		t.Errorf("writePartitions() wrote %q, want %q", buf.String(), want)
	}
}
