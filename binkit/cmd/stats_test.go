package cmd

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// layout builds <root>/<binner>/<sample>/bins with an assembly beside it.
func layout(t *testing.T, binner, sample, assembly string, bins map[string]string) (fasta, inDir, outDir string) {
	t.Helper()
	root := t.TempDir()
	fasta = writeFile(t, root, "assembly.fa", assembly)
	inDir = filepath.Join(root, binner, sample, "bins")
	for name, content := range bins {
		writeFile(t, inDir, name, content)
	}
	outDir = filepath.Join(root, "out")
	return fasta, inDir, outDir
}

func quietConfig() Config {
	return Config{
		Pattern:    defaultPattern,
		Exclude:    defaultExclude,
		Strategies: defaultStrategies,
	}
}

func TestRunStatsEndToEnd(t *testing.T) {
	asm := record(">c100", 100, 60) + record(">c50", 50, 60) + record(">c10", 10, 60)
	fasta, inDir, outDir := layout(t, "metabat2", "S1", asm, map[string]string{
		"bin.1.fa": record(">c100", 100, 60),
	})

	err := runStats(statsInput{Fasta: fasta, MinCtgLen: 20, InDir: inDir, OutDir: outDir}, quietConfig())
	if err != nil {
		t.Fatalf("runStats: %v", err)
	}

	stats := readCSV(t, filepath.Join(outDir, binStatsFile))
	if len(stats) != 1 {
		t.Fatalf("bin_stats rows = %d, want 1", len(stats))
	}
	r := stats[0]
	if r[0] != "S1" || r[1] != "metabat2" || r[2] != "1" || r[3] != "1" || r[4] != "100" {
		t.Fatalf("bin_stats = %v", r)
	}
	if mustFloat(t, r[5]) != 100 || mustFloat(t, r[6]) != 0 {
		t.Fatalf("bin_stats = %v", r)
	}

	summ := readCSV(t, filepath.Join(outDir, binSummFile))
	if len(summ) != 1 || len(summ[0]) != 12 {
		t.Fatalf("bin_summ = %v", summ)
	}
	s := summ[0]
	if s[2] != "1" || s[3] != "100" {
		t.Fatalf("binned columns = %v", s)
	}
	if s[7] != "1" || s[8] != "50" {
		t.Fatalf("unbinned columns = %v (the 10 bp contig must be filtered)", s)
	}
	if math.Abs(mustFloat(t, s[4])-100.0/150.0) > eps || math.Abs(mustFloat(t, s[9])-50.0/150.0) > eps {
		t.Fatalf("fractions = %v, %v", s[4], s[9])
	}
	if mustFloat(t, s[10]) != 50 || mustFloat(t, s[11]) != 0 {
		t.Fatalf("unbinned stats = %v", s)
	}
}

func TestRunStatsSpadesHeaders(t *testing.T) {
	asm := record(">NODE_1_length_300_cov_5.1", 300, 60) +
		record(">NODE_2_length_200_cov_2.0", 200, 60) +
		record(">NODE_3_length_120_cov_1.0", 120, 60) +
		record(">NODE_4_length_40_cov_1.0", 40, 60)
	fasta, inDir, outDir := layout(t, "maxbin2", "S2", asm, map[string]string{
		"bin.001.fa":      record(">NODE_1_length_300_cov_5.1", 300, 60),
		"bin.002.fa":      record(">NODE_3_length_120_cov_1.0", 120, 60),
		"bin.unbinned.fa": record(">NODE_2_length_200_cov_2.0", 200, 60),
	})

	if err := runStats(statsInput{Fasta: fasta, MinCtgLen: 100, InDir: inDir, OutDir: outDir}, quietConfig()); err != nil {
		t.Fatalf("runStats: %v", err)
	}

	stats := readCSV(t, filepath.Join(outDir, binStatsFile))
	if len(stats) != 2 || stats[0][2] != "001" || stats[1][2] != "002" {
		t.Fatalf("bin_stats = %v", stats)
	}
	s := readCSV(t, filepath.Join(outDir, binSummFile))[0]
	if s[0] != "S2" || s[1] != "maxbin2" || s[2] != "2" || s[3] != "420" || s[7] != "1" || s[8] != "200" {
		t.Fatalf("bin_summ = %v", s)
	}
}

func TestRunStatsMegahitHeaders(t *testing.T) {
	// len= values differ from the sequences so the header path is visible
	asm := record(">k141_1 flag=1 multi=4.0000 len=300", 300, 60) +
		record(">k141_2 flag=1 multi=2.0000 len=5000", 40, 60) +
		record(">k141_3 flag=0 multi=1.0000 len=90", 90, 60) +
		record(">k141_4 flag=1 multi=3.0000 len=250", 250, 60)
	fasta, inDir, outDir := layout(t, "semibin2", "S3", asm, map[string]string{
		"bin.1.fa": record(">k141_1 flag=1 multi=4.0000 len=300", 300, 60),
		"bin.2.fa": record(">k141_4 flag=1 multi=3.0000 len=250", 250, 60),
	})

	if err := runStats(statsInput{Fasta: fasta, MinCtgLen: 100, InDir: inDir, OutDir: outDir}, quietConfig()); err != nil {
		t.Fatalf("runStats: %v", err)
	}

	stats := readCSV(t, filepath.Join(outDir, binStatsFile))
	if len(stats) != 2 || stats[0][4] != "300" || stats[1][4] != "250" {
		t.Fatalf("bin_stats = %v", stats)
	}
	s := readCSV(t, filepath.Join(outDir, binSummFile))[0]
	if s[0] != "S3" || s[1] != "semibin2" || s[2] != "2" || s[3] != "550" {
		t.Fatalf("binned columns = %v", s)
	}
	// k141_3 (len=90) falls under the minimum; k141_2 counts with its header length
	if s[7] != "1" || s[8] != "5000" {
		t.Fatalf("unbinned columns = %v", s)
	}
	if math.Abs(mustFloat(t, s[9])-5000.0/5550.0) > eps {
		t.Fatalf("frac_unbinned = %v", s[9])
	}
}

func TestRunStatsExplicitNames(t *testing.T) {
	root := t.TempDir()
	fasta := writeFile(t, root, "asm.fa", record(">a", 10, 60)+record(">b", 30, 60))
	inDir := filepath.Join(root, "bins")
	writeFile(t, inDir, "bin.1.fa", record(">a", 10, 60))
	outDir := filepath.Join(root, "out")

	cfg := quietConfig()
	cfg.Sample, cfg.Binner = "sampleX", "concoct"
	if err := runStats(statsInput{Fasta: fasta, MinCtgLen: 0, InDir: inDir, OutDir: outDir}, cfg); err != nil {
		t.Fatalf("runStats: %v", err)
	}
	s := readCSV(t, filepath.Join(outDir, binSummFile))[0]
	if s[0] != "sampleX" || s[1] != "concoct" {
		t.Fatalf("names = %v", s[:2])
	}
}

func TestRunStatsErrors(t *testing.T) {
	fasta, inDir, outDir := layout(t, "metabat2", "S1", record(">a", 10, 60), map[string]string{
		"bin.1.fa": record(">a", 10, 60),
	})

	cases := []struct {
		name string
		in   statsInput
		cfg  func(*Config)
	}{
		{"missing fasta", statsInput{Fasta: fasta + ".missing", InDir: inDir, OutDir: outDir}, nil},
		{"missing bin dir", statsInput{Fasta: fasta, InDir: inDir + "_nope", OutDir: outDir}, nil},
		{"no bins matched", statsInput{Fasta: fasta, InDir: inDir, OutDir: outDir}, func(c *Config) { c.Pattern = "*.fasta" }},
		{"unknown strategy", statsInput{Fasta: fasta, InDir: inDir, OutDir: outDir}, func(c *Config) { c.Strategies = []string{"idba"} }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := quietConfig()
			if c.cfg != nil {
				c.cfg(&cfg)
			}
			if err := runStats(c.in, cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestStatsCommand(t *testing.T) {
	asm := record(">c100", 100, 60) + record(">c50", 50, 60)
	fasta, inDir, outDir := layout(t, "metabat2", "S1", asm, map[string]string{
		"bin.1.fa": record(">c100", 100, 60),
	})

	root := newRootCmd()
	root.SetArgs([]string{"stats", fasta, "20", inDir, outDir, "--progress=false", "--log-level", "error"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, name := range []string{binStatsFile, binSummFile} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestStatsCommandBadArgs(t *testing.T) {
	fasta, inDir, outDir := layout(t, "metabat2", "S1", record(">a", 10, 60), map[string]string{
		"bin.1.fa": record(">a", 10, 60),
	})
	cases := [][]string{
		{"stats", fasta, "twenty", inDir, outDir, "--progress=false", "--log-level", "error"},
		{"stats", fasta, "20", inDir},
		{"stats", fasta, "20", inDir, outDir, "--log-level", "loud"},
	}
	for _, args := range cases {
		root := newRootCmd()
		root.SetArgs(args)
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		if err := root.Execute(); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}
