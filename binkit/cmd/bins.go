package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Doomsbay/BinKit/binkit/logger"
	"go.uber.org/zap"
)

// binRecord holds the contigs of one bin file.
type binRecord struct {
	number  string
	path    string
	contigs []contig
}

func (b binRecord) lengths() []int {
	out := make([]int, len(b.contigs))
	for i, c := range b.contigs {
		out[i] = c.length
	}
	return out
}

type binScan struct {
	bins    []binRecord
	headers map[string]struct{}
	lengths []int
}

// binFiles lists the bin FASTAs in dir matching pattern, minus any whose base
// name contains exclude.
func binFiles(dir, pattern, exclude string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob bins: %w", err)
	}
	files := matches[:0]
	for _, m := range matches {
		if exclude != "" && strings.Contains(filepath.Base(m), exclude) {
			continue
		}
		files = append(files, m)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no bin files matching %q in %s", pattern, dir)
	}
	return files, nil
}

func scanBinDir(dir, pattern, exclude string, showProgress bool) (binScan, error) {
	files, err := binFiles(dir, pattern, exclude)
	if err != nil {
		return binScan{}, err
	}

	scan := binScan{headers: make(map[string]struct{})}
	bar := newProgress(len(files), showProgress, "bins")
	for _, path := range files {
		b, err := scanBinFile(path)
		if err != nil {
			return binScan{}, err
		}
		for _, c := range b.contigs {
			scan.headers[c.header] = struct{}{}
			scan.lengths = append(scan.lengths, c.length)
		}
		scan.bins = append(scan.bins, b)
		logger.Debug("scanned bin", zap.String("bin", b.number), zap.String("path", b.path), zap.Int("contigs", len(b.contigs)))
		bar.increment()
	}
	bar.finish()
	return scan, nil
}

func scanBinFile(path string) (binRecord, error) {
	num, err := binNumber(path)
	if err != nil {
		return binRecord{}, err
	}
	in, err := openInput(path)
	if err != nil {
		return binRecord{}, fmt.Errorf("open bin: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	b := binRecord{number: num, path: path}
	err = scanContigs(in, func(c contig) error {
		b.contigs = append(b.contigs, c)
		return nil
	})
	if err != nil {
		return binRecord{}, fmt.Errorf("bin %s: %w", b.path, err)
	}
	return b, nil
}
