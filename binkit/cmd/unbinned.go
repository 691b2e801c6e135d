package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Doomsbay/BinKit/binkit/logger"
	"go.uber.org/zap"
)

// headerLength recovers a contig length embedded in an assembler's header
// naming scheme, avoiding a second pass over the assembly.
type headerLength interface {
	Name() string
	// Detect reports whether the assembly's first line follows this scheme.
	Detect(firstLine string) bool
	Length(header string) (int, error)
}

// spadesHeader reads >NODE_1_length_28207_cov_4.594629.
type spadesHeader struct{}

func (spadesHeader) Name() string { return "spades" }

func (spadesHeader) Detect(firstLine string) bool {
	return strings.Contains(firstLine, "NODE")
}

func (spadesHeader) Length(header string) (int, error) {
	tok := field(strings.Split(header, "_"), 3)
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("spades header %q: bad length field %q", header, tok)
	}
	return n, nil
}

// megahitHeader reads >k141_1046 flag=1 multi=4.0000 len=388.
type megahitHeader struct{}

func (megahitHeader) Name() string { return "megahit" }

func (megahitHeader) Detect(firstLine string) bool {
	return strings.Contains(firstLine, "flag=1")
}

func (megahitHeader) Length(header string) (int, error) {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return 0, fmt.Errorf("megahit header %q: empty", header)
	}
	last := fields[len(fields)-1]
	_, val, ok := strings.Cut(last, "=")
	if !ok {
		return 0, fmt.Errorf("megahit header %q: no key=value length", header)
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("megahit header %q: bad length %q", header, val)
	}
	return n, nil
}

var headerSchemes = map[string]headerLength{
	"spades":  spadesHeader{},
	"megahit": megahitHeader{},
}

func lookupSchemes(names []string) ([]headerLength, error) {
	out := make([]headerLength, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		s, ok := headerSchemes[name]
		if !ok {
			return nil, fmt.Errorf("unknown header strategy %q", name)
		}
		out = append(out, s)
	}
	return out, nil
}

// unbinnedHeaders returns assembly headers absent from binned, keeping order.
func unbinnedHeaders(assembly []string, binned map[string]struct{}) []string {
	var out []string
	for _, h := range assembly {
		if _, ok := binned[h]; !ok {
			out = append(out, h)
		}
	}
	return out
}

// resolveUnbinned recovers the lengths of unbinned contigs. The first scheme
// that detects the assembly's first line wins; with none, the assembly is
// re-scanned.
func resolveUnbinned(fastaPath string, unbinned []string, binned map[string]struct{}, schemes []headerLength) ([]int, error) {
	first, err := firstLine(fastaPath)
	if err != nil {
		return nil, fmt.Errorf("sniff assembly: %w", err)
	}
	for _, s := range schemes {
		if !s.Detect(first) {
			continue
		}
		logger.Info("unbinned lengths from headers", zap.String("scheme", s.Name()), zap.Int("contigs", len(unbinned)))
		lengths := make([]int, 0, len(unbinned))
		for _, h := range unbinned {
			n, err := s.Length(h)
			if err != nil {
				return nil, err
			}
			lengths = append(lengths, n)
		}
		return lengths, nil
	}
	logger.Info("unbinned lengths by re-scanning assembly", zap.String("fasta", fastaPath))
	return unbinnedLengths(binned, fastaPath)
}
