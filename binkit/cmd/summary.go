package cmd

import (
	"math"

	"github.com/Doomsbay/BinKit/binkit/logger"
	"go.uber.org/zap"
)

// lengthStats describes a distribution of contig lengths. Mean and Stdev are 0
// for an empty distribution; Stdev is the population standard deviation.
type lengthStats struct {
	Count int
	Total int
	Mean  float64
	Stdev float64
}

func describe(lengths []int) lengthStats {
	s := lengthStats{Count: len(lengths)}
	if s.Count == 0 {
		return s
	}
	for _, l := range lengths {
		s.Total += l
	}
	s.Mean = float64(s.Total) / float64(s.Count)
	var ss float64
	for _, l := range lengths {
		d := float64(l) - s.Mean
		ss += d * d
	}
	s.Stdev = math.Sqrt(ss / float64(s.Count))
	return s
}

type binStatsRow struct {
	Sample string
	Binner string
	BinNum string
	lengthStats
}

type summaryRow struct {
	Sample       string
	Binner       string
	Binned       lengthStats
	Unbinned     lengthStats
	FracBinned   float64
	FracUnbinned float64
}

func binStatsRows(sample, binner string, bins []binRecord) []binStatsRow {
	rows := make([]binStatsRow, 0, len(bins))
	for _, b := range bins {
		rows = append(rows, binStatsRow{
			Sample:      sample,
			Binner:      binner,
			BinNum:      b.number,
			lengthStats: describe(b.lengths()),
		})
	}
	return rows
}

func summarize(sample, binner string, binned, unbinned []int) summaryRow {
	row := summaryRow{
		Sample:   sample,
		Binner:   binner,
		Binned:   describe(binned),
		Unbinned: describe(unbinned),
	}
	denom := row.Binned.Total + row.Unbinned.Total
	if denom == 0 {
		logger.Warn("assembly length over minimum is zero; fractions reported as 0")
		return row
	}
	row.FracBinned = float64(row.Binned.Total) / float64(denom)
	row.FracUnbinned = float64(row.Unbinned.Total) / float64(denom)
	logger.Debug("summary",
		zap.Int("binned_len", row.Binned.Total),
		zap.Int("unbinned_len", row.Unbinned.Total),
		zap.Float64("frac_binned", row.FracBinned))
	return row
}

// filterMinLength keeps lengths strictly greater than minLen.
func filterMinLength(lengths []int, minLen int) []int {
	out := make([]int, 0, len(lengths))
	for _, l := range lengths {
		if l > minLen {
			out = append(out, l)
		}
	}
	return out
}
