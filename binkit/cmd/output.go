package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/csv"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

const (
	binStatsFile = "bin_stats.csv"
	binSummFile  = "bin_summ.csv"
)

var binStatsSchema = arrow.NewSchema([]arrow.Field{
	{Name: "sample", Type: arrow.BinaryTypes.String},
	{Name: "binner", Type: arrow.BinaryTypes.String},
	{Name: "bin_num", Type: arrow.BinaryTypes.String},
	{Name: "num_contigs", Type: arrow.PrimitiveTypes.Int64},
	{Name: "total_size", Type: arrow.PrimitiveTypes.Int64},
	{Name: "mean_bin_size", Type: arrow.BinaryTypes.String},
	{Name: "stdev_bin_size", Type: arrow.BinaryTypes.String},
}, nil)

var binSummSchema = arrow.NewSchema([]arrow.Field{
	{Name: "sample", Type: arrow.BinaryTypes.String},
	{Name: "binner", Type: arrow.BinaryTypes.String},
	{Name: "bin_count", Type: arrow.PrimitiveTypes.Int64},
	{Name: "total_binned_len", Type: arrow.PrimitiveTypes.Int64},
	{Name: "frac_binned", Type: arrow.BinaryTypes.String},
	{Name: "mean_bin_size", Type: arrow.BinaryTypes.String},
	{Name: "stdev_bin_size", Type: arrow.BinaryTypes.String},
	{Name: "unbinned_count", Type: arrow.PrimitiveTypes.Int64},
	{Name: "total_unbinned_len", Type: arrow.PrimitiveTypes.Int64},
	{Name: "frac_unbinned", Type: arrow.BinaryTypes.String},
	{Name: "mean_unbinned_size", Type: arrow.BinaryTypes.String},
	{Name: "stdev_unbinned_size", Type: arrow.BinaryTypes.String},
}, nil)

// decimal formats v in plain decimal notation, never with an exponent.
func decimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func binStatsRecord(mem memory.Allocator, rows []binStatsRow) arrow.Record {
	b := array.NewRecordBuilder(mem, binStatsSchema)
	defer b.Release()

	for _, r := range rows {
		b.Field(0).(*array.StringBuilder).Append(r.Sample)
		b.Field(1).(*array.StringBuilder).Append(r.Binner)
		b.Field(2).(*array.StringBuilder).Append(r.BinNum)
		b.Field(3).(*array.Int64Builder).Append(int64(r.Count))
		b.Field(4).(*array.Int64Builder).Append(int64(r.Total))
		b.Field(5).(*array.StringBuilder).Append(decimal(r.Mean))
		b.Field(6).(*array.StringBuilder).Append(decimal(r.Stdev))
	}
	return b.NewRecord()
}

func binSummRecord(mem memory.Allocator, row summaryRow) arrow.Record {
	b := array.NewRecordBuilder(mem, binSummSchema)
	defer b.Release()

	b.Field(0).(*array.StringBuilder).Append(row.Sample)
	b.Field(1).(*array.StringBuilder).Append(row.Binner)
	b.Field(2).(*array.Int64Builder).Append(int64(row.Binned.Count))
	b.Field(3).(*array.Int64Builder).Append(int64(row.Binned.Total))
	b.Field(4).(*array.StringBuilder).Append(decimal(row.FracBinned))
	b.Field(5).(*array.StringBuilder).Append(decimal(row.Binned.Mean))
	b.Field(6).(*array.StringBuilder).Append(decimal(row.Binned.Stdev))
	b.Field(7).(*array.Int64Builder).Append(int64(row.Unbinned.Count))
	b.Field(8).(*array.Int64Builder).Append(int64(row.Unbinned.Total))
	b.Field(9).(*array.StringBuilder).Append(decimal(row.FracUnbinned))
	b.Field(10).(*array.StringBuilder).Append(decimal(row.Unbinned.Mean))
	b.Field(11).(*array.StringBuilder).Append(decimal(row.Unbinned.Stdev))
	return b.NewRecord()
}

// writeRecord writes rec as headerless CSV.
func writeRecord(w io.Writer, rec arrow.Record) error {
	cw := csv.NewWriter(w, rec.Schema(), csv.WithHeader(false), csv.WithComma(','))
	if err := cw.Write(rec); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if err := cw.Flush(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv writer: %w", err)
	}
	return nil
}

func writeTable(outDir, name string, rec arrow.Record) error {
	f, err := createOutput(outDir, name)
	if err != nil {
		return err
	}
	if err := writeRecord(f, rec); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

func writeBinStats(outDir string, rows []binStatsRow) error {
	rec := binStatsRecord(memory.DefaultAllocator, rows)
	defer rec.Release()
	return writeTable(outDir, binStatsFile, rec)
}

func writeBinSumm(outDir string, row summaryRow) error {
	rec := binSummRecord(memory.DefaultAllocator, row)
	defer rec.Release()
	return writeTable(outDir, binSummFile, rec)
}
