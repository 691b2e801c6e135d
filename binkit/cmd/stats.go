package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Doomsbay/BinKit/binkit/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type statsInput struct {
	Fasta     string
	MinCtgLen int
	InDir     string
	OutDir    string
}

func newStatsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "stats <fasta> <min_ctg_len> <in_dir> <out_dir>",
		Short: "Per-bin contig statistics and binned vs. unbinned assembly fractions",
		Long: `Summarize the bins a binner produced from one assembly.

Writes bin_stats.csv (one row per bin) and bin_summ.csv (one overall row) to
out_dir. Unbinned contigs at or below min_ctg_len are left out of the summary.
Without --sample/--binner the names are read from in_dir laid out as
.../<binner>/<sample>/<bins>.`,
		Example: "  binkit stats assembly.fa 1500 results/metabat2/S1/bins out/metabat2/S1",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfgPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, cfgPath)
			if err != nil {
				return err
			}
			level, err := logger.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			if err := logger.InitLogger(level); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			minLen, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil {
				return fmt.Errorf("min_ctg_len %q is not an integer", args[1])
			}
			return runStats(statsInput{
				Fasta:     args[0],
				MinCtgLen: minLen,
				InDir:     args[2],
				OutDir:    args[3],
			}, cfg)
		},
	}

	f := c.Flags()
	f.String("config", "", "Optional YAML config file")
	f.String("sample", "", "Sample name (default: second-to-last component of in_dir)")
	f.String("binner", "", "Binner name (default: third-to-last component of in_dir)")
	f.String("pattern", defaultPattern, "Glob for bin FASTA files inside in_dir")
	f.String("exclude", defaultExclude, "Skip bin files whose name contains this")
	f.StringSlice("strategies", defaultStrategies, "Header length schemes to try, in order (spades, megahit)")
	f.Bool("progress", true, "Show progress bar")
	f.String("log-level", defaultLogLevel, "Log level (debug, info, warn, error)")
	return c
}

func runStats(in statsInput, cfg Config) error {
	if !fileExists(in.Fasta) {
		return fmt.Errorf("assembly not found: %s", in.Fasta)
	}
	if !dirExists(in.InDir) {
		return fmt.Errorf("bin dir not found: %s", in.InDir)
	}
	sample, binner, err := sampleAndBinner(in.InDir, cfg.Sample, cfg.Binner)
	if err != nil {
		return err
	}
	schemes, err := lookupSchemes(cfg.Strategies)
	if err != nil {
		return err
	}
	logger.Info("bin stats", zap.String("sample", sample), zap.String("binner", binner), zap.String("bins", in.InDir))

	assembly, err := readHeaders(in.Fasta)
	if err != nil {
		return err
	}

	scan, err := scanBinDir(in.InDir, cfg.Pattern, cfg.Exclude, cfg.Progress)
	if err != nil {
		return err
	}
	if err := writeBinStats(in.OutDir, binStatsRows(sample, binner, scan.bins)); err != nil {
		return err
	}

	unbinned := unbinnedHeaders(assembly, scan.headers)
	raw, err := resolveUnbinned(in.Fasta, unbinned, scan.headers, schemes)
	if err != nil {
		return fmt.Errorf("unbinned lengths: %w", err)
	}
	kept := filterMinLength(raw, in.MinCtgLen)
	logger.Infof("assembly contigs=%d binned=%d unbinned=%d kept over %d bp=%d",
		len(assembly), len(scan.lengths), len(unbinned), in.MinCtgLen, len(kept))

	summ := summarize(sample, binner, scan.lengths, kept)
	if err := writeBinSumm(in.OutDir, summ); err != nil {
		return err
	}
	logger.Info("wrote outputs",
		zap.Int("bins", len(scan.bins)),
		zap.Float64("frac_binned", summ.FracBinned),
		zap.String("out_dir", in.OutDir))
	return nil
}
