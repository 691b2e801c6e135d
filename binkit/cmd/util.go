package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var errCompressed = errors.New("compressed input is not supported")

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func field(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

func openInput(path string) (io.ReadCloser, error) {
	if strings.HasSuffix(path, ".gz") {
		return nil, fmt.Errorf("%s: %w", path, errCompressed)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func createOutput(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// binNumber returns the second dot-delimited field of a bin file name, so
// "bin.12.fa" yields "12".
func binNumber(path string) (string, error) {
	base := filepath.Base(path)
	parts := strings.Split(base, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("bin file %q: no bin number field", base)
	}
	return parts[1], nil
}

// sampleAndBinner reads the sample and binner names off a bin directory laid out
// as .../<binner>/<sample>/<bins>. Explicit names win over the path.
func sampleAndBinner(inDir, sample, binner string) (string, string, error) {
	if sample != "" && binner != "" {
		return sample, binner, nil
	}
	parts := strings.Split(inDir, "/")
	if len(parts) < 3 {
		return "", "", fmt.Errorf("bin dir %q: need at least 3 path components to derive sample and binner", inDir)
	}
	if sample == "" {
		sample = field(parts, len(parts)-2)
	}
	if binner == "" {
		binner = field(parts, len(parts)-3)
	}
	return sample, binner, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
