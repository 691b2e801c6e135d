package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// record renders one FASTA record with n bases wrapped at width.
func record(header string, n, width int) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	bases := "ACGT"
	for i := 0; i < n; i += width {
		end := i + width
		if end > n {
			end = n
		}
		for j := i; j < end; j++ {
			b.WriteByte(bases[j%4])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
