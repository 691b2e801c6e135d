package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// contig is one FASTA record reduced to its trimmed header line (including the
// leading '>') and the summed length of its sequence lines.
type contig struct {
	header string
	length int
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 64*1024*1024)
	return scanner
}

// scanContigs calls onContig once per record, in file order. Lines before the
// first header belong to no record and are ignored.
func scanContigs(r io.Reader, onContig func(contig) error) error {
	scanner := newLineScanner(r)

	var cur *contig
	flush := func() error {
		if cur == nil {
			return nil
		}
		c := *cur
		cur = nil
		return onContig(c)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return err
			}
			cur = &contig{header: strings.TrimSpace(line)}
			continue
		}
		if cur != nil {
			cur.length += len(strings.TrimSpace(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan fasta: %w", err)
	}
	return flush()
}

// readHeaders returns every header line of the FASTA at path, in file order.
func readHeaders(path string) ([]string, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, fmt.Errorf("open assembly: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	var headers []string
	scanner := newLineScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			headers = append(headers, strings.TrimSpace(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan assembly: %w", err)
	}
	return headers, nil
}

// firstLine returns the first line of path with surrounding whitespace trimmed.
func firstLine(path string) (string, error) {
	in, err := openInput(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = in.Close()
	}()

	scanner := newLineScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read first line: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// unbinnedLengths re-scans the assembly and returns the length of every contig
// whose header is not in binned, in file order.
func unbinnedLengths(binned map[string]struct{}, path string) ([]int, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, fmt.Errorf("open assembly: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	var lengths []int
	err = scanContigs(in, func(c contig) error {
		if _, ok := binned[c.header]; !ok {
			lengths = append(lengths, c.length)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lengths, nil
}
