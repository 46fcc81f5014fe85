// Package urllist reads newline-delimited page URLs.
package urllist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tesso57/rssminer/internal/domain/discovery"
)

// Parse returns the non-blank lines of r, trimmed. Lines starting with # are
// comments.
func Parse(r io.Reader) ([]string, error) {
	var urls []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan url list: %w", err)
	}
	return urls, nil
}

// Read parses the file at path.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &discovery.IOError{Op: "read", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	urls, err := Parse(f)
	if err != nil {
		return nil, &discovery.IOError{Op: "read", Path: path, Err: err}
	}
	return urls, nil
}
