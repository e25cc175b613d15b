package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// namePrefix introduces a catalog entry; everything after it on the line is
// the query name, everything up to the next marker is the query body.
const namePrefix = "-- name: "

type CatalogEntry struct {
	Name     string
	Body     string
	Position int
}

const (
	stateSeeking = iota
	stateInBody
)

// ParseCatalog extracts the ordered query catalog from a marker-delimited
// corpus. Bodies keep their internal lines byte-for-byte; only leading and
// trailing blank lines are trimmed. A corpus without markers yields an
// empty catalog.
func ParseCatalog(r io.Reader) ([]CatalogEntry, error) {
	entries := make([]CatalogEntry, 0)
	seen := make(map[string]bool)
	state := stateSeeking
	var name string
	var body []string

	flush := func() {
		entries = append(entries, CatalogEntry{
			Name:     name,
			Body:     trimBlankLines(body),
			Position: len(entries),
		})
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if suffix, ok := strings.CutPrefix(line, namePrefix); ok {
			next := strings.TrimSpace(suffix)
			if next == "" {
				return nil, fmt.Errorf("marker line %q has no query name", line)
			}
			if seen[next] {
				return nil, fmt.Errorf("duplicate query name %v", next)
			}
			seen[next] = true
			if state == stateInBody {
				flush()
			}
			name, body, state = next, nil, stateInBody
			continue
		}
		if state == stateInBody {
			body = append(body, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if state == stateInBody {
		flush()
	}
	return entries, nil
}

func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

func LoadCatalog(path string) ([]CatalogEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	entries, err := ParseCatalog(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %v: %w", path, err)
	}
	return entries, nil
}

// SelectEntries resolves the CLI query selector: "all" keeps the whole
// catalog, a number N picks the entry named qN.
func SelectEntries(catalog []CatalogEntry, selector string) ([]CatalogEntry, error) {
	if selector == "all" {
		return catalog, nil
	}
	name := "q" + selector
	for _, entry := range catalog {
		if entry.Name == name {
			return []CatalogEntry{entry}, nil
		}
	}
	return nil, fmt.Errorf("unknown query selector %v (expected 'all' or a query number)", selector)
}
