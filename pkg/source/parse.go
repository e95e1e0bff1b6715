package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/layerroute/pkg/errors"
)

// Section markers, matched case-insensitively.
const (
	nodeEdgeMarker     = "# number of l1 edges"
	categoryEdgeMarker = "# number of l2 edges"
)

var (
	l1Marker       = regexp.MustCompile(`L1\s*\|`)
	l2Marker       = regexp.MustCompile(`L2\s*\|`)
	categoryMarker = regexp.MustCompile(`encode_level:\s*2\s*\|`)
)

const (
	categoryEnd = "Connected"
	codeEnd     = "#"
)

// maxLineSize bounds a single source line. Node lines carry long labels.
const maxLineSize = 16 * 1024 * 1024

// LoadNodeFile opens and parses File A at path.
func LoadNodeFile(path string) (*NodeSource, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ParseNodes(f, filepath.Base(path))
}

// LoadCategoryFile opens and parses File B at path.
func LoadCategoryFile(path string) (*CategorySource, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ParseCategories(f, filepath.Base(path))
}

// ParseNodes reads File A from r. The name is used in diagnostics only.
func ParseNodes(r io.Reader, name string) (*NodeSource, error) {
	lines, err := readLines(r, name)
	if err != nil {
		return nil, err
	}

	n, err := parseCount(lines, name)
	if err != nil {
		return nil, err
	}
	if len(lines) < 1+n {
		return nil, malformed(name, len(lines), "declared %d nodes but file ends after %d records", n, len(lines)-1)
	}

	src := &NodeSource{Name: name, Records: make([]NodeRecord, 0, n)}
	seen := make([]bool, n)
	for i := 1; i <= n; i++ {
		rec, err := parseNodeLine(lines[i], name, i+1)
		if err != nil {
			return nil, err
		}
		if rec.ID < 0 || rec.ID >= n {
			return nil, malformed(name, i+1, "node id %d outside declared range [0, %d)", rec.ID, n)
		}
		if seen[rec.ID] {
			return nil, malformed(name, i+1, "duplicate node id %d", rec.ID)
		}
		seen[rec.ID] = true
		src.Records = append(src.Records, rec)
	}

	start, err := findSection(lines, 1+n, nodeEdgeMarker, name)
	if err != nil {
		return nil, err
	}
	src.Edges, src.Warnings = parseEdges(lines, start)
	return src, nil
}

// ParseCategories reads File B from r. The name is used in diagnostics only.
func ParseCategories(r io.Reader, name string) (*CategorySource, error) {
	lines, err := readLines(r, name)
	if err != nil {
		return nil, err
	}

	m, err := parseCount(lines, name)
	if err != nil {
		return nil, err
	}
	if len(lines) < 1+m {
		return nil, malformed(name, len(lines), "declared %d categories but file ends after %d records", m, len(lines)-1)
	}

	src := &CategorySource{
		Name:  name,
		Codes: make(map[int]string, m),
		Order: make([]int, 0, m),
	}
	for i := 1; i <= m; i++ {
		id, code, err := parseCategoryLine(lines[i], name, i+1)
		if err != nil {
			return nil, err
		}
		if _, dup := src.Codes[id]; dup {
			return nil, malformed(name, i+1, "duplicate category id %d", id)
		}
		src.Codes[id] = code
		src.Order = append(src.Order, id)
	}

	start, err := findSection(lines, 1+m, categoryEdgeMarker, name)
	if err != nil {
		return nil, err
	}
	src.Edges, src.Warnings = parseEdges(lines, start)
	return src, nil
}

func readLines(r io.Reader, name string) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return lines, nil
}

func parseCount(lines []string, name string) (int, error) {
	if len(lines) == 0 {
		return 0, malformed(name, 1, "empty file")
	}
	fields := strings.Fields(lines[0])
	if len(fields) == 0 {
		return 0, malformed(name, 1, "missing count")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, malformed(name, 1, "invalid count %q", fields[0])
	}
	return n, nil
}

func parseNodeLine(line, name string, lineNo int) (NodeRecord, error) {
	id, err := leadingInt(line)
	if err != nil {
		return NodeRecord{}, malformed(name, lineNo, "invalid node id")
	}

	l1 := l1Marker.FindStringIndex(line)
	if l1 == nil {
		return NodeRecord{}, malformed(name, lineNo, "missing %q delimiter", "L1 |")
	}
	l2 := l2Marker.FindStringIndex(line[l1[1]:])
	if l2 == nil {
		return NodeRecord{}, malformed(name, lineNo, "missing %q delimiter", "L2 |")
	}
	labelEnd := l1[1] + l2[0]
	codeStart := l1[1] + l2[1]

	end := strings.Index(line[codeStart:], codeEnd)
	if end < 0 {
		return NodeRecord{}, malformed(name, lineNo, "missing %q after category code", codeEnd)
	}

	label := strings.TrimSpace(line[l1[1]:labelEnd])
	return NodeRecord{
		ID:       id,
		Label:    strings.ReplaceAll(label, "|", "\n"),
		Category: strings.TrimSpace(line[codeStart : codeStart+end]),
	}, nil
}

func parseCategoryLine(line, name string, lineNo int) (int, string, error) {
	id, err := leadingInt(line)
	if err != nil {
		return 0, "", malformed(name, lineNo, "invalid category id")
	}

	loc := categoryMarker.FindStringIndex(line)
	if loc == nil {
		return 0, "", malformed(name, lineNo, "missing %q delimiter", "encode_level: 2 |")
	}
	end := strings.Index(line[loc[1]:], categoryEnd)
	if end < 0 {
		return 0, "", malformed(name, lineNo, "missing %q delimiter", categoryEnd)
	}
	return id, strings.TrimSpace(line[loc[1] : loc[1]+end]), nil
}

// findSection returns the index of the first line after the marker line.
func findSection(lines []string, from int, marker, name string) (int, error) {
	for i := from; i < len(lines); i++ {
		if strings.Contains(strings.ToLower(lines[i]), marker) {
			return i + 1, nil
		}
	}
	return 0, malformed(name, len(lines), "missing section marker %q", marker)
}

func parseEdges(lines []string, start int) ([]Pair, []Warning) {
	var (
		edges    []Pair
		warnings []Warning
	)
	for i := start; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) < 2 || !isDigits(fields[0]) {
			continue
		}
		u, errU := strconv.Atoi(fields[0])
		v, errV := strconv.Atoi(fields[1])
		if errU != nil || errV != nil {
			warnings = append(warnings, Warning{Line: i + 1, Text: lines[i], Reason: "second token is not an integer"})
			continue
		}
		edges = append(edges, Pair{U: u, V: v})
	}
	return edges, warnings
}

func leadingInt(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(fields[0])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func malformed(name string, line int, format string, args ...any) error {
	return errors.New(errors.ErrCodeMalformedSource, "%s:%d: %s", name, line, fmt.Sprintf(format, args...))
}
