package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind tells the navigator how to apply a path segment.
type SegmentKind uint8

const (
	// NameSegment is a bare dotted name: an index when it parses as an
	// integer, a key otherwise.
	NameSegment SegmentKind = iota
	// IndexSegment comes from bracket notation like "[2]".
	IndexSegment
	// KeySegment comes from quoted bracket notation like `["a.b"]`.
	KeySegment
)

// Segment is one step of a parsed path.
type Segment struct {
	Kind  SegmentKind
	Key   string
	Index int
}

// ParsePath parses "a.b[2].c", `a["x.y"]` and JSON Pointer ("/a/b/2")
// paths into segments. The empty path has no segments.
func ParsePath(path string) ([]Segment, error) {
	if path == "" {
		return nil, nil
	}
	if strings.HasPrefix(path, "/") {
		return parsePointer(path), nil
	}

	segments := make([]Segment, 0, strings.Count(path, ".")+1)
	i := 0
	for i < len(path) {
		switch path[i] {
		case '.':
			if i == 0 || i == len(path)-1 || path[i+1] == '.' {
				return nil, fmt.Errorf("empty segment at offset %d in %q", i, path)
			}
			i++
		case '[':
			seg, next, err := parseBracket(path, i)
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
			i = next
		default:
			end := i
			for end < len(path) && path[end] != '.' && path[end] != '[' {
				end++
			}
			segments = append(segments, Segment{Kind: NameSegment, Key: path[i:end]})
			i = end
		}
	}
	return segments, nil
}

// parseBracket parses the bracket group starting at path[start] and returns
// the offset just past its closing bracket.
func parseBracket(path string, start int) (Segment, int, error) {
	rest := path[start+1:]
	if strings.HasPrefix(rest, `"`) {
		quoted, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return Segment{}, 0, fmt.Errorf("unterminated quoted key at offset %d in %q", start, path)
		}
		key, _ := strconv.Unquote(quoted)
		after := start + 1 + len(quoted)
		if after >= len(path) || path[after] != ']' {
			return Segment{}, 0, fmt.Errorf("missing closing bracket at offset %d in %q", after, path)
		}
		return Segment{Kind: KeySegment, Key: key}, after + 1, nil
	}

	closeAt := strings.IndexByte(rest, ']')
	if closeAt < 0 {
		return Segment{}, 0, fmt.Errorf("missing closing bracket at offset %d in %q", start, path)
	}
	index, err := strconv.Atoi(strings.TrimSpace(rest[:closeAt]))
	if err != nil {
		return Segment{}, 0, fmt.Errorf("invalid array index %q in %q", rest[:closeAt], path)
	}
	return Segment{Kind: IndexSegment, Index: index}, start + 1 + closeAt + 1, nil
}

func parsePointer(path string) []Segment {
	parts := strings.Split(path[1:], "/")
	segments := make([]Segment, 0, len(parts))
	for _, part := range parts {
		segments = append(segments, Segment{Kind: NameSegment, Key: UnescapeJSONPointer(part)})
	}
	return segments
}

// UnescapeJSONPointer decodes the ~0 and ~1 escapes of a pointer token.
func UnescapeJSONPointer(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(s)
}

// SplitDotted splits a candidate key on '.', the only separator the key
// resolver recognizes.
func SplitDotted(key string) []string {
	return strings.Split(key, ".")
}

// ParseIndex parses s as a decimal integer index. A leading plus sign and
// whitespace are rejected, so "+1" and " 1" stay keys.
func ParseIndex(s string) (int, bool) {
	if s == "" || len(s) > 18 {
		return 0, false
	}
	if s[0] == '-' {
		if len(s) == 1 || s[1] == '-' {
			return 0, false
		}
		n, ok := ParseIndex(s[1:])
		return -n, ok
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
