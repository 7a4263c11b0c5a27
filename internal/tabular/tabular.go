// Package tabular reads and writes the plain-text profile format used by
// the command-line tools:
//
//	# comment
//	Energy: 6 MV
//	Jaws: -5, 5
//	-10.0  0.021
//	-9.5   0.024
//
// Lines of the form "key: value" before the first sample row are
// metadata; a comma separated value is stored as a tuple. Sample rows hold
// a position and a value separated by whitespace, commas or semicolons.
package tabular

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-profile/profile"
)

// ErrSyntax reports a line that is neither metadata nor a sample row.
var ErrSyntax = errors.New("tabular: syntax error")

// Read parses one profile from r.
func Read(r io.Reader) (*profile.Profile, error) {
	meta := profile.Metadata{}
	var x, y []float64

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		if text == "" {
			continue
		}

		if len(x) == 0 {
			if key, value, ok := metaLine(text); ok {
				meta[key] = splitTuple(value)
				continue
			}
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want position and value, got %q", ErrSyntax, line, text)
		}
		pos, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrSyntax, line, err)
		}
		val, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrSyntax, line, err)
		}
		x = append(x, pos)
		y = append(y, val)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tabular: read: %w", err)
	}
	if len(meta) == 0 {
		meta = nil
	}
	return profile.New(x, y, meta)
}

// metaLine splits "key: value" when the key does not parse as a number.
func metaLine(text string) (string, string, bool) {
	key, value, ok := strings.Cut(text, ":")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	if _, err := strconv.ParseFloat(key, 64); err == nil {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

func splitTuple(value string) []string {
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Write emits p in the format accepted by Read. Metadata keys are sorted.
func Write(w io.Writer, p *profile.Profile) error {
	bw := bufio.NewWriter(w)
	meta := p.Metadata()
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(bw, "%s: %s\n", k, strings.Join(meta[k], ", ")); err != nil {
			return err
		}
	}
	for _, pt := range p.Points() {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n",
			strconv.FormatFloat(pt.X, 'g', -1, 64),
			strconv.FormatFloat(pt.Y, 'g', -1, 64),
		); err != nil {
			return err
		}
	}
	return bw.Flush()
}
