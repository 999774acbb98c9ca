package grid

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads one grid row per line from r.
// Surrounding whitespace on each line is ignored, and blank lines are only
// allowed after the last row. Cells that fail to decode and ragged rows yield
// ErrMalformedGrid with the offending line and column.
func Parse(r io.Reader, opts ...ParseOption) (*Grid, error) {
	cfg := DefaultParseOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		rows    [][]uint32
		blankAt int // line number of the first blank line seen, 0 if none
		lineNo  int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			if blankAt == 0 {
				blankAt = lineNo
			}
			continue
		}
		if blankAt != 0 && len(rows) > 0 {
			return nil, fmt.Errorf("%w: blank line %d inside grid", ErrMalformedGrid, blankAt)
		}
		blankAt = 0

		row, err := decodeLine(line, lineNo, cfg.Format)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d",
				ErrMalformedGrid, lineNo, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grid: read input: %w", err)
	}

	return New(rows)
}

// ParseString is Parse over an in-memory string.
func ParseString(s string, opts ...ParseOption) (*Grid, error) {
	return Parse(strings.NewReader(s), opts...)
}

func decodeLine(line string, lineNo int, f Format) ([]uint32, error) {
	switch f {
	case Fields:
		fields := strings.Fields(line)
		row := make([]uint32, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseUint(field, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d field %d: %q is not a cost",
					ErrMalformedGrid, lineNo, i+1, field)
			}
			row[i] = uint32(v)
		}
		return row, nil
	default:
		row := make([]uint32, 0, len(line))
		col := 0
		for _, ch := range line {
			col++
			if ch < '0' || ch > '9' {
				return nil, fmt.Errorf("%w: line %d column %d: %q is not a digit",
					ErrMalformedGrid, lineNo, col, ch)
			}
			row = append(row, uint32(ch-'0'))
		}
		return row, nil
	}
}
