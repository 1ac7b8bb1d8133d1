// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package arff

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const maxLineLen = 1 << 20

// Attribute is one column declaration from the file header.
type Attribute struct {
	Name string
	// Type is the declaration as written: NUMERIC, a {nominal,list}, etc.
	Type string
}

// File is a parsed ARFF file whose values are all small unsigned integers.
type File struct {
	Relation   string
	Attributes []Attribute
	// Rows holds one value per attribute, in declaration order.
	Rows [][]uint8
}

// ParseError reports a malformed line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("arff: line %d: %s", e.Line, e.Msg)
}

// Parse reads an ARFF file.  Every data value, numeric or nominal, must
// be an integer in [0,255]; quoted nominal values such as '7' are
// unquoted first.  Both dense and sparse ({index value, ...}) rows are
// accepted.  Comment lines starting with % and blank lines are skipped.
func Parse(r io.Reader) (*File, error) {
	f := &File{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineLen)

	inData := false
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '%' {
			continue
		}

		if !inData {
			if err := f.parseHeaderLine(line, lineNo, &inData); err != nil {
				return nil, err
			}
			continue
		}

		row, err := f.parseRow(line, lineNo)
		if err != nil {
			return nil, err
		}
		f.Rows = append(f.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("arff: line %d: %w", lineNo+1, err)
	}
	if !inData {
		return nil, &ParseError{Line: lineNo, Msg: "missing @data section"}
	}

	return f, nil
}

func (f *File) parseHeaderLine(line string, lineNo int, inData *bool) error {
	keyword, rest := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		keyword, rest = line[:i], strings.TrimSpace(line[i+1:])
	}

	switch strings.ToLower(keyword) {
	case "@relation":
		f.Relation = unquote(rest)
	case "@attribute":
		name, typ, ok := splitAttribute(rest)
		if !ok {
			return &ParseError{Line: lineNo, Msg: fmt.Sprintf("malformed attribute %q", rest)}
		}
		f.Attributes = append(f.Attributes, Attribute{Name: name, Type: typ})
	case "@data":
		if len(f.Attributes) == 0 {
			return &ParseError{Line: lineNo, Msg: "@data before any @attribute"}
		}
		*inData = true
	default:
		return &ParseError{Line: lineNo, Msg: fmt.Sprintf("unexpected header line %q", line)}
	}
	return nil
}

// splitAttribute separates a possibly quoted attribute name from its type.
func splitAttribute(s string) (name, typ string, ok bool) {
	if s == "" {
		return "", "", false
	}
	if q := s[0]; q == '\'' || q == '"' {
		end := strings.IndexByte(s[1:], q)
		if end < 0 {
			return "", "", false
		}
		name, typ = s[1:end+1], strings.TrimSpace(s[end+2:])
	} else {
		i := strings.IndexAny(s, " \t")
		if i < 0 {
			return "", "", false
		}
		name, typ = s[:i], strings.TrimSpace(s[i+1:])
	}
	return name, typ, name != "" && typ != ""
}

func (f *File) parseRow(line string, lineNo int) ([]uint8, error) {
	width := len(f.Attributes)
	row := make([]uint8, width)

	if line[0] == '{' {
		if line[len(line)-1] != '}' {
			return nil, &ParseError{Line: lineNo, Msg: "unterminated sparse row"}
		}
		body := strings.TrimSpace(line[1 : len(line)-1])
		if body == "" {
			return row, nil
		}
		for _, entry := range strings.Split(body, ",") {
			idxStr, valStr, ok := strings.Cut(strings.TrimSpace(entry), " ")
			if !ok {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("malformed sparse entry %q", entry)}
			}
			i, err := strconv.Atoi(idxStr)
			if err != nil || i < 0 || i >= width {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("sparse index %q out of range", idxStr)}
			}
			v, err := parseValue(valStr)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: err.Error()}
			}
			row[i] = v
		}
		return row, nil
	}

	fields := strings.Split(line, ",")
	if len(fields) != width {
		return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("got %d values, want %d", len(fields), width)}
	}
	for i, field := range fields {
		v, err := parseValue(field)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("column %d: %s", i+1, err)}
		}
		row[i] = v
	}
	return row, nil
}

func parseValue(s string) (uint8, error) {
	s = unquote(strings.TrimSpace(s))
	if s == "?" {
		return 0, fmt.Errorf("missing value")
	}
	if v, err := strconv.ParseUint(s, 10, 8); err == nil {
		return uint8(v), nil
	}
	// tolerate integral floats such as "255.0"
	fv, err := strconv.ParseFloat(s, 64)
	if err != nil || fv < 0 || fv > math.MaxUint8 || fv != math.Trunc(fv) {
		return 0, fmt.Errorf("value %q is not an integer in [0,255]", s)
	}
	return uint8(fv), nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
