package loader

import (
	"bytes"
	"fmt"
	"github.com/edsrzf/mmap-go"
	"github.com/gostonefire/parcelmap/errs"
	"io"
	"os"
	"strconv"
	"strings"
)

// fieldSeparator - Fields are separated by a plain comma, there is no quoting or escaping
const fieldSeparator = ","

// fieldsPerLine - destination, weight and valuation
const fieldsPerLine = 3

// Line - One well-formed line from a load file
type Line struct {
	No          int
	Destination string
	Weight      int
	Valuation   float64
}

// MalformedLine - A line that was skipped, with the reason as an error of type errs.MalformedInput
type MalformedLine struct {
	No   int
	Text string
	Err  error
}

// ParseFile - Memory maps the named file read only and parses it, see Parse.
//   - name is the path to a comma-delimited parcel file
//   - emit is called once per well-formed line in file order
//
// It returns:
//   - malformed is every skipped line in file order
//   - err is a standard error if the file could not be read or if emit failed
func ParseFile(name string, emit func(Line) error) (malformed []MalformedLine, err error) {
	f, err := os.Open(name)
	if err != nil {
		err = fmt.Errorf("error while opening parcel file: %w", err)
		return
	}
	defer func(f *os.File) { _ = f.Close() }(f)

	stat, err := f.Stat()
	if err != nil {
		err = fmt.Errorf("error while reading parcel file info: %w", err)
		return
	}

	// Zero length files can not be mapped
	if stat.Size() == 0 {
		return
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		err = fmt.Errorf("error while mapping parcel file: %w", err)
		return
	}
	defer func(mm mmap.MMap) { _ = mm.Unmap() }(mm)

	return Parse(mm, emit)
}

// ParseReader - Reads everything from r and parses it, see Parse.
func ParseReader(r io.Reader, emit func(Line) error) (malformed []MalformedLine, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		err = fmt.Errorf("error while reading parcels: %w", err)
		return
	}

	return Parse(data, emit)
}

// Parse - Splits data into lines of the form destination,weight,valuation and hands every well-formed line to emit.
// Blank lines are ignored. Lines without exactly three fields, with an empty destination, or with a weight or
// valuation that does not parse are collected as malformed and parsing continues. A comma inside a field can not
// be expressed and makes the line malformed. Parsing stops at the first error returned by emit.
// Strings handed to emit are copies, data may be released after Parse returns.
func Parse(data []byte, emit func(Line) error) (malformed []MalformedLine, err error) {
	lineNo := 0
	for len(data) > 0 {
		var raw []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			raw, data = data[:i], data[i+1:]
		} else {
			raw, data = data, nil
		}
		lineNo++

		text := strings.TrimRight(string(raw), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		line, lineErr := parseLine(text)
		if lineErr != nil {
			malformed = append(malformed, MalformedLine{No: lineNo, Text: text, Err: lineErr})
			continue
		}
		line.No = lineNo

		if err = emit(line); err != nil {
			err = fmt.Errorf("error while adding line %d: %w", lineNo, err)
			return
		}
	}

	return
}

// parseLine - Parses a single non-blank line
func parseLine(text string) (line Line, err error) {
	fields := strings.Split(text, fieldSeparator)
	if len(fields) != fieldsPerLine {
		err = errs.MalformedInput{Msg: fmt.Sprintf("expected %d fields, got %d", fieldsPerLine, len(fields))}
		return
	}

	line.Destination = strings.TrimSpace(fields[0])
	if line.Destination == "" {
		err = errs.MalformedInput{Msg: "missing destination"}
		return
	}

	weight := strings.TrimSpace(fields[1])
	if weight == "" {
		err = errs.MalformedInput{Msg: "missing weight"}
		return
	}
	line.Weight, err = strconv.Atoi(weight)
	if err != nil {
		err = errs.MalformedInput{Msg: fmt.Sprintf("weight %q is not an integer", weight)}
		return
	}

	valuation := strings.TrimSpace(fields[2])
	if valuation == "" {
		err = errs.MalformedInput{Msg: "missing valuation"}
		return
	}
	line.Valuation, err = strconv.ParseFloat(valuation, 64)
	if err != nil {
		err = errs.MalformedInput{Msg: fmt.Sprintf("valuation %q is not a number", valuation)}
		return
	}

	return
}
