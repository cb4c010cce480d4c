// Package welllog reads well-log files into borehole log curves. The
// package ships a LAS 2.0 ASCII backend; alternate readers plug in
// behind the Parser interface.
package welllog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/subsurface-tools/gobore/borehole"
)

// ErrUnsupportedFormat reports a file whose header cannot be parsed
// or whose variant this reader does not handle.
var ErrUnsupportedFormat = errors.New("unsupported log format")

// Parser is the narrow capability a log-file backend must provide.
type Parser interface {
	Parse(r io.Reader) (*File, error)
}

// HeaderEntry is one mnemonic line from a LAS header section.
type HeaderEntry struct {
	Mnemonic    string
	Unit        string
	Value       string
	Description string
}

// File is a parsed well-log file: named curves plus the well-header
// and parameter metadata that came with them.
type File struct {
	Version float64
	Wrap    bool

	// Start, Stop and Step are the declared depth range, reoriented
	// to match the curves when a descending file is flipped; Null is
	// the declared null value, already replaced by NaN in the curves.
	Start float64
	Stop  float64
	Step  float64
	Null  float64

	Well   []HeaderEntry
	Params []HeaderEntry

	order  []string
	curves map[string]*borehole.LogCurve
}

// Curves returns all curves (excluding the depth index) in file
// order.
func (f *File) Curves() []*borehole.LogCurve {
	out := make([]*borehole.LogCurve, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, f.curves[name])
	}
	return out
}

// Curve returns the named curve, or borehole.ErrNotFound.
func (f *File) Curve(name string) (*borehole.LogCurve, error) {
	c, ok := f.curves[name]
	if !ok {
		return nil, fmt.Errorf("curve %q: %w", name, borehole.ErrNotFound)
	}
	return c, nil
}

// CurveNames returns curve mnemonics in file order.
func (f *File) CurveNames() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// WellEntry returns the well-header entry for a mnemonic, or
// borehole.ErrNotFound.
func (f *File) WellEntry(mnemonic string) (HeaderEntry, error) {
	for _, e := range f.Well {
		if e.Mnemonic == mnemonic {
			return e, nil
		}
	}
	return HeaderEntry{}, fmt.Errorf("well header %q: %w", mnemonic, borehole.ErrNotFound)
}

// LASParser reads LAS 1.2/2.0 ASCII files in unwrapped mode.
type LASParser struct{}

var _ Parser = LASParser{}

type curveInfo struct {
	mnemonic string
	unit     string
}

// Parse reads a LAS file. Files without a parseable version section,
// with an unsupported version, or in wrapped mode return
// ErrUnsupportedFormat.
func (LASParser) Parse(r io.Reader) (*File, error) {
	f := &File{
		Null:   -999.25,
		curves: map[string]*borehole.LogCurve{},
	}

	var (
		section    byte // 'V', 'W', 'C', 'P', 'A', 'O'
		sawVersion bool
		infos      []curveInfo
		columns    [][]float64
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if strings.HasPrefix(text, "~") {
			if len(text) < 2 {
				return nil, fmt.Errorf("%w: bare section marker at line %d", ErrUnsupportedFormat, line)
			}
			section = text[1] &^ 0x20 // upper-case the section letter
			if section == 'A' && !sawVersion {
				return nil, fmt.Errorf("%w: data section before version section", ErrUnsupportedFormat)
			}
			continue
		}

		switch section {
		case 'V':
			entry, err := parseHeaderLine(text)
			if err != nil {
				return nil, fmt.Errorf("%w: version section line %d: %v", ErrUnsupportedFormat, line, err)
			}
			switch entry.Mnemonic {
			case "VERS":
				v, err := strconv.ParseFloat(entry.Value, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: bad VERS value %q", ErrUnsupportedFormat, entry.Value)
				}
				if v != 1.2 && v != 2.0 {
					return nil, fmt.Errorf("%w: LAS version %g", ErrUnsupportedFormat, v)
				}
				f.Version = v
				sawVersion = true
			case "WRAP":
				f.Wrap = strings.EqualFold(entry.Value, "YES")
				if f.Wrap {
					return nil, fmt.Errorf("%w: wrapped data mode", ErrUnsupportedFormat)
				}
			}
		case 'W':
			entry, err := parseHeaderLine(text)
			if err != nil {
				return nil, fmt.Errorf("%w: well section line %d: %v", ErrUnsupportedFormat, line, err)
			}
			f.Well = append(f.Well, entry)
			if v, err := strconv.ParseFloat(entry.Value, 64); err == nil {
				switch entry.Mnemonic {
				case "STRT":
					f.Start = v
				case "STOP":
					f.Stop = v
				case "STEP":
					f.Step = v
				case "NULL":
					f.Null = v
				}
			}
		case 'C':
			entry, err := parseHeaderLine(text)
			if err != nil {
				return nil, fmt.Errorf("%w: curve section line %d: %v", ErrUnsupportedFormat, line, err)
			}
			infos = append(infos, curveInfo{mnemonic: entry.Mnemonic, unit: entry.Unit})
			columns = append(columns, nil)
		case 'P':
			entry, err := parseHeaderLine(text)
			if err != nil {
				return nil, fmt.Errorf("%w: parameter section line %d: %v", ErrUnsupportedFormat, line, err)
			}
			f.Params = append(f.Params, entry)
		case 'A':
			fields := strings.Fields(text)
			if len(fields) != len(infos) {
				return nil, fmt.Errorf("%w: line %d has %d values, want %d", ErrUnsupportedFormat, line, len(fields), len(infos))
			}
			for i, fld := range fields {
				v, err := strconv.ParseFloat(fld, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: bad value %q at line %d", ErrUnsupportedFormat, fld, line)
				}
				if v == f.Null {
					v = math.NaN()
				}
				columns[i] = append(columns[i], v)
			}
		case 'O':
			// Other/comment section, ignored.
		default:
			return nil, fmt.Errorf("%w: data before any section header at line %d", ErrUnsupportedFormat, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	if !sawVersion {
		return nil, fmt.Errorf("%w: missing version section", ErrUnsupportedFormat)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("%w: missing curve section", ErrUnsupportedFormat)
	}
	if len(columns[0]) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrUnsupportedFormat)
	}

	depths := columns[0]
	// LAS files logged bottom-up store descending depths; flip so
	// curve depths are strictly increasing.
	if len(depths) > 1 && depths[0] > depths[len(depths)-1] {
		for _, col := range columns {
			reverse(col)
		}
		// Keep the declared range oriented like the curves.
		f.Start, f.Stop = f.Stop, f.Start
		f.Step = -f.Step
	}

	for i := 1; i < len(infos); i++ {
		samples := make([]borehole.Sample, len(depths))
		for j := range depths {
			samples[j] = borehole.Sample{Depth: depths[j], Value: columns[i][j]}
		}
		c, err := borehole.NewLogCurve(infos[i].mnemonic, infos[i].unit, samples)
		if err != nil {
			return nil, fmt.Errorf("%w: curve %q: %v", ErrUnsupportedFormat, infos[i].mnemonic, err)
		}
		f.order = append(f.order, infos[i].mnemonic)
		f.curves[infos[i].mnemonic] = c
	}

	return f, nil
}

// Parse reads a LAS file with the default backend.
func Parse(r io.Reader) (*File, error) {
	return LASParser{}.Parse(r)
}

// parseHeaderLine splits a LAS header line of the form
// "MNEM.UNIT  VALUE : DESCRIPTION".
func parseHeaderLine(text string) (HeaderEntry, error) {
	dot := strings.Index(text, ".")
	if dot < 0 {
		return HeaderEntry{}, fmt.Errorf("no mnemonic delimiter in %q", text)
	}
	var e HeaderEntry
	e.Mnemonic = strings.TrimSpace(text[:dot])
	if e.Mnemonic == "" {
		return HeaderEntry{}, fmt.Errorf("empty mnemonic in %q", text)
	}

	rest := text[dot+1:]
	// Unit runs from the dot to the first whitespace.
	unitEnd := strings.IndexFunc(rest, func(r rune) bool { return r == ' ' || r == '\t' })
	if unitEnd < 0 {
		e.Unit = strings.TrimSpace(rest)
		return e, nil
	}
	e.Unit = rest[:unitEnd]
	rest = rest[unitEnd:]

	// Value runs to the last colon; description follows it.
	if colon := strings.LastIndex(rest, ":"); colon >= 0 {
		e.Value = strings.TrimSpace(rest[:colon])
		e.Description = strings.TrimSpace(rest[colon+1:])
	} else {
		e.Value = strings.TrimSpace(rest)
	}
	return e, nil
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
