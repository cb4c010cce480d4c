package boreholeml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/subsurface-tools/gobore/borehole"
)

const (
	nsBML = "http://www.infogeo.de/boreholeml/3.0"
	nsGML = "http://www.opengis.net/gml/3.2"
)

// PathPoint is one vertex of the exchanged borehole path. Coordinates
// are absolute: easting, northing and true vertical depth.
type PathPoint struct {
	Easting  float64
	Northing float64
	TVD      float64
}

// StratInterval is one stratigraphy interval of the exchanged
// document.
type StratInterval struct {
	From     float64
	To       float64
	RockName string
}

// Document is a decoded BoreholeML borehole feature.
type Document struct {
	ID         string
	Identifier string
	ShortName  string
	FullName   string

	SRSName string
	X, Y, Z float64

	TotalLength float64
	DepthUOM    string

	Language       string
	CodingStandard string
	CharacterSet   string
	ExportDate     string

	Path         []PathPoint
	Stratigraphy []StratInterval
}

// wire types for decoding. Only the root element name is matched with
// its namespace; children are matched by local name so any prefix
// choice in the input works.

type wireMeasure struct {
	Value string `xml:",chardata"`
	UOM   string `xml:"uom,attr"`
}

type wireDocument struct {
	XMLName    xml.Name    `xml:"http://www.infogeo.de/boreholeml/3.0 Borehole"`
	ID         string      `xml:"id,attr"`
	Identifier string      `xml:"identifier"`
	ShortName  string      `xml:"shortName>Name"`
	FullName   string      `xml:"fullName>Name"`
	Location   wireLoc     `xml:"location"`
	Total      wireMeasure `xml:"totalLength"`
	Language   string      `xml:"language>LanguageCode"`
	Coding     string      `xml:"codingStandard"`
	Charset    string      `xml:"characterSet"`
	ExportDate string      `xml:"exportDate"`
	Path       wirePath    `xml:"boreholePath"`
	Intervals  []wireIval  `xml:"interval>Interval"`
}

type wireLoc struct {
	Point struct {
		SRSName string `xml:"srsName,attr"`
		Pos     string `xml:"pos"`
	} `xml:"Point"`
}

type wirePath struct {
	Curve struct {
		PosList string `xml:"segments>LineStringSegment>posList"`
	} `xml:"Curve"`
}

type wireIval struct {
	From     string `xml:"from"`
	To       string `xml:"to"`
	RockName string `xml:"rockNameText"`
}

// Decode reads a BoreholeML borehole feature. A declared character
// set outside the codelist catalog returns ErrInvalidCode; an empty
// declaration is allowed.
func Decode(r io.Reader) (*Document, error) {
	var w wireDocument
	if err := xml.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode boreholeml document: %w", err)
	}

	charset := strings.TrimSpace(w.Charset)
	if charset != "" && !ValidCharset(charset) {
		return nil, fmt.Errorf("character set %q: %w", charset, ErrInvalidCode)
	}

	doc := &Document{
		ID:             w.ID,
		Identifier:     strings.TrimSpace(w.Identifier),
		ShortName:      strings.TrimSpace(w.ShortName),
		FullName:       strings.TrimSpace(w.FullName),
		SRSName:        w.Location.Point.SRSName,
		DepthUOM:       w.Total.UOM,
		Language:       strings.TrimSpace(w.Language),
		CodingStandard: strings.TrimSpace(w.Coding),
		CharacterSet:   charset,
		ExportDate:     strings.TrimSpace(w.ExportDate),
	}

	if v := strings.TrimSpace(w.Total.Value); v != "" {
		length, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("decode boreholeml document: bad totalLength %q", v)
		}
		doc.TotalLength = length
	}

	if pos := strings.TrimSpace(w.Location.Point.Pos); pos != "" {
		coords, err := parseFloats(pos)
		if err != nil {
			return nil, fmt.Errorf("decode boreholeml document: bad location pos: %w", err)
		}
		if len(coords) < 2 {
			return nil, fmt.Errorf("decode boreholeml document: location pos has %d coordinates", len(coords))
		}
		doc.X, doc.Y = coords[0], coords[1]
		if len(coords) > 2 {
			doc.Z = coords[2]
		}
	}

	if posList := strings.TrimSpace(w.Path.Curve.PosList); posList != "" {
		coords, err := parseFloats(posList)
		if err != nil {
			return nil, fmt.Errorf("decode boreholeml document: bad posList: %w", err)
		}
		if len(coords)%3 != 0 {
			return nil, fmt.Errorf("decode boreholeml document: posList has %d values, want a multiple of 3", len(coords))
		}
		for i := 0; i < len(coords); i += 3 {
			doc.Path = append(doc.Path, PathPoint{
				Easting:  coords[i],
				Northing: coords[i+1],
				TVD:      coords[i+2],
			})
		}
	}

	for i, ival := range w.Intervals {
		from, err := strconv.ParseFloat(strings.TrimSpace(ival.From), 64)
		if err != nil {
			return nil, fmt.Errorf("decode boreholeml document: interval %d: bad from %q", i, ival.From)
		}
		to, err := strconv.ParseFloat(strings.TrimSpace(ival.To), 64)
		if err != nil {
			return nil, fmt.Errorf("decode boreholeml document: interval %d: bad to %q", i, ival.To)
		}
		doc.Stratigraphy = append(doc.Stratigraphy, StratInterval{
			From:     from,
			To:       to,
			RockName: strings.TrimSpace(ival.RockName),
		})
	}

	return doc, nil
}

// Record converts the document into a borehole Record. Exchange
// metadata lands in the record's metadata map.
func (d *Document) Record() *borehole.Record {
	id := d.Identifier
	if id == "" {
		id = d.ID
	}
	name := d.FullName
	if name == "" {
		name = d.ShortName
	}

	r := borehole.New(id, name)
	r.SetLocation(d.X, d.Y, d.SRSName)
	r.Elevation = d.Z
	r.TotalDepth = d.TotalLength

	if d.ShortName != "" {
		r.Metadata["shortName"] = d.ShortName
	}
	if d.Language != "" {
		r.Metadata["language"] = d.Language
	}
	if d.CodingStandard != "" {
		r.Metadata["codingStandard"] = d.CodingStandard
	}
	if d.CharacterSet != "" {
		r.Metadata["characterSet"] = d.CharacterSet
	}
	if d.ExportDate != "" {
		r.Metadata["exportDate"] = d.ExportDate
	}
	if d.DepthUOM != "" {
		r.Metadata["depthUnit"] = d.DepthUOM
	}
	return r
}

// FromRecord builds an export document for a record. When the record
// carries a deviation survey, the desurveyed path (shifted onto the
// surface location) becomes the borehole path.
func FromRecord(r *borehole.Record, charset string) (*Document, error) {
	if charset != "" && !ValidCharset(charset) {
		return nil, fmt.Errorf("character set %q: %w", charset, ErrInvalidCode)
	}

	doc := &Document{
		ID:             "bh_" + r.ID,
		Identifier:     r.ID,
		ShortName:      r.Metadata["shortName"],
		FullName:       r.Name,
		SRSName:        r.CRS,
		X:              r.X,
		Y:              r.Y,
		Z:              r.Elevation,
		TotalLength:    r.TotalDepth,
		DepthUOM:       r.Metadata["depthUnit"],
		Language:       r.Metadata["language"],
		CodingStandard: r.Metadata["codingStandard"],
		CharacterSet:   charset,
		ExportDate:     r.Metadata["exportDate"],
	}

	if r.HasDeviation() {
		traj, err := r.Trajectory()
		if err != nil {
			return nil, fmt.Errorf("export borehole %s: %w", r.ID, err)
		}
		for _, p := range traj.Shift(r.X, r.Y, r.Elevation) {
			doc.Path = append(doc.Path, PathPoint{Easting: p.Easting, Northing: p.Northing, TVD: p.TVD})
		}
	}

	return doc, nil
}

// output wire types; prefixes are declared on the root element.

type outIval struct {
	From     float64 `xml:"bml:from"`
	To       float64 `xml:"bml:to"`
	RockName string  `xml:"bml:rockNameText,omitempty"`
}

type outMeasure struct {
	Value float64 `xml:",chardata"`
	UOM   string  `xml:"uom,attr,omitempty"`
}

type outDocument struct {
	XMLName  xml.Name `xml:"bml:Borehole"`
	XMLNSBml string   `xml:"xmlns:bml,attr"`
	XMLNSGml string   `xml:"xmlns:gml,attr"`
	ID       string   `xml:"gml:id,attr,omitempty"`

	Identifier string `xml:"gml:identifier,omitempty"`
	ShortName  string `xml:"bml:shortName>bml:Name,omitempty"`
	FullName   string `xml:"bml:fullName>bml:Name,omitempty"`

	Location *outLoc `xml:"bml:location,omitempty"`

	Total      outMeasure `xml:"bml:totalLength"`
	Language   string     `xml:"bml:language>bml:LanguageCode,omitempty"`
	Coding     string     `xml:"bml:codingStandard,omitempty"`
	Charset    string     `xml:"bml:characterSet,omitempty"`
	ExportDate string     `xml:"bml:exportDate,omitempty"`

	Path      *outPath  `xml:"bml:boreholePath,omitempty"`
	Intervals []outIval `xml:"bml:interval>bml:Interval,omitempty"`
}

type outLoc struct {
	Point struct {
		SRSName string `xml:"srsName,attr,omitempty"`
		Pos     string `xml:"gml:pos"`
	} `xml:"gml:Point"`
}

type outPath struct {
	Curve struct {
		PosList string `xml:"gml:segments>gml:LineStringSegment>gml:posList"`
	} `xml:"gml:Curve"`
}

// Encode writes the document as BoreholeML-flavored XML. A declared
// character set outside the catalog is refused with ErrInvalidCode.
func (d *Document) Encode(w io.Writer) error {
	if d.CharacterSet != "" && !ValidCharset(d.CharacterSet) {
		return fmt.Errorf("character set %q: %w", d.CharacterSet, ErrInvalidCode)
	}

	out := outDocument{
		XMLNSBml:   nsBML,
		XMLNSGml:   nsGML,
		ID:         d.ID,
		Identifier: d.Identifier,
		ShortName:  d.ShortName,
		FullName:   d.FullName,
		Total:      outMeasure{Value: d.TotalLength, UOM: d.DepthUOM},
		Language:   d.Language,
		Coding:     d.CodingStandard,
		Charset:    d.CharacterSet,
		ExportDate: d.ExportDate,
	}

	loc := &outLoc{}
	loc.Point.SRSName = d.SRSName
	loc.Point.Pos = formatFloats(d.X, d.Y, d.Z)
	out.Location = loc

	if len(d.Path) > 0 {
		var sb strings.Builder
		for i, p := range d.Path {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(formatFloats(p.Easting, p.Northing, p.TVD))
		}
		path := &outPath{}
		path.Curve.PosList = sb.String()
		out.Path = path
	}

	for _, ival := range d.Stratigraphy {
		out.Intervals = append(out.Intervals, outIval{From: ival.From, To: ival.To, RockName: ival.RockName})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("encode boreholeml document: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode boreholeml document: %w", err)
	}
	return enc.Close()
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad coordinate %q", f)
		}
		out[i] = v
	}
	return out, nil
}

func formatFloats(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}
