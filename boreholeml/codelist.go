// Package boreholeml handles BoreholeML 3.0 metadata exchange: the
// ISO-19115 character-set codelist used for encoding declarations,
// and decoding/encoding of BoreholeML-flavored XML documents.
package boreholeml

import (
	"embed"
	"encoding/xml"
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidCode reports a character-set code outside the closed
// ISO-19115 catalog.
var ErrInvalidCode = errors.New("invalid character set code")

//go:embed codelists/MD_CharacterSetCode.xml
var codelistFS embed.FS

// charsets is the process-wide codelist table. Loaded once at init
// from the embedded dictionary and never mutated afterwards, so
// concurrent reads are safe.
var charsets map[string]string

type codeListDictionary struct {
	Entries []struct {
		Definition struct {
			Description string `xml:"http://www.opengis.net/gml/3.2 description"`
			Identifier  string `xml:"http://www.opengis.net/gml/3.2 identifier"`
		} `xml:"CodeDefinition"`
	} `xml:"codeEntry"`
}

func init() {
	raw, err := codelistFS.ReadFile("codelists/MD_CharacterSetCode.xml")
	if err != nil {
		panic(fmt.Sprintf("boreholeml: embedded codelist missing: %v", err))
	}
	var dict codeListDictionary
	if err := xml.Unmarshal(raw, &dict); err != nil {
		panic(fmt.Sprintf("boreholeml: embedded codelist malformed: %v", err))
	}
	if len(dict.Entries) == 0 {
		panic("boreholeml: embedded codelist has no entries")
	}
	charsets = make(map[string]string, len(dict.Entries))
	for _, e := range dict.Entries {
		charsets[e.Definition.Identifier] = e.Definition.Description
	}
}

// ValidCharset reports whether code belongs to the character-set
// catalog.
func ValidCharset(code string) bool {
	_, ok := charsets[code]
	return ok
}

// CharsetDescription returns the human-readable description of a
// character-set code, or ErrInvalidCode for codes outside the
// catalog.
func CharsetDescription(code string) (string, error) {
	desc, ok := charsets[code]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	return desc, nil
}

// Charsets returns all catalog codes, sorted.
func Charsets() []string {
	out := make([]string, 0, len(charsets))
	for code := range charsets {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
