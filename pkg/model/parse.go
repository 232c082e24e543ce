// Decoders for the two accepted annotation wire formats (JSON raw sets and
// BED tabular text) plus the positional row decoding shared with the
// normalizer.

package model

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fixed positional slot an annotation's track index is read from when a
// track configuration exists.
const trackSlot = 3

// ParseAnnots decodes a JSON document already shaped as a raw annotation set.
func ParseAnnots(r io.Reader) (*RawAnnotSet, error) {

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var set RawAnnotSet
	if err := dec.Decode(&set); err != nil {
		return nil, &MalformedPayloadError{Msg: "invalid JSON document", Err: err}
	}

	if err := validateKeys(set.Keys); err != nil {
		return nil, err
	}

	return &set, nil
}

// ParseBED decodes BED tabular text into a raw annotation set under the fixed
// key schema name,start,length,trackIndex[,color]. Lines are grouped by
// chromosome in first-seen order; a leading "chr" prefix is stripped so BED
// names line up with the diagram's chromosome names. The color key is emitted
// only when at least one line carries an itemRgb column.
func ParseBED(r io.Reader) (*RawAnnotSet, error) {

	type bedLine struct {
		chrom  string
		name   string
		rgb    string
		start  int64
		length int64
	}

	var lines []bedLine
	hasColor := false

	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		// Header and comment lines carry no features.
		if line == "" || line[0] == '#' ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}

		f := strings.Fields(line)
		if len(f) < 3 {
			return nil, &MalformedPayloadError{
				Msg: fmt.Sprintf("line %d: BED needs at least 3 columns, got %d", ln, len(f)),
			}
		}

		start, err := strconv.ParseInt(f[1], 10, 64)
		if err != nil {
			return nil, &MalformedPayloadError{Msg: fmt.Sprintf("line %d: bad chromStart", ln), Err: err}
		}
		end, err := strconv.ParseInt(f[2], 10, 64)
		if err != nil {
			return nil, &MalformedPayloadError{Msg: fmt.Sprintf("line %d: bad chromEnd", ln), Err: err}
		}
		if end < start {
			return nil, &MalformedPayloadError{Msg: fmt.Sprintf("line %d: chromEnd before chromStart", ln)}
		}

		bl := bedLine{
			chrom:  strings.TrimPrefix(f[0], "chr"),
			start:  start,
			length: end - start,
		}
		if len(f) > 3 {
			bl.name = f[3]
		}
		if len(f) > 8 && f[8] != "" && f[8] != "0" && f[8] != "." {
			bl.rgb = "rgb(" + f[8] + ")"
			hasColor = true
		}

		lines = append(lines, bl)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	keys := []string{"name", "start", "length", "trackIndex"}
	if hasColor {
		keys = append(keys, "color")
	}

	set := &RawAnnotSet{Keys: keys}
	groupOf := make(map[string]int)

	for _, bl := range lines {
		row := []any{bl.name, bl.start, bl.length, int64(0)}
		if hasColor {
			row = append(row, bl.rgb)
		}

		gi, ok := groupOf[bl.chrom]
		if !ok {
			gi = len(set.Chromosomes)
			groupOf[bl.chrom] = gi
			set.Chromosomes = append(set.Chromosomes, RawChromosomeAnnots{Chr: bl.chrom})
		}
		set.Chromosomes[gi].Annots = append(set.Chromosomes[gi].Annots, row)
	}

	return set, nil
}

func validateKeys(keys []string) error {
	var hasStart, hasLength bool
	for _, k := range keys {
		switch k {
		case "start":
			hasStart = true
		case "length":
			hasLength = true
		}
	}
	if !hasStart || !hasLength {
		return &MalformedPayloadError{Msg: `keys must include "start" and "length"`}
	}
	return nil
}

// rawRecord is one raw row zipped against the payload keys: the canonical
// fields typed out, everything else kept as string extras.
type rawRecord struct {
	Name       string
	Start      int64
	Length     int64
	TrackIndex int
	Color      string
	Shape      string
	Extra      map[string]string
}

// decodeRow zips a positional value tuple against keys. A row may carry one
// value beyond the keys (the optional track slot); any other length mismatch
// rejects the payload. When wantTrack is set the track index is read from its
// fixed slot, and a row too short for that slot is rejected rather than read
// out of bounds.
func decodeRow(keys []string, row []any, wantTrack bool) (rawRecord, error) {

	if len(row) != len(keys) && len(row) != len(keys)+1 {
		return rawRecord{}, &MalformedPayloadError{
			Msg: fmt.Sprintf("row has %d values for %d keys", len(row), len(keys)),
		}
	}

	var rec rawRecord
	for i, key := range keys {
		v := row[i]
		switch key {
		case "name":
			rec.Name = toString(v)
		case "start":
			n, err := toInt64(v)
			if err != nil {
				return rawRecord{}, &MalformedPayloadError{Msg: "start is not numeric", Err: err}
			}
			rec.Start = n
		case "length":
			n, err := toInt64(v)
			if err != nil {
				return rawRecord{}, &MalformedPayloadError{Msg: "length is not numeric", Err: err}
			}
			rec.Length = n
		case "trackIndex":
			// Read positionally below, only when a track config exists.
		case "color":
			rec.Color = toString(v)
		case "shape":
			rec.Shape = toString(v)
		default:
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[key] = toString(v)
		}
	}

	if wantTrack {
		if len(row) <= trackSlot {
			return rawRecord{}, &MalformedPayloadError{
				Msg: fmt.Sprintf("row has %d values, track slot %d out of range", len(row), trackSlot),
			}
		}
		n, err := toInt64(row[trackSlot])
		if err != nil {
			return rawRecord{}, &MalformedPayloadError{Msg: "track index is not numeric", Err: err}
		}
		rec.TrackIndex = int(n)
	}

	return rec, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case json.Number:
		return n.Int64()
	default:
		return 0, fmt.Errorf("value %v (%T) is not a number", v, v)
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
