// Package jsonlio reads record-oriented JSON: either one array of objects
// or one object per line.
package jsonlio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	iox "github.com/wdm0006/modelprep/pkg/io/ioutils"
	"github.com/wdm0006/modelprep/pkg/prep"
)

type ReaderOptions struct {
	NAValues []string // nil = ioutils.DefaultNAValues
}

type Reader struct {
	dec  *json.Decoder
	opt  ReaderOptions
	keys []string
	rows []map[string]string
}

// Open opens path (or stdin for "-"), decompressing if needed.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", path)
	}
	return NewReaderFrom(rc, opt), rc, nil
}

func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	dec := json.NewDecoder(bufio.NewReader(r))
	dec.UseNumber()
	return &Reader{dec: dec, opt: opt}
}

// InferSchema decodes every record. Columns appear in first-seen key order
// and kinds are inferred from the text form of each value.
func (r *Reader) InferSchema() (prep.Schema, error) {
	tok, err := r.dec.Token()
	if err == io.EOF {
		return prep.Schema{}, errors.New("no records")
	}
	if err != nil {
		return prep.Schema{}, err
	}
	seen := map[string]struct{}{}
	switch tok {
	case json.Delim('['):
		for r.dec.More() {
			if err := r.record(nil, seen); err != nil {
				return prep.Schema{}, err
			}
		}
		if _, err := r.dec.Token(); err != nil {
			return prep.Schema{}, err
		}
	case json.Delim('{'):
		open := true
		for {
			if err := r.record(&open, seen); err == io.EOF {
				break
			} else if err != nil {
				return prep.Schema{}, err
			}
		}
	default:
		return prep.Schema{}, fmt.Errorf("expected an object or an array of objects, got %v", tok)
	}
	if len(r.keys) == 0 {
		return prep.Schema{}, errors.New("no columns")
	}
	return iox.InferSchema(r.keys, r.records(), iox.NASet(r.opt.NAValues)), nil
}

// record decodes one object. open reports that its '{' was already
// consumed; it is reset so the next call reads its own.
func (r *Reader) record(open *bool, seen map[string]struct{}) error {
	if open == nil || !*open {
		tok, err := r.dec.Token()
		if err != nil {
			return err
		}
		if tok != json.Delim('{') {
			return fmt.Errorf("record %d: expected an object, got %v", len(r.rows)+1, tok)
		}
	}
	if open != nil {
		*open = false
	}
	row := map[string]string{}
	for r.dec.More() {
		tok, err := r.dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := r.dec.Decode(&raw); err != nil {
			return err
		}
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			r.keys = append(r.keys, key)
		}
		row[key] = text(raw)
	}
	if _, err := r.dec.Token(); err != nil {
		return err
	}
	r.rows = append(r.rows, row)
	return nil
}

func (r *Reader) records() [][]string {
	out := make([][]string, len(r.rows))
	for i, m := range r.rows {
		rec := make([]string, len(r.keys))
		for c, k := range r.keys {
			rec[c] = m[k]
		}
		out[i] = rec
	}
	return out
}

// text renders a JSON value the way it would appear in a CSV cell; null is
// empty and nested values keep their compact JSON form.
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
		return ""
	case raw[0] == '"':
		var s string
		_ = json.Unmarshal(raw, &s)
		return s
	case raw[0] == '{' || raw[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err == nil {
			return buf.String()
		}
	}
	return string(raw)
}

func (r *Reader) ReadAll(schema prep.Schema) (*prep.Frame, error) {
	f, err := iox.BuildFrame(schema, r.records(), iox.NASet(r.opt.NAValues))
	r.rows = nil
	return f, err
}

func (r *Reader) Read() (*prep.Frame, error) {
	s, err := r.InferSchema()
	if err != nil {
		return nil, err
	}
	return r.ReadAll(s)
}
