// Package csvio reads and writes delimited text frames.
package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	iox "github.com/wdm0006/modelprep/pkg/io/ioutils"
	"github.com/wdm0006/modelprep/pkg/prep"
)

type ReaderOptions struct {
	Delimiter rune     // 0 = sniff from the header line
	NAValues  []string // nil = ioutils.DefaultNAValues
	Strict    bool     // if true, error on short/long records
}

type Reader struct {
	r      *csv.Reader
	opt    ReaderOptions
	header []string
	buf    [][]string
	// repair/warning counters
	shortRecords int
	longRecords  int
}

// Open opens a CSV file (or stdin for "-") and returns a Reader. The
// returned Closer releases the underlying file.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", path)
	}
	return NewReaderFrom(rc, opt), rc, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader (stdin, pipe).
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	br := bufio.NewReader(r)
	rr := csv.NewReader(br)
	rr.FieldsPerRecord = -1
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	} else {
		d, lazy := sniffDelimiterAndQuotes(br)
		rr.Comma = d
		rr.LazyQuotes = lazy
	}
	return &Reader{r: rr, opt: opt}
}

// InferSchema reads the header and every record, then assigns each column
// the narrowest kind that holds all of its present values.
func (r *Reader) InferSchema() (prep.Schema, []string, error) {
	rec, err := r.r.Read()
	if err == io.EOF {
		return prep.Schema{}, nil, errors.New("no header row")
	}
	if err != nil {
		return prep.Schema{}, nil, err
	}
	r.header = iox.Header(rec)
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return prep.Schema{}, nil, err
		}
		switch {
		case len(rec) < len(r.header):
			r.shortRecords++
			if r.opt.Strict {
				return prep.Schema{}, nil, fmt.Errorf("csv short record at row %d: need %d fields, got %d", len(r.buf)+1, len(r.header), len(rec))
			}
		case len(rec) > len(r.header):
			r.longRecords++
			if r.opt.Strict {
				return prep.Schema{}, nil, fmt.Errorf("csv long record at row %d: need %d fields, got %d", len(r.buf)+1, len(r.header), len(rec))
			}
		}
		r.buf = append(r.buf, rec)
	}
	return iox.InferSchema(r.header, r.buf, iox.NASet(r.opt.NAValues)), r.header, nil
}

// ReadAll builds the Frame from the records buffered by InferSchema.
func (r *Reader) ReadAll(schema prep.Schema) (*prep.Frame, error) {
	f, err := iox.BuildFrame(schema, r.buf, iox.NASet(r.opt.NAValues))
	r.buf = nil
	return f, err
}

// Read is InferSchema followed by ReadAll.
func (r *Reader) Read() (*prep.Frame, error) {
	s, _, err := r.InferSchema()
	if err != nil {
		return nil, err
	}
	return r.ReadAll(s)
}

// sniffDelimiterAndQuotes picks the most frequent candidate delimiter on
// the header line. LazyQuotes is enabled when the sample has unbalanced
// quotes.
func sniffDelimiterAndQuotes(br *bufio.Reader) (rune, bool) {
	sample, _ := br.Peek(4096)
	if len(sample) == 0 {
		return ',', false
	}
	line := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		line = sample[:i]
	}
	best, bestCount := byte(','), 0
	for _, c := range []byte{',', '\t', ';', '|'} {
		if cnt := bytes.Count(line, []byte{c}); cnt > bestCount {
			best, bestCount = c, cnt
		}
	}
	lazy := bytes.Count(sample, []byte{'"'})%2 != 0
	return rune(best), lazy
}

// Warnings returns a summary string of any repairs/mismatches encountered.
func (r *Reader) Warnings() string {
	if r.shortRecords == 0 && r.longRecords == 0 {
		return ""
	}
	parts := []string{}
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}
