package csvio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wdm0006/modelprep/pkg/prep"
)

func TestInferAndRead(t *testing.T) {
	r, c, err := Open(filepath.FromSlash("testdata/people.csv"), ReaderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = c.Close() }()
	schema, names, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 5 {
		t.Fatalf("expected 5 columns, got %d", len(names))
	}
	want := []prep.Kind{prep.KindString, prep.KindInt, prep.KindFloat, prep.KindBool, prep.KindString}
	for i, cs := range schema.Columns {
		if cs.Type != want[i] {
			t.Fatalf("column %s: expected %s, got %s", cs.Name, want[i], cs.Type)
		}
	}
	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Rows() != 4 {
		t.Fatalf("expected 4 rows, got %d", fr.Rows())
	}
	age, _ := fr.ColumnByName("age")
	if !age.IsNull(1) || prep.NullCount(age) != 1 {
		t.Fatalf("expected NA in age row 1 only")
	}
}

func TestSniffSemicolon(t *testing.T) {
	r, c, err := Open("testdata/semicolon.csv", ReaderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = c.Close() }()
	fr, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(fr.Names(), ","); got != "a,b,c" {
		t.Fatalf("unexpected header %q", got)
	}
}

func TestShortRecords(t *testing.T) {
	in := "a,b\n1,2\n3\n"
	r := NewReaderFrom(strings.NewReader(in), ReaderOptions{Delimiter: ','})
	fr, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := fr.ColumnByName("b")
	if !b.IsNull(1) {
		t.Fatal("short record should pad with missing")
	}
	if r.Warnings() != "short_records=1" {
		t.Fatalf("unexpected warnings %q", r.Warnings())
	}

	strict := NewReaderFrom(strings.NewReader(in), ReaderOptions{Delimiter: ',', Strict: true})
	if _, err := strict.Read(); err == nil {
		t.Fatal("strict reader accepted a short record")
	}
}

func TestEmptyInput(t *testing.T) {
	if _, err := NewReaderFrom(strings.NewReader(""), ReaderOptions{}).Read(); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	r := NewReaderFrom(strings.NewReader("x,y\n1,a\n,b\n"), ReaderOptions{})
	fr, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, fr, WriterOptions{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "x,y\n1,a\n,b\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	p := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteAll(p, fr, WriterOptions{Delimiter: '\t'}); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "x\ty\n1\ta\n\tb\n" {
		t.Fatalf("unexpected file %q", string(b))
	}
}

func TestWriteAllBadDir(t *testing.T) {
	fr, _ := prep.FromColumns(prep.NewIntColumn("a", 1))
	if err := WriteAll(filepath.Join(t.TempDir(), "missing", "out.csv"), fr, WriterOptions{}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
