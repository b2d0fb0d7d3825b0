package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testSchema = Schema{
	{Name: "patnum", Type: String},
	{Name: "year", Type: Int},
}

func newTestWriter(t *testing.T, chunkSize int) (*ChunkWriter, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewChunkWriter(path, testSchema, chunkSize, false)
	if err != nil {
		t.Fatal(err)
	}
	return w, path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func TestChunkWriter_HeaderWrittenOnceAtCreation(t *testing.T) {
	w, path := newTestWriter(t, 2)
	lines := readLines(t, path)
	if len(lines) != 1 || lines[0] != "patnum,year" {
		t.Fatalf("expected lone header line, got %v", lines)
	}
	if _, err := w.Insert("a", "1"); err != nil {
		t.Fatal(err)
	}
	if err := w.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := w.Commit(); err != nil { // idempotent on empty
		t.Fatal(err)
	}
	lines = readLines(t, path)
	if len(lines) != 2 || lines[0] != "patnum,year" {
		t.Fatalf("header must appear exactly once: %v", lines)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestChunkWriter_ThresholdCommit(t *testing.T) {
	w, path := newTestWriter(t, 3)
	defer w.Close()

	for i := 0; i < 2; i++ {
		committed, err := w.Insert(fmt.Sprint(i), "2003")
		if err != nil {
			t.Fatal(err)
		}
		if committed {
			t.Fatalf("insert %d should not commit below threshold", i)
		}
	}
	committed, err := w.Insert("2", "2003")
	if err != nil {
		t.Fatal(err)
	}
	if !committed {
		t.Fatal("insert reaching threshold must report the commit")
	}
	if w.Batches() != 1 || w.Rows() != 3 {
		t.Fatalf("counters: batches=%d rows=%d", w.Batches(), w.Rows())
	}
	if lines := readLines(t, path); len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %v", lines)
	}
}

func TestChunkWriter_ExplicitCommitBelowThreshold(t *testing.T) {
	w, path := newTestWriter(t, 1000)

	for i := 0; i < 5; i++ {
		if _, err := w.Insert(fmt.Sprint(i), "1999"); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Commit(); err != nil {
		t.Fatal(err)
	}
	if w.Batches() != 1 || w.Rows() != 5 {
		t.Fatalf("counters: batches=%d rows=%d", w.Batches(), w.Rows())
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if lines := readLines(t, path); len(lines) != 6 {
		t.Fatalf("expected header + 5 rows, got %d lines", len(lines))
	}
}

func TestChunkWriter_IntCoercionDegradesToNull(t *testing.T) {
	w, path := newTestWriter(t, 1000)

	for _, v := range []string{"12", "abc", "7"} {
		if _, err := w.Insert("p", v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	lines := readLines(t, path)
	want := []string{"patnum,year", "p,12", "p,", "p,7"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestChunkWriter_StringColumnVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewChunkWriter(path, Schema{{Name: "v", Type: String}}, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []string{"12", "abc", "7"} {
		if _, err := w.Insert(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	lines := readLines(t, path)
	if strings.Join(lines[1:], "|") != "12|abc|7" {
		t.Fatalf("string cells must be preserved verbatim: %v", lines)
	}
}

func TestChunkWriter_RowCountConservation(t *testing.T) {
	w, path := newTestWriter(t, 4)

	inserted := 0
	for i := 0; i < 3; i++ {
		if _, err := w.Insert(fmt.Sprint(i), "abc"); err != nil {
			t.Fatal(err)
		}
		inserted++
	}
	rows := [][]string{{"x", "1"}, {"y", "nope"}, {"z", "3"}}
	if _, err := w.InsertMany(rows); err != nil {
		t.Fatal(err)
	}
	inserted += len(rows)
	if err := w.Commit(); err != nil {
		t.Fatal(err)
	}
	if w.Rows() != int64(inserted) {
		t.Fatalf("committed %d rows, inserted %d", w.Rows(), inserted)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if lines := readLines(t, path); len(lines)-1 != inserted {
		t.Fatalf("sink holds %d rows, inserted %d", len(lines)-1, inserted)
	}
}

func TestChunkWriter_InsertManyTriggersCommit(t *testing.T) {
	w, _ := newTestWriter(t, 2)
	defer w.Close()

	committed, err := w.InsertMany([][]string{{"a", "1"}, {"b", "2"}, {"c", "3"}})
	if err != nil {
		t.Fatal(err)
	}
	if !committed {
		t.Fatal("InsertMany crossing the threshold must report the commit")
	}
	if w.Rows() != 3 {
		t.Fatalf("all buffered rows commit together, got %d", w.Rows())
	}
}

func TestChunkWriter_OrderPreserved(t *testing.T) {
	w, path := newTestWriter(t, 2)

	for i := 0; i < 7; i++ {
		if _, err := w.Insert(fmt.Sprintf("p%d", i), fmt.Sprint(i)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	lines := readLines(t, path)
	for i := 0; i < 7; i++ {
		want := fmt.Sprintf("p%d,%d", i, i)
		if lines[i+1] != want {
			t.Fatalf("row %d: expected %q, got %q", i, want, lines[i+1])
		}
	}
}

func TestChunkWriter_DeleteRemovesFile(t *testing.T) {
	w, path := newTestWriter(t, 10)
	if _, err := w.Insert("a", "1"); err != nil {
		t.Fatal(err)
	}
	if err := w.Delete(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected sink file removed, stat err=%v", err)
	}
}

func TestChunkWriter_ClosedIsTerminal(t *testing.T) {
	w, _ := newTestWriter(t, 10)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Insert("a", "1"); err != ErrWriterClosed {
		t.Fatalf("expected ErrWriterClosed, got %v", err)
	}
	if _, err := w.InsertMany([][]string{{"a", "1"}}); err != ErrWriterClosed {
		t.Fatalf("expected ErrWriterClosed, got %v", err)
	}
	if err := w.Commit(); err != ErrWriterClosed {
		t.Fatalf("expected ErrWriterClosed, got %v", err)
	}
	if err := w.Delete(); err != ErrWriterClosed {
		t.Fatalf("expected ErrWriterClosed, got %v", err)
	}
}

func TestChunkWriter_ArityMismatch(t *testing.T) {
	w, _ := newTestWriter(t, 10)
	defer w.Close()
	if _, err := w.Insert("only-one-cell"); err == nil {
		t.Fatal("expected arity error")
	}
}
