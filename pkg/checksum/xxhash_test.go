package checksum

import "testing"

func TestRows(t *testing.T) {
	a := [][]string{{"月", "合計"}, {"2026-01", "4,012,345"}}
	b := [][]string{{"月", "合計"}, {"2026-01", "4,012,345"}}

	if Rows(a) != Rows(b) {
		t.Error("equal ranges should hash equally")
	}
	if len(Rows(a)) != 16 {
		t.Errorf("expected 16 hex characters, got %q", Rows(a))
	}

	resplit := [][]string{{"月合計"}, {"2026-01", "4,012,345"}}
	if Rows(a) == Rows(resplit) {
		t.Error("moving text between cells should change the digest")
	}
	rowShift := [][]string{{"月", "合計", "2026-01"}, {"4,012,345"}}
	if Rows(a) == Rows(rowShift) {
		t.Error("moving cells between rows should change the digest")
	}
	if Rows(nil) != Rows([][]string{}) {
		t.Error("nil and empty ranges should hash equally")
	}
}
