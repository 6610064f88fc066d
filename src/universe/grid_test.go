package universe

import "testing"

func TestIndexCoords(t *testing.T) {
	if Size != 1600 {
		t.Fatalf("Size = %d", Size)
	}
	for i := 0; i < Size; i++ {
		x, y := Coords(i)
		if !InBounds(x, y) {
			t.Fatalf("Coords(%d) = %d,%d outside the field", i, x, y)
		}
		if Index(x, y) != i {
			t.Fatalf("Index(Coords(%d)) = %d", i, Index(x, y))
		}
	}
	if x, y := Coords(Cols + 3); x != 3 || y != 1 {
		t.Fatalf("Coords(%d) = %d,%d", Cols+3, x, y)
	}
}

func TestAtOutsideIsDead(t *testing.T) {
	var g Grid
	for i := range g {
		g[i] = true
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {Cols, 0}, {0, Rows}, {-1, -1}, {Cols, Rows}} {
		if g.At(p[0], p[1]) {
			t.Errorf("At(%d,%d) is alive", p[0], p[1])
		}
	}
}

func TestFromCoordinates(t *testing.T) {
	g := FromCoordinates([][2]int{{0, 0}, {49, 31}, {50, 0}, {-1, 3}, {3, 3}})
	if g.LiveCells() != 3 {
		t.Fatalf("LiveCells = %d, want 3", g.LiveCells())
	}
	if !g[Size-1] || !g[0] || !g[3*Cols+3] {
		t.Fatal("expected cells are not alive")
	}
}

func TestRow(t *testing.T) {
	g := FromCoordinates([][2]int{{4, 2}})
	row := g.Row(2)
	if len(row) != Cols || !row[4] {
		t.Fatalf("unexpected row %v", row)
	}
	if g.Row(1)[4] {
		t.Fatal("row 1 has a live cell")
	}
}
