package grid

import "testing"

func TestGetGridCoords(t *testing.T) {
	tests := []struct {
		index int
		cols  int
		wantX int
		wantY int
	}{
		// 64 cols (Standard)
		{0, 64, 0, 0},
		{1, 64, 1, 0},
		{63, 64, 63, 0},
		{64, 64, 0, 1},
		{65, 64, 1, 1},
		{127, 64, 63, 1},
		{128, 64, 0, 2},
		{1023, 64, 63, 15},

		// 32 cols (Low Res)
		{0, 32, 0, 0},
		{31, 32, 31, 0},
		{32, 32, 0, 1},
		{63, 32, 31, 1},
		{1023, 32, 31, 31},
	}

	for _, tc := range tests {
		gotX, gotY := GetGridCoords(tc.index, tc.cols)
		if gotX != tc.wantX || gotY != tc.wantY {
			t.Errorf("GetGridCoords(%d, %d) = (%d, %d); want (%d, %d)", tc.index, tc.cols, gotX, gotY, tc.wantX, tc.wantY)
		}
	}
}

func TestLayout(t *testing.T) {
	l := Layout{OriginX: 8, OriginY: 4, CellW: 7, CellH: 13}

	if px, py := l.At(0, 0); px != 8 || py != 4 {
		t.Errorf("At(0, 0) = (%d, %d)", px, py)
	}
	if px, py := l.At(3, 2); px != 8+21 || py != 4+26 {
		t.Errorf("At(3, 2) = (%d, %d)", px, py)
	}
	if px, py := l.Cell(10, 4); px != 8+14 || py != 4+26 {
		t.Errorf("Cell(10, 4) = (%d, %d)", px, py)
	}

	tests := []struct {
		size int
		rows int
		cols int
	}{
		{0, 0, 0},
		{4, 0, 0},
		{30, 2, 3},
		{600, 45, 84},
	}
	for _, tc := range tests {
		if got := l.Rows(tc.size); got != tc.rows {
			t.Errorf("Rows(%d) = %d; want %d", tc.size, got, tc.rows)
		}
		if got := l.Cols(tc.size); got != tc.cols {
			t.Errorf("Cols(%d) = %d; want %d", tc.size, got, tc.cols)
		}
	}

	if (Layout{}).Rows(100) != 0 {
		t.Error("zero-height cells must fit no rows")
	}
}
