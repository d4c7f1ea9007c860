package layout

import "testing"

func TestNewRect(t *testing.T) {
	type tc struct {
		column, top, height int
		columnSize, gutter  int
		expected            Rect
	}

	tests := map[string]tc{
		"first column": {
			column: 0, top: 0, height: 100, columnSize: 240, gutter: 24,
			expected: Rect{Column: 0, Left: 0, Top: 0, Height: 100, Bottom: 100, Right: 240},
		},
		"third column": {
			column: 2, top: 50, height: 30, columnSize: 240, gutter: 24,
			expected: Rect{Column: 2, Left: 528, Top: 50, Height: 30, Bottom: 80, Right: 768},
		},
		"no gutter": {
			column: 1, top: 10, height: 5, columnSize: 20, gutter: 0,
			expected: Rect{Column: 1, Left: 20, Top: 10, Height: 5, Bottom: 15, Right: 40},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := NewRect(tt.column, tt.top, tt.height, tt.columnSize, tt.gutter)
			if got != tt.expected {
				t.Errorf("NewRect() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestRect_Contains(t *testing.T) {
	r := NewRect(1, 10, 20, 30, 5)

	if !r.Contains(35, 10) {
		t.Error("Contains() should include the top-left corner")
	}
	if r.Contains(65, 10) {
		t.Error("Contains() should exclude the right edge")
	}
	if r.Contains(35, 30) {
		t.Error("Contains() should exclude the bottom edge")
	}
}

func TestRect_Translate(t *testing.T) {
	r := NewRect(0, 0, 10, 10, 0).Translate(5, 7)
	want := Rect{Column: 0, Left: 5, Top: 7, Height: 10, Bottom: 17, Right: 15}
	if r != want {
		t.Errorf("Translate() = %+v, want %+v", r, want)
	}
}
