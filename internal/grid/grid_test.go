package grid

import "testing"

func TestGridOutOfBoundsReadsAbsent(t *testing.T) {
	g := NewGrid(Size{X: 3, Y: 3})
	g.Set(Position{X: 1, Y: 1}, FloorTile())

	if _, ok := g.Get(Position{X: -1, Y: 0}); ok {
		t.Fatal("expected out-of-bounds read to report absent")
	}
	if _, ok := g.Get(Position{X: 3, Y: 0}); ok {
		t.Fatal("expected out-of-bounds read to report absent")
	}

	tile, ok := g.Get(Position{X: 1, Y: 1})
	if !ok || tile.Kind != Floor {
		t.Fatalf("expected Floor tile at (1,1), got %+v ok=%v", tile, ok)
	}
}

func TestPushPanelActivation(t *testing.T) {
	panel := PushPanelTile(Right, 2, 1) // active on odd 1-based register index
	cases := []struct {
		registerIndex int // zero-based
		want          bool
	}{
		{0, true},  // 1-based 1, 1 mod 2 == 1
		{1, false}, // 1-based 2, 2 mod 2 == 0
		{2, true},  // 1-based 3, 3 mod 2 == 1
	}
	for _, c := range cases {
		if got := panel.ActiveOnRegister(c.registerIndex); got != c.want {
			t.Errorf("register %d: got %v, want %v", c.registerIndex, got, c.want)
		}
	}
}
