package geom

import "testing"

func TestRound(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{1.00000000001, 1.0},
		{0.12345678904, 0.123456789},
		{0.12345678904999, 0.123456789}, // below the half-step at 1e-10, rounds down
		{-1.00000000006, -1.0000000001},
	}
	for _, c := range cases {
		if got := Round(c.in); got != c.want {
			t.Errorf("Round(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDist(t *testing.T) {
	if got := Dist(0, 0, 3, 4); got != 5 {
		t.Fatalf("Dist(0,0,3,4) = %v, want 5", got)
	}
	if got := Dist(1, 1, 1, 1); got != 0 {
		t.Fatalf("Dist(same point) = %v, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("Clamp(5,0,10) = %v, want 5", got)
	}
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Fatalf("Clamp(-5,0,10) = %v, want 0", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Fatalf("Clamp(15,0,10) = %v, want 10", got)
	}
}
