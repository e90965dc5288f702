package xengine

import "testing"

func TestBaselineCount(t *testing.T) {
	for _, n := range []int{2, 3, 4, 8, 16} {
		got := Baselines(n)
		want := n * (n + 1) / 2

		if len(got) != want {
			t.Fatalf("n=%d: %d baselines, want %d", n, len(got), want)
		}

		if BaselineCount(n) != want {
			t.Fatalf("n=%d: BaselineCount=%d, want %d", n, BaselineCount(n), want)
		}
	}

	if Baselines(0) != nil || BaselineCount(-1) != 0 {
		t.Fatal("degenerate antenna counts should yield no baselines")
	}
}

func TestBaselineOrderingCanonical(t *testing.T) {
	got := Baselines(3)
	want := []Baseline{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2}}

	if len(got) != len(want) {
		t.Fatalf("%d baselines, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("baseline %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBaselineInvariants(t *testing.T) {
	const n = 8

	autos := 0
	for _, b := range Baselines(n) {
		if b.Ant1 > b.Ant2 {
			t.Fatalf("baseline %v violates i <= j", b)
		}

		if b.Auto() {
			autos++
		}
	}

	if autos != n {
		t.Fatalf("%d autocorrelations, want %d", autos, n)
	}
}

func TestBaselineTable(t *testing.T) {
	table := BaselineTable(3)

	for id, info := range table {
		if info.ID != id {
			t.Fatalf("entry %d carries id %d", id, info.ID)
		}

		if info.Auto != (info.Ant1 == info.Ant2) {
			t.Fatalf("entry %d: auto flag inconsistent: %+v", id, info)
		}
	}
}
