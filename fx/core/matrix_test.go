package core

import "testing"

func TestMatrixC128(t *testing.T) {
	m := MatrixC128(3, 5)
	if len(m) != 3 {
		t.Fatalf("rows=%d, want 3", len(m))
	}

	for i, row := range m {
		if len(row) != 5 {
			t.Fatalf("row %d has %d cols, want 5", i, len(row))
		}

		for j, v := range row {
			if v != 0 {
				t.Fatalf("element (%d,%d) not zeroed: %v", i, j, v)
			}
		}
	}

	if got := MatrixC128(0, 5); got != nil {
		t.Fatal("zero rows should return nil")
	}
}

func TestCubeC128(t *testing.T) {
	c := CubeC128(2, 3, 4)
	if len(c) != 2 || len(c[0]) != 3 || len(c[0][0]) != 4 {
		t.Fatalf("unexpected shape: %d x %d x %d", len(c), len(c[0]), len(c[0][0]))
	}

	c[1][2][3] = 1 + 2i
	if c[0][0][0] != 0 {
		t.Fatal("writing one cell disturbed another")
	}
}

func TestMatrixShape(t *testing.T) {
	rows, cols, uniform := MatrixShape([][]complex128{{1, 2}, {3, 4}})
	if rows != 2 || cols != 2 || !uniform {
		t.Fatalf("got (%d,%d,%v)", rows, cols, uniform)
	}

	_, _, uniform = MatrixShape([][]complex128{{1, 2}, {3}})
	if uniform {
		t.Fatal("ragged matrix reported as uniform")
	}

	rows, cols, uniform = MatrixShape(nil)
	if rows != 0 || cols != 0 || !uniform {
		t.Fatalf("empty matrix: got (%d,%d,%v)", rows, cols, uniform)
	}
}
