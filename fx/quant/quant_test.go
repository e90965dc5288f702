package quant

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fx/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	for _, bits := range []int{-1, 1, 33} {
		if _, err := New(bits); err == nil {
			t.Fatalf("bits=%d: expected error", bits)
		}
	}

	for _, bits := range []int{0, 2, 4, 8, 16, 32} {
		if _, err := New(bits); err != nil {
			t.Fatalf("bits=%d: %v", bits, err)
		}
	}
}

func TestDisabledIsIdentity(t *testing.T) {
	q, err := New(0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if q.Enabled() {
		t.Fatal("bits=0 should report disabled")
	}

	chunk := testutil.NoiseChunk(1, 3, 128, 1)

	out := q.ProcessChunk(chunk)
	if &out[0][0] != &chunk[0][0] {
		t.Fatal("disabled quantizer should return the input unchanged")
	}
}

func TestTwoBitsCollapsesToLevelGrid(t *testing.T) {
	q, err := New(2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	chunk := testutil.NoiseChunk(7, 2, 512, 1)
	out := q.ProcessChunk(chunk)

	// levels = 2^2/2 - 1 = 1, so each component lands on {-scale, 0, +scale}.
	distinct := map[float64]struct{}{}
	for _, row := range out {
		for _, v := range row {
			distinct[real(v)] = struct{}{}
		}
	}

	if len(distinct) > 3 {
		t.Fatalf("2-bit quantization produced %d distinct real values, want <= 3", len(distinct))
	}
}

func TestQuantizationErrorBounded(t *testing.T) {
	q, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	chunk := testutil.NoiseChunk(42, 2, 1024, 1)
	out := q.ProcessChunk(chunk)

	// Inside the clip range the error is at most half a level step.
	// Uniform noise in [-1, 1] stays well inside the 3-sigma clip.
	levels := math.Exp2(8)/2 - 1

	var maxScale float64
	for a := range chunk {
		for i := range chunk[a] {
			if s := math.Abs(real(chunk[a][i])); s > maxScale {
				maxScale = s
			}
		}
	}

	step := 3 * maxScale / levels // generous bound: scale <= 3*max|v|

	for a := range chunk {
		for i := range chunk[a] {
			diff := math.Abs(real(out[a][i]) - real(chunk[a][i]))
			if diff > step {
				t.Fatalf("antenna %d sample %d: quantization error %v exceeds %v", a, i, diff, step)
			}
		}
	}
}

func TestConstantComponentPassesThrough(t *testing.T) {
	q, err := New(4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	chunk := [][]complex128{{2 + 2i, 2 - 1i, 2 + 0.5i}}

	out := q.ProcessChunk(chunk)
	for i, v := range out[0] {
		if real(v) != 2 {
			t.Fatalf("sample %d: constant real part changed to %v", i, real(v))
		}
	}
}

func TestShapePreserved(t *testing.T) {
	q, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	chunk := testutil.NoiseChunk(3, 5, 200, 0.7)

	out := q.ProcessChunk(chunk)
	if len(out) != len(chunk) {
		t.Fatalf("antenna count changed: %d -> %d", len(chunk), len(out))
	}

	for a := range out {
		if len(out[a]) != len(chunk[a]) {
			t.Fatalf("antenna %d sample count changed: %d -> %d", a, len(chunk[a]), len(out[a]))
		}
	}
}
