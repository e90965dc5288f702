package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-fx/internal/testutil"
)

func TestMagnitudeMatchesCmplxAbs(t *testing.T) {
	in := testutil.RandomSpectrum(11, 1, 257)[0]

	got := Magnitude(in)
	if len(got) != len(in) {
		t.Fatalf("len=%d, want %d", len(got), len(in))
	}

	for i := range in {
		want := cmplx.Abs(in[i])
		if math.Abs(got[i]-want) > 1e-12 {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestPowerIsMagnitudeSquared(t *testing.T) {
	in := testutil.RandomSpectrum(5, 1, 64)[0]

	mag := Magnitude(in)
	pow := Power(in)

	for i := range in {
		if math.Abs(pow[i]-mag[i]*mag[i]) > 1e-10 {
			t.Fatalf("index %d: power %v, magnitude^2 %v", i, pow[i], mag[i]*mag[i])
		}
	}
}

func TestPhase(t *testing.T) {
	in := []complex128{1, 1i, -1, -1i}
	want := []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2}

	got := Phase(in)
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestMeanPhaseUnbiasedByMagnitude(t *testing.T) {
	phase := 0.3
	in := []complex128{
		complex(math.Cos(phase), math.Sin(phase)) * 100,
		complex(math.Cos(phase), math.Sin(phase)) * 0.01,
	}

	got := MeanPhase(in)
	testutil.RequireNear(t, got, phase, 1e-12)
}

func TestMeanPhaseHandlesWrapAround(t *testing.T) {
	// Two phasors straddling +/-pi must average to pi, not zero.
	in := []complex128{
		cmplx.Exp(complex(0, math.Pi-0.1)),
		cmplx.Exp(complex(0, -math.Pi+0.1)),
	}

	got := MeanPhase(in)
	if math.Abs(math.Abs(got)-math.Pi) > 1e-9 {
		t.Fatalf("mean phase %v, want +/-pi", got)
	}
}

func TestMeanPhaseIgnoresZeroBins(t *testing.T) {
	in := []complex128{0, 1i, 0}
	testutil.RequireNear(t, MeanPhase(in), math.Pi/2, 1e-12)
}

func TestEmptyInputs(t *testing.T) {
	if Magnitude(nil) != nil || Power(nil) != nil || Phase(nil) != nil {
		t.Fatal("empty input should return nil")
	}

	if MeanPhase(nil) != 0 {
		t.Fatal("empty mean phase should be 0")
	}
}

func TestTotalPower(t *testing.T) {
	in := []complex128{3 + 4i, 1}
	testutil.RequireNear(t, TotalPower(in), 26, 1e-12)
}
