package asciimask

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func jitterConfig() Config {
	cfg := DefaultConfig()
	cfg.FontSize = 20
	cfg.PositionJitter = 0.15
	cfg.SizeJitterMin = 0.6
	cfg.SizeJitterMax = 1.4
	return cfg
}

func TestJitterDisabled(t *testing.T) {
	t.Parallel()

	cfg := jitterConfig()
	cfg.Randomize = false
	engine := NewJitterEngine(cfg, rand.NewPCG(1, 2))

	for i := 0; i < 10; i++ {
		j := engine.Sample()
		if j.DX != 0 || j.DY != 0 || j.Scale != 1 {
			t.Fatalf("Expected identity jitter, got %+v", j)
		}
	}
}

func TestJitterBounds(t *testing.T) {
	t.Parallel()

	cfg := jitterConfig()
	engine := NewJitterEngine(cfg, rand.NewPCG(42, 0))

	// 0.15 * 20px allows offsets up to 3 pixels after rounding.
	for i := 0; i < 2000; i++ {
		j := engine.Sample()
		if j.DX < -3 || j.DX > 3 {
			t.Fatalf("Sample %d: DX=%d outside [-3, 3]", i, j.DX)
		}
		if j.DY < -3 || j.DY > 3 {
			t.Fatalf("Sample %d: DY=%d outside [-3, 3]", i, j.DY)
		}
		if j.Scale < 0.6 || j.Scale > 1.4 {
			t.Fatalf("Sample %d: Scale=%f outside [0.6, 1.4]", i, j.Scale)
		}
		size := j.SizePx(cfg.FontSize)
		if size < 12 || size > 28 {
			t.Fatalf("Sample %d: size %d outside [12, 28]", i, size)
		}
	}
}

func TestJitterDeterministic(t *testing.T) {
	t.Parallel()

	cfg := jitterConfig()
	a := NewJitterEngine(cfg, rand.NewPCG(3, 9))
	b := NewJitterEngine(cfg, rand.NewPCG(3, 9))

	for i := 0; i < 100; i++ {
		ja, jb := a.Sample(), b.Sample()
		if ja != jb {
			t.Fatalf("Sample %d: sequences diverged, %+v vs %+v", i, ja, jb)
		}
	}
}

func TestJitterDistribution(t *testing.T) {
	t.Parallel()

	cfg := jitterConfig()
	engine := NewJitterEngine(cfg, rand.NewPCG(7, 21))

	n := 5000
	scales := make([]float64, n)
	offsets := make([]float64, n)
	for i := 0; i < n; i++ {
		j := engine.Sample()
		scales[i] = j.Scale
		offsets[i] = float64(j.DX)
	}

	// Uniform [0.6, 1.4] has mean 1.0, uniform offsets center on 0.
	if mean := stat.Mean(scales, nil); math.Abs(mean-1.0) > 0.05 {
		t.Errorf("Expected scale mean near 1.0, got %f", mean)
	}
	if mean := stat.Mean(offsets, nil); math.Abs(mean) > 0.2 {
		t.Errorf("Expected offset mean near 0, got %f", mean)
	}
	if v := stat.Variance(scales, nil); v < 0.01 {
		t.Errorf("Expected scales to spread, got variance %f", v)
	}
}

func TestJitterZeroRange(t *testing.T) {
	t.Parallel()

	cfg := jitterConfig()
	cfg.PositionJitter = 0
	cfg.SizeJitterMin = 1
	cfg.SizeJitterMax = 1
	engine := NewJitterEngine(cfg, rand.NewPCG(5, 5))

	for i := 0; i < 10; i++ {
		j := engine.Sample()
		if j.DX != 0 || j.DY != 0 || j.Scale != 1 {
			t.Fatalf("Expected degenerate ranges to pin jitter, got %+v", j)
		}
	}
}

func TestSizePx(t *testing.T) {
	t.Parallel()

	cases := []struct {
		scale    float64
		fontSize int
		want     int
	}{
		{1.0, 20, 20},
		{0.6, 20, 12},
		{1.4, 20, 28},
		{1.26, 10, 13},
		{0.001, 10, 1},
		{0.6, 1, 1},
	}
	for _, tc := range cases {
		j := Jitter{Scale: tc.scale}
		if got := j.SizePx(tc.fontSize); got != tc.want {
			t.Errorf("SizePx(%d) with scale %f: expected %d, got %d",
				tc.fontSize, tc.scale, tc.want, got)
		}
	}
}
