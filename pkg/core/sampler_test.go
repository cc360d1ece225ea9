package core

import (
	"testing"
)

func drawSequence(s Sampler, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = s.Get1D()
	}
	return values
}

func TestPixelSampler_Deterministic(t *testing.T) {
	a := drawSequence(NewPixelSampler(42, 10, 20, 3), 16)
	b := drawSequence(NewPixelSampler(42, 10, 20, 3), 16)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Sequences diverge at dimension %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPixelSampler_DecorrelatedAcrossPixels(t *testing.T) {
	tests := []struct {
		name string
		a, b *PixelSampler
	}{
		{"different seed", NewPixelSampler(1, 0, 0, 0), NewPixelSampler(2, 0, 0, 0)},
		{"different x", NewPixelSampler(42, 0, 0, 0), NewPixelSampler(42, 1, 0, 0)},
		{"different y", NewPixelSampler(42, 0, 0, 0), NewPixelSampler(42, 0, 1, 0)},
		{"different sample index", NewPixelSampler(42, 0, 0, 0), NewPixelSampler(42, 0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := drawSequence(tt.a, 8)
			b := drawSequence(tt.b, 8)

			same := 0
			for i := range a {
				if a[i] == b[i] {
					same++
				}
			}
			if same == len(a) {
				t.Error("Expected decorrelated sequences, got identical ones")
			}
		})
	}
}

func TestPixelSampler_ResetMatchesFreshSampler(t *testing.T) {
	reused := NewPixelSampler(7, 0, 0, 0)
	drawSequence(reused, 5) // consume part of the stream

	reused.Reset(7, 3, 4, 2)
	fresh := NewPixelSampler(7, 3, 4, 2)

	a := drawSequence(reused, 16)
	b := drawSequence(fresh, 16)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Reset sampler diverges at dimension %d", i)
		}
	}
}

func TestPixelSampler_ValuesInRange(t *testing.T) {
	sampler := NewPixelSampler(42, 5, 5, 0)
	for i := 0; i < 100; i++ {
		if v := sampler.Get1D(); v < 0 || v >= 1 {
			t.Fatalf("Get1D out of [0,1): %f", v)
		}
		s := sampler.Get2D()
		if s.X < 0 || s.X >= 1 || s.Y < 0 || s.Y >= 1 {
			t.Fatalf("Get2D out of [0,1): %v", s)
		}
	}
}

func TestPixelSampler_DimensionCounter(t *testing.T) {
	sampler := NewPixelSampler(42, 0, 0, 0)
	sampler.Get1D()
	sampler.Get2D()
	sampler.Get2D()
	if got := sampler.Dimension(); got != 5 {
		t.Errorf("Expected 5 dimensions consumed, got %d", got)
	}

	sampler.Reset(42, 0, 0, 1)
	if got := sampler.Dimension(); got != 0 {
		t.Errorf("Expected dimension counter reset to 0, got %d", got)
	}
}
