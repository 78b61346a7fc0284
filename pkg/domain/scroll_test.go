package domain_test

import (
	"testing"

	"github.com/aretw0/kinetic/pkg/domain"
)

func TestDeriveHero(t *testing.T) {
	const height = 600.0

	tests := []struct {
		name       string
		offset     float64
		translateY float64
		opacity    float64
	}{
		{name: "at rest", offset: 0, translateY: 0, opacity: 1},
		{name: "mid fade", offset: 240, translateY: 96, opacity: 0.5},
		{name: "fade boundary", offset: 480, translateY: 192, opacity: 0},
		{name: "past boundary clamps", offset: 550, translateY: 220, opacity: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveHero(tt.offset, height)
			if got.TranslateY != tt.translateY {
				t.Errorf("TranslateY = %v, want %v", got.TranslateY, tt.translateY)
			}
			if got.Opacity != tt.opacity {
				t.Errorf("Opacity = %v, want %v", got.Opacity, tt.opacity)
			}
		})
	}
}

func TestDeriveHero_Monotonic(t *testing.T) {
	const height = 600.0
	prev := domain.DeriveHero(0, height).Opacity
	for offset := 10.0; offset <= height; offset += 10 {
		cur := domain.DeriveHero(offset, height).Opacity
		if cur > prev {
			t.Fatalf("opacity increased at offset %v: %v -> %v", offset, prev, cur)
		}
		prev = cur
	}
}
