package domain_test

import (
	"testing"

	"github.com/aretw0/kinetic/pkg/domain"
)

func TestRectIntersects(t *testing.T) {
	const height = 600.0

	tests := []struct {
		name string
		rect domain.Rect
		want bool
	}{
		{name: "fully inside", rect: domain.Rect{Top: 100, Bottom: 300}, want: true},
		{name: "straddles top edge", rect: domain.Rect{Top: -50, Bottom: 50}, want: true},
		{name: "straddles bottom edge", rect: domain.Rect{Top: 550, Bottom: 700}, want: true},
		{name: "above viewport", rect: domain.Rect{Top: -300, Bottom: -10}, want: false},
		{name: "below viewport", rect: domain.Rect{Top: 700, Bottom: 900}, want: false},
		{name: "touching bottom edge", rect: domain.Rect{Top: 600, Bottom: 800}, want: true},
		{name: "touching top edge", rect: domain.Rect{Top: -200, Bottom: 0}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Intersects(height); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", height, got, tt.want)
			}
		})
	}
}
