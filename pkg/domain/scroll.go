package domain

// HeroFadeSpan is the fraction of the viewport height over which the hero
// panel fades from fully opaque to fully transparent.
const HeroFadeSpan = 0.8

// HeroParallaxRate is the fraction of the scroll offset applied as the hero
// panel's downward translation.
const HeroParallaxRate = 0.4

// HeroEffect is the derived translation/opacity pair for the hero panel.
// It is present on a ScrollState only while a hero element exists and the
// offset is less than one viewport height.
type HeroEffect struct {
	TranslateY float64
	Opacity    float64
}

// ScrollState is the single process-wide scroll snapshot published by the
// Ticker. Only the Ticker writes it; consumers receive copies.
type ScrollState struct {
	Offset float64
	Hero   *HeroEffect
}

// DeriveHero computes the hero transform for a given offset and viewport
// height. Opacity is 1 at offset 0, strictly decreasing, and clamps at 0
// once the offset reaches HeroFadeSpan of the viewport height.
func DeriveHero(offset, viewportHeight float64) HeroEffect {
	opacity := 1 - offset/(viewportHeight*HeroFadeSpan)
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return HeroEffect{
		TranslateY: offset * HeroParallaxRate,
		Opacity:    opacity,
	}
}
