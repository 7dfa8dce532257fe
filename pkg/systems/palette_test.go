package systems

import (
	"image/color"
	"testing"

	"github.com/decker502/starfield/pkg/components"
	"github.com/decker502/starfield/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

func newParticleWithLife(life, maxLife int) *components.Particle {
	return &components.Particle{Life: life, MaxLife: maxLife}
}

func TestNewPalette_Themes(t *testing.T) {
	dark := NewPalette("#00e1ff", config.ThemeDark)
	light := NewPalette("#00e1ff", config.ThemeLight)

	if dark.BaseHue != light.BaseHue {
		t.Errorf("theme must not change the base hue: %f vs %f", dark.BaseHue, light.BaseHue)
	}
	if dark.AlphaScale != 1 || light.AlphaScale >= 1 {
		t.Errorf("alpha scale dark=%f light=%f", dark.AlphaScale, light.AlphaScale)
	}
	if dark.BackdropBlend() != BlendScreen {
		t.Errorf("dark backdrop blend = %v, want screen", dark.BackdropBlend())
	}
	if light.BackdropBlend() != BlendMultiply {
		t.Errorf("light backdrop blend = %v, want multiply", light.BackdropBlend())
	}

	db, lb := dark.Background(), light.Background()
	if int(db.R)+int(db.G)+int(db.B) >= int(lb.R)+int(lb.G)+int(lb.B) {
		t.Errorf("dark background %v should be darker than light %v", db, lb)
	}
}

func TestNewPalette_InvalidColorFallsBack(t *testing.T) {
	bad := NewPalette("not-a-color", config.ThemeDark)
	def := NewPalette(config.DefaultAnimationColor, config.ThemeDark)
	if bad.BaseHue != def.BaseHue {
		t.Errorf("invalid colour hue = %f, want default %f", bad.BaseHue, def.BaseHue)
	}
}

func TestPalette_ColorAppliesThemeCurve(t *testing.T) {
	light := NewPalette("#00e1ff", config.ThemeLight)
	c := light.Color(180, 1, 0.5, 1)
	if c.A != 153 {
		t.Errorf("light alpha = %d, want 153 (0.6 × 255)", c.A)
	}
}

func TestFade(t *testing.T) {
	c := Fade(color.NRGBA{R: 10, A: 200}, 0.5)
	if c.A != 100 || c.R != 10 {
		t.Errorf("Fade = %v", c)
	}
	if Fade(c, 2).A != 100 {
		t.Error("factors above 1 are clamped")
	}
}

func TestBlendMode(t *testing.T) {
	tests := []struct {
		mode BlendMode
		name string
		src  ebiten.BlendFactor
		dst  ebiten.BlendFactor
	}{
		{BlendSourceOver, "source-over", ebiten.BlendFactorOne, ebiten.BlendFactorOneMinusSourceAlpha},
		{BlendScreen, "screen", ebiten.BlendFactorOne, ebiten.BlendFactorOneMinusSourceColor},
		{BlendMultiply, "multiply", ebiten.BlendFactorDestinationColor, ebiten.BlendFactorOneMinusSourceAlpha},
		{BlendLighter, "lighter", ebiten.BlendFactorOne, ebiten.BlendFactorOne},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.mode.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.mode.String(), tt.name)
			}
			b := tt.mode.Ebiten()
			if b.BlendFactorSourceRGB != tt.src || b.BlendFactorDestinationRGB != tt.dst {
				t.Errorf("factors = %v/%v, want %v/%v", b.BlendFactorSourceRGB, b.BlendFactorDestinationRGB, tt.src, tt.dst)
			}
		})
	}
}
