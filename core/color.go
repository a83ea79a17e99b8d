package core

// RGB stores explicit 8-bit color channels, decoupled from any renderer
type RGB struct {
	R, G, B uint8
}

// Palette used by drawables
var (
	RGBBlack      = RGB{0, 0, 0}
	RGBWhite      = RGB{255, 255, 255}
	RGBGrass      = RGB{96, 148, 62}
	RGBDropZone   = RGB{124, 170, 86}
	RGBCollision  = RGB{180, 60, 60}
	RGBBuilding   = RGB{150, 120, 90}
	RGBDefense    = RGB{90, 90, 160}
	RGBWall       = RGB{110, 110, 110}
	RGBResource   = RGB{210, 180, 40}
	RGBTownHall   = RGB{200, 110, 40}
	RGBRubble     = RGB{70, 60, 50}
	RGBAttacker   = RGB{230, 60, 60}
	RGBDefender   = RGB{60, 120, 230}
	RGBAir        = RGB{240, 140, 200}
	RGBSpell      = RGB{150, 220, 255}
	RGBHealth     = RGB{40, 220, 40}
	RGBProjectile = RGB{255, 230, 120}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}
