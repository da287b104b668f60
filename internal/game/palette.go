package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

// Palette is the neon synthwave scheme used across the renderer and HUD.
var Palette = struct {
	Sky        RGB
	Horizon    RGB
	Grid       RGB
	GridPulse  RGB
	Building   RGB
	BuildingHi RGB
	Perfect    RGB
	Good       RGB
	Miss       RGB
	JudgeLine  RGB
	Star       RGB
	Rain       RGB
	SkylineFar RGB
	SkylineMid RGB
	SkylineNr  RGB
	HUD        RGB
	HUDDim     RGB
	Warning    RGB
}{
	Sky:        RGB{R: 8, G: 4, B: 26},
	Horizon:    RGB{R: 255, G: 64, B: 160},
	Grid:       RGB{R: 120, G: 40, B: 200},
	GridPulse:  RGB{R: 255, G: 80, B: 220},
	Building:   RGB{R: 60, G: 220, B: 255},
	BuildingHi: RGB{R: 170, G: 250, B: 255},
	Perfect:    RGB{R: 80, G: 255, B: 160},
	Good:       RGB{R: 255, G: 220, B: 80},
	Miss:       RGB{R: 255, G: 70, B: 90},
	JudgeLine:  RGB{R: 255, G: 255, B: 255},
	Star:       RGB{R: 210, G: 210, B: 255},
	Rain:       RGB{R: 40, G: 255, B: 140},
	SkylineFar: RGB{R: 36, G: 16, B: 70},
	SkylineMid: RGB{R: 58, G: 24, B: 104},
	SkylineNr:  RGB{R: 84, G: 34, B: 150},
	HUD:        RGB{R: 235, G: 240, B: 255},
	HUDDim:     RGB{R: 130, G: 140, B: 180},
	Warning:    RGB{R: 255, G: 90, B: 90},
}

// HealthBarColor returns green/yellow/red based on fraction.
func HealthBarColor(frac float64) RGB {
	if frac > 0.6 {
		return RGB{R: 60, G: 220, B: 60}
	}
	if frac > 0.3 {
		return RGB{R: 220, G: 220, B: 60}
	}
	return RGB{R: 220, G: 60, B: 60}
}
