package material

import "testing"

func TestPresetsAreWellFormed(t *testing.T) {
	presets := map[string]Material{
		"bronze":        Bronze(),
		"emerald":       Emerald(),
		"white plastic": WhitePlastic(),
		"red plastic":   RedPlastic(),
		"black plastic": BlackPlastic(),
		"silver":        Silver(),
		"mirror":        Mirror(),
		"glass":         Glass(),
		"blue water":    BlueWater(),
	}
	for name, m := range presets {
		t.Run(name, func(t *testing.T) {
			for _, k := range []float64{m.Diffusion, m.Reflection, m.Refraction} {
				if k < 0 || k > 1 {
					t.Errorf("coefficient %f outside [0,1]", k)
				}
			}
			if m.InIndex <= 0 || m.OutIndex <= 0 {
				t.Errorf("refractive indices must be positive, got %f/%f", m.InIndex, m.OutIndex)
			}
		})
	}
}

func TestInverted(t *testing.T) {
	g := Glass()
	inv := g.Inverted()
	if inv.InIndex != g.OutIndex || inv.OutIndex != g.InIndex {
		t.Errorf("Inverted indices = %f/%f, want %f/%f", inv.InIndex, inv.OutIndex, g.OutIndex, g.InIndex)
	}
	if g.InIndex != 1.5 {
		t.Error("Inverted must not modify the receiver")
	}
}
