package entity

import "testing"

func TestClassString_RoundTrip(t *testing.T) {
	classes := []Class{Sloop, Brig, Frigate, Galleon}
	for _, class := range classes {
		if got := ClassFromString(class.String()); got != class {
			t.Errorf("ClassFromString(%q) = %v, want %v", class.String(), got, class)
		}
	}
}

func TestClassFromString_UnknownFallsBack(t *testing.T) {
	if got := ClassFromString("Dreadnought"); got != Sloop {
		t.Errorf("ClassFromString(unknown) = %v, want Sloop", got)
	}
	if got := ClassFromString(""); got != Sloop {
		t.Errorf("ClassFromString(empty) = %v, want Sloop", got)
	}
}

func TestClassStats_Progression(t *testing.T) {
	// Heavier classes trade speed and agility for hull and guns.
	order := []Class{Sloop, Brig, Frigate, Galleon}
	for i := 1; i < len(order); i++ {
		lighter := ClassStats(order[i-1])
		heavier := ClassStats(order[i])

		if heavier.MaxHealth <= lighter.MaxHealth {
			t.Errorf("%v health %f should exceed %v health %f",
				order[i], heavier.MaxHealth, order[i-1], lighter.MaxHealth)
		}
		if heavier.MaxSpeed >= lighter.MaxSpeed {
			t.Errorf("%v speed %f should trail %v speed %f",
				order[i], heavier.MaxSpeed, order[i-1], lighter.MaxSpeed)
		}
		if heavier.MountsPerSide <= lighter.MountsPerSide {
			t.Errorf("%v mounts %d should exceed %v mounts %d",
				order[i], heavier.MountsPerSide, order[i-1], lighter.MountsPerSide)
		}
		if heavier.Length <= lighter.Length {
			t.Errorf("%v length %f should exceed %v length %f",
				order[i], heavier.Length, order[i-1], lighter.Length)
		}
	}
}

func TestClassStats_TorpedoTubes(t *testing.T) {
	tests := []struct {
		class Class
		want  bool
	}{
		{Sloop, false},
		{Brig, false},
		{Frigate, true},
		{Galleon, true},
	}
	for _, tt := range tests {
		if got := ClassStats(tt.class).TorpedoTube; got != tt.want {
			t.Errorf("%v torpedo tube = %v, want %v", tt.class, got, tt.want)
		}
	}
}

func TestStats_Elite(t *testing.T) {
	base := ClassStats(Brig)
	elite := base.Elite()

	if elite.MaxHealth != base.MaxHealth*1.8 {
		t.Errorf("elite health = %f, want %f", elite.MaxHealth, base.MaxHealth*1.8)
	}
	if elite.MaxSpeed <= base.MaxSpeed {
		t.Errorf("elite speed %f should exceed base %f", elite.MaxSpeed, base.MaxSpeed)
	}
	if elite.ReloadMin >= base.ReloadMin {
		t.Errorf("elite reload %f should undercut base %f", elite.ReloadMin, base.ReloadMin)
	}
	// Hull dimensions and mount count do not change.
	if elite.Length != base.Length || elite.MountsPerSide != base.MountsPerSide {
		t.Error("elite scaling should not change hull layout")
	}
}
