package model

import (
	"math"
	"testing"
)

func TestPercentagesSumTo100(t *testing.T) {
	tests := []struct {
		name   string
		scores ZoneScores
	}{
		{"single zone", ZoneScores{ZoneVelocity: 5}},
		{"thirds", ZoneScores{ZoneVelocity: 1, ZoneData: 1, ZoneFocus: 1}},
		{"sevenths", ZoneScores{ZoneVelocity: 1, ZonePerfection: 1, ZoneDiscovery: 1, ZoneData: 1, ZoneIntuition: 1, ZoneAlignment: 1, ZoneChaos: 1}},
		{"uneven", ZoneScores{ZoneVelocity: 13, ZoneData: 7, ZoneChaos: 2.5, ZoneFocus: 0.5}},
		{"negative ignored", ZoneScores{ZoneVelocity: 3, ZoneData: -2, ZoneFocus: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct := Percentages(tt.scores)
			if len(pct) != NumZones {
				t.Fatalf("expected %d zones, got %d", NumZones, len(pct))
			}
			total := 0.0
			for _, z := range AllZones() {
				v, ok := pct[z]
				if !ok {
					t.Fatalf("zone %s missing", z)
				}
				if v < 0 || v > 100 || v != math.Trunc(v) {
					t.Errorf("zone %s = %v, want whole number in [0,100]", z, v)
				}
				total += v
			}
			if total != 100 {
				t.Errorf("sum = %v, want 100", total)
			}
		})
	}
}

func TestPercentagesTieBreak(t *testing.T) {
	pct := Percentages(ZoneScores{ZoneVelocity: 1, ZoneData: 1, ZoneFocus: 1})
	// 33.33 each; the spare point goes to the earliest zone.
	if pct[ZoneVelocity] != 34 || pct[ZoneData] != 33 || pct[ZoneFocus] != 33 {
		t.Errorf("unexpected split: %v", pct)
	}
}

func TestPercentagesZeroSignal(t *testing.T) {
	pct := Percentages(ZoneScores{})
	for _, z := range AllZones() {
		if pct[z] != 0 {
			t.Errorf("zone %s = %v, want 0", z, pct[z])
		}
	}
}

func TestRankedTieBreak(t *testing.T) {
	v := ZoneVector{ZoneData: 20, ZoneChaos: 20, ZoneVelocity: 10}
	ranked := v.Ranked()
	if len(ranked) != NumZones {
		t.Fatalf("expected %d entries, got %d", NumZones, len(ranked))
	}
	if ranked[0].Zone != ZoneData || ranked[1].Zone != ZoneChaos || ranked[2].Zone != ZoneVelocity {
		t.Errorf("unexpected order: %v", ranked[:3])
	}
	// Zero-valued zones keep enumeration order, so focus is last.
	if ranked[NumZones-1].Zone != ZoneFocus {
		t.Errorf("expected focus last, got %s", ranked[NumZones-1].Zone)
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[ZoneID]string{
		ZoneVelocity:   "Speed",
		ZonePerfection: "Craft",
		ZoneChaos:      "Adaptability",
		ZoneFocus:      "Focus",
		ZoneID("other"): "other",
	}
	for id, want := range tests {
		if got := id.DisplayName(); got != want {
			t.Errorf("%s.DisplayName() = %q, want %q", id, got, want)
		}
	}
}

func TestParseZoneID(t *testing.T) {
	if _, err := ParseZoneID("velocity"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseZoneID("speed"); err == nil {
		t.Error("expected error for display name used as id")
	}
}

func TestDot(t *testing.T) {
	a := ZoneVector{ZoneVelocity: 0.6, ZoneFocus: 0.2}
	b := ZoneVector{ZoneVelocity: 0.4, ZoneFocus: 0.2, ZoneData: 1}
	if got := a.Dot(b); math.Abs(got-0.28) > 1e-9 {
		t.Errorf("Dot = %v, want 0.28", got)
	}
	var nilVec ZoneVector
	if nilVec.Get(ZoneData) != 0 {
		t.Error("nil vector should read zero")
	}
}
