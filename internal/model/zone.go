// Package model defines the zone taxonomy and the data contracts shared by
// the catalog, the scoring engine and the recommendation core.
package model

import (
	"fmt"
	"sort"
)

// ZoneID identifies one of the eight fixed philosophy zones.
type ZoneID string

const (
	ZoneVelocity   ZoneID = "velocity"
	ZonePerfection ZoneID = "perfection"
	ZoneDiscovery  ZoneID = "discovery"
	ZoneData       ZoneID = "data"
	ZoneIntuition  ZoneID = "intuition"
	ZoneAlignment  ZoneID = "alignment"
	ZoneChaos      ZoneID = "chaos"
	ZoneFocus      ZoneID = "focus"
)

// NumZones is the size of the taxonomy.
const NumZones = 8

// allZones is the enumeration order. Every iteration and tie-break uses it.
var allZones = [NumZones]ZoneID{
	ZoneVelocity, ZonePerfection, ZoneDiscovery, ZoneData,
	ZoneIntuition, ZoneAlignment, ZoneChaos, ZoneFocus,
}

// AllZones returns the zones in enumeration order.
func AllZones() []ZoneID {
	out := make([]ZoneID, NumZones)
	copy(out, allZones[:])
	return out
}

// Zone carries the display metadata for a zone.
type Zone struct {
	ID                   ZoneID `json:"id"`
	Name                 string `json:"name"`
	DisplayName          string `json:"display_name"`
	Icon                 string `json:"icon"`
	Tagline              string `json:"tagline"`
	Description          string `json:"description"`
	BlindSpotDescription string `json:"blind_spot_description"`
}

var zones = map[ZoneID]Zone{
	ZoneVelocity: {
		ID: ZoneVelocity, Name: "Velocity", DisplayName: "Speed", Icon: "⚡",
		Tagline:              "Ship fast, learn faster",
		Description:          "You believe momentum compounds. Small bets shipped quickly beat polished plans that arrive late.",
		BlindSpotDescription: "These perspectives challenge you to embrace speed and iteration",
	},
	ZonePerfection: {
		ID: ZonePerfection, Name: "Perfection", DisplayName: "Craft", Icon: "💎",
		Tagline:              "Quality is the strategy",
		Description:          "You sweat the details because users feel them. Craft is how you earn trust and word of mouth.",
		BlindSpotDescription: "These perspectives highlight the power of craft and attention to detail",
	},
	ZoneDiscovery: {
		ID: ZoneDiscovery, Name: "Discovery", DisplayName: "Discovery", Icon: "🔭",
		Tagline:              "Fall in love with the problem",
		Description:          "You talk to users before you build. Validated problems come first, solutions second.",
		BlindSpotDescription: "These perspectives emphasize user research and validation you might skip",
	},
	ZoneData: {
		ID: ZoneData, Name: "Data", DisplayName: "Data", Icon: "📊",
		Tagline:              "In God we trust, all others bring data",
		Description:          "You reach for metrics and experiments to settle debates and size opportunities.",
		BlindSpotDescription: "These perspectives show how metrics and experimentation can guide decisions",
	},
	ZoneIntuition: {
		ID: ZoneIntuition, Name: "Intuition", DisplayName: "Intuition", Icon: "🔮",
		Tagline:              "Taste is a competitive advantage",
		Description:          "You trust conviction and product sense, especially where data cannot see yet.",
		BlindSpotDescription: "These perspectives celebrate vision and taste over pure analysis",
	},
	ZoneAlignment: {
		ID: ZoneAlignment, Name: "Alignment", DisplayName: "Alignment", Icon: "🤝",
		Tagline:              "Bring everyone along",
		Description:          "You invest in shared context and buy-in so teams move in the same direction.",
		BlindSpotDescription: "These perspectives demonstrate the value of consensus and buy-in",
	},
	ZoneChaos: {
		ID: ZoneChaos, Name: "Chaos", DisplayName: "Adaptability", Icon: "🌪️",
		Tagline:              "Plans are useless, planning is everything",
		Description:          "You thrive in ambiguity and rewrite the plan as the ground shifts.",
		BlindSpotDescription: "These perspectives embrace uncertainty and radical adaptability",
	},
	ZoneFocus: {
		ID: ZoneFocus, Name: "Focus", DisplayName: "Focus", Icon: "🎯",
		Tagline:              "Say no to almost everything",
		Description:          "You win by doing fewer things. Ruthless prioritization protects what matters.",
		BlindSpotDescription: "These perspectives advocate ruthless prioritization you might resist",
	},
}

// Zones returns the metadata for every zone in enumeration order.
func Zones() []Zone {
	out := make([]Zone, 0, NumZones)
	for _, id := range allZones {
		out = append(out, zones[id])
	}
	return out
}

// LookupZone returns the metadata for id.
func LookupZone(id ZoneID) (Zone, bool) {
	z, ok := zones[id]
	return z, ok
}

// ParseZoneID validates s as a zone identifier.
func ParseZoneID(s string) (ZoneID, error) {
	id := ZoneID(s)
	if _, ok := zones[id]; !ok {
		return "", fmt.Errorf("unknown zone %q", s)
	}
	return id, nil
}

// Valid reports whether z is one of the eight zones.
func (z ZoneID) Valid() bool {
	_, ok := zones[z]
	return ok
}

// DisplayName maps a zone to its human-readable label. Unknown zones fall
// back to the raw identifier.
func (z ZoneID) DisplayName() string {
	if meta, ok := zones[z]; ok {
		return meta.DisplayName
	}
	return string(z)
}

// BlindSpotDescription returns the copy shown above contrarian picks for
// a user whose blind spot is id.
func BlindSpotDescription(id ZoneID) string {
	return zones[id].BlindSpotDescription
}

// ZoneVector maps zones to a numeric value. Absent zones read as zero.
type ZoneVector map[ZoneID]float64

// Get returns the value for z, defaulting to zero.
func (v ZoneVector) Get(z ZoneID) float64 {
	if v == nil {
		return 0
	}
	return v[z]
}

// Complete returns a copy of v that holds every zone.
func (v ZoneVector) Complete() ZoneVector {
	out := make(ZoneVector, NumZones)
	for _, id := range allZones {
		out[id] = v.Get(id)
	}
	return out
}

// Dot is the inner product of v and w over the eight zones.
func (v ZoneVector) Dot(w ZoneVector) float64 {
	var sum float64
	for _, id := range allZones {
		sum += v.Get(id) * w.Get(id)
	}
	return sum
}

// ZoneScores are raw quiz points per zone.
type ZoneScores = ZoneVector

// RankedZone pairs a zone with its value.
type RankedZone struct {
	Zone  ZoneID  `json:"zone"`
	Value float64 `json:"value"`
}

// Ranked orders the zones by value descending. Equal values keep
// enumeration order, so the earliest zone wins a tie for the top rank and
// the latest zone takes the bottom rank.
func (v ZoneVector) Ranked() []RankedZone {
	out := make([]RankedZone, 0, NumZones)
	for _, id := range allZones {
		out = append(out, RankedZone{Zone: id, Value: v.Get(id)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// Percentages normalizes scores to whole percentages that sum to exactly
// 100 using largest-remainder rounding. Remainder ties go to the zone that
// comes first in enumeration order. A vector with no positive total
// yields all zeros.
func Percentages(scores ZoneScores) ZoneVector {
	out := make(ZoneVector, NumZones)
	total := 0.0
	for _, id := range allZones {
		if s := scores.Get(id); s > 0 {
			total += s
		}
	}
	if total <= 0 {
		for _, id := range allZones {
			out[id] = 0
		}
		return out
	}

	type part struct {
		zone      ZoneID
		floor     float64
		remainder float64
	}
	parts := make([]part, 0, NumZones)
	assigned := 0.0
	for _, id := range allZones {
		s := scores.Get(id)
		if s < 0 {
			s = 0
		}
		exact := s / total * 100
		fl := float64(int(exact))
		parts = append(parts, part{zone: id, floor: fl, remainder: exact - fl})
		assigned += fl
	}

	byRemainder := make([]int, len(parts))
	for i := range byRemainder {
		byRemainder[i] = i
	}
	sort.SliceStable(byRemainder, func(i, j int) bool {
		return parts[byRemainder[i]].remainder > parts[byRemainder[j]].remainder
	})
	for k := 0; k < int(100-assigned) && k < len(byRemainder); k++ {
		parts[byRemainder[k]].floor++
	}

	for _, p := range parts {
		out[p.zone] = p.floor
	}
	return out
}
