package recommend

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rcliao/pm-philosophy/internal/model"
	"github.com/rcliao/pm-philosophy/internal/snippet"
)

const (
	sharedInfluence = 0.15
	sharedUserShare = 20

	// quoteReasonMinRunes is how long the best quote must be before the
	// reason quotes it instead of naming zones. Counted in code points, not
	// UTF-16 units, so emoji and astral text measure shorter.
	quoteReasonMinRunes = 50

	defaultGuestName = "This guest"
)

// SharedZones lists zones the episode leans on that the user also holds
// strongly, strongest episode influence first. Equal influence keeps zone
// enumeration order.
func SharedZones(profile *model.UserProfile, influence model.ZoneVector) []model.ZoneID {
	var shared []model.ZoneID
	for _, z := range model.AllZones() {
		if influence.Get(z) > sharedInfluence && profile.Strength(z) > sharedUserShare {
			shared = append(shared, z)
		}
	}
	sort.SliceStable(shared, func(i, j int) bool {
		return influence.Get(shared[i]) > influence.Get(shared[j])
	})
	return shared
}

// GuestFirstName returns the first space-separated token of guest.
func GuestFirstName(guest string) string {
	if first := strings.Split(guest, " ")[0]; first != "" {
		return first
	}
	return defaultGuestName
}

// MatchReason explains in one line why an episode fits the user. A long
// enough best quote is cited directly; otherwise the reason names the
// shared zones.
func MatchReason(profile *model.UserProfile, guest string, influence model.ZoneVector, best *model.Quote) string {
	shared := SharedZones(profile, influence)
	name := GuestFirstName(guest)

	if best != nil && utf8.RuneCountInString(best.Text) > quoteReasonMinRunes {
		clause := snippet.Clause(best.Text)
		if len(shared) > 0 {
			return fmt.Sprintf("%s on %s: \"%s\"", name, zoneLabel(shared[0]), clause)
		}
		return fmt.Sprintf("%s's insight: \"%s\"", name, clause)
	}

	switch len(shared) {
	case 0:
		return "Aligns with your overall product philosophy"
	case 1:
		return fmt.Sprintf("%s shares your emphasis on %s", name, zoneLabel(shared[0]))
	default:
		return fmt.Sprintf("%s shares your focus on %s and %s", name, zoneLabel(shared[0]), zoneLabel(shared[1]))
	}
}

func zoneLabel(z model.ZoneID) string {
	return strings.ToLower(z.DisplayName())
}
