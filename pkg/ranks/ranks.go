// Package ranks holds the Overwatch 2 competitive tiers, their display
// tables and the classification of the API rank payloads.
package ranks

import "strings"

// Canonical rank identifiers, stored in lowercase.
const (
	Ultimate    = "ultimate"
	Grandmaster = "grandmaster"
	Master      = "master"
	Diamond     = "diamond"
	Platinum    = "platinum"
	Gold        = "gold"
	Silver      = "silver"
	Bronze      = "bronze"
	Unranked    = "unranked"
	Unknown     = "unknown"
)

// Order lists every rank from the highest tier to the lowest.
var Order = []string{
	Ultimate,
	Grandmaster,
	Master,
	Diamond,
	Platinum,
	Gold,
	Silver,
	Bronze,
	Unranked,
	Unknown,
}

// DisplayNames maps a rank to its capitalized display name.
var DisplayNames = map[string]string{
	Ultimate:    "Ultimate",
	Grandmaster: "Grandmaster",
	Master:      "Master",
	Diamond:     "Diamond",
	Platinum:    "Platinum",
	Gold:        "Gold",
	Silver:      "Silver",
	Bronze:      "Bronze",
	Unranked:    "Unranked",
	Unknown:     "Unknown",
}

// Emojis maps a rank to its embed emoji.
var Emojis = map[string]string{
	Ultimate:    "\U0001F451",
	Grandmaster: "\U0001F3C6",
	Master:      "\U0001F7E0",
	Diamond:     "\U0001F48E",
	Platinum:    "\U0001F537",
	Gold:        "\U0001F7E1",
	Silver:      "⚪",
	Bronze:      "\U0001F7E4",
	Unranked:    "⬜",
	Unknown:     "❓",
}

// Colors maps a rank to its embed color.
var Colors = map[string]int{
	Ultimate:    0xE91E63,
	Grandmaster: 0xF1C40F,
	Master:      0xE67E22,
	Diamond:     0xB9F2FF,
	Platinum:    0x3498DB,
	Gold:        0xFFD700,
	Silver:      0xBDC3C7,
	Bronze:      0xCD7F32,
	Unranked:    0x95A5A6,
	Unknown:     0x7F8C8D,
}

// Role is the competitive placement of a single role.
type Role struct {
	Division string `json:"division"`
}

// Platform holds the per-role placements of a platform.
type Platform struct {
	Tank    *Role `json:"tank"`
	Damage  *Role `json:"damage"`
	Support *Role `json:"support"`
}

// Competitive is the competitive section of the player summary.
// Only the PC platform is tracked.
type Competitive struct {
	PC *Platform `json:"pc"`
}

// Priority returns the sort position of a rank, lower is better.
// Unrecognized ranks sort after every known rank.
func Priority(rank string) int {
	rank = strings.ToLower(rank)
	for i, known := range Order {
		if known == rank {
			return i
		}
	}
	return len(Order)
}

// Highest returns the best rank across the PC roles of a competitive
// payload. Missing data comes back as unknown, a present platform without
// any placed role comes back as unranked.
func Highest(competitive *Competitive) string {
	if competitive == nil || competitive.PC == nil {
		return Unknown
	}

	best := ""
	for _, role := range []*Role{competitive.PC.Tank, competitive.PC.Damage, competitive.PC.Support} {
		if role == nil || role.Division == "" {
			continue
		}

		rank := strings.ToLower(role.Division)
		if Priority(rank) == len(Order) {
			rank = Unknown
		}

		if best == "" || Priority(rank) < Priority(best) {
			best = rank
		}
	}

	if best == "" {
		return Unranked
	}
	return best
}

// FormatDisplay renders a rank with its emoji for the embeds.
func FormatDisplay(rank string) string {
	rank = strings.ToLower(rank)
	if _, ok := DisplayNames[rank]; !ok {
		rank = Unknown
	}
	return Emojis[rank] + " " + DisplayNames[rank]
}
