package overfast

import "owqueue/pkg/ranks"

// PlayerSummary is the return of the player summary endpoint.
// Only the fields used by the bot are mapped.
type PlayerSummary struct {
	Username    string             `json:"username"`
	Title       string             `json:"title"`
	Endorsement *Endorsement       `json:"endorsement"`
	Competitive *ranks.Competitive `json:"competitive"`
}

// Endorsement is the endorsement level of a player.
type Endorsement struct {
	Level int `json:"level"`
}
