package types

// GuildStats summarizes the non-voided cases of a guild.
type GuildStats struct {
	Total   int `bun:"total"   json:"total"`
	Warns   int `bun:"warns"   json:"warns"`
	Mutes   int `bun:"mutes"   json:"mutes"`
	Kicks   int `bun:"kicks"   json:"kicks"`
	Bans    int `bun:"bans"    json:"bans"`
	Active  int `bun:"active"  json:"active"`
	Deleted int `bun:"deleted" json:"deleted"`
}

// ModeratorStats is the number of cases a moderator issued in a period.
type ModeratorStats struct {
	ModeratorID string `bun:"moderator_id" json:"moderatorId"`
	CaseCount   int    `bun:"case_count"   json:"caseCount"`
}
