package docstore

// Document-store table names. These mirror the persisted layout and must not
// change without a data migration.
const (
	tableSeasons       = "Seasons"
	tableTournaments   = "Tournaments"
	tableMatches       = "Matches"
	tableProfiles      = "Profiles"
	tableTeams         = "Teams"
	tableMiscellaneous = "Miscellaneous"
)

const (
	miscKeySetupIndex = "MatchSetupIds"
	miscKeyChampions  = "ChampionIds"
	miscKeyPatch      = "PatchVersion"
)
