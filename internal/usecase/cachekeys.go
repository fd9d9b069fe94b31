package usecase

// Cache key layout. Every denormalized read view owns one prefix so that
// invalidation after a write can target exactly the views the write touched.
const (
	cacheKeySeasonID        = "season:id:"
	cacheKeySeasonShortName = "season:shortname:"
	cacheKeySeasonName      = "season:name:"
	cacheKeySeasonTime      = "season:time:"
	cacheKeySeasonTab       = "season:tab:"
	cacheKeySeasonInfo      = "season:info:"
	cacheKeySeasonRoster    = "season:roster:"
	cacheKeySeasonRegular   = "season:regular:"
	cacheKeySeasonPlayoffs  = "season:playoffs:"
	cacheKeyLeagueSummary   = "league:summary"

	cacheKeyTournamentShortName = "tournament:shortname:"
	cacheKeyProfileName         = "profile:name:"
	cacheKeyProfileID           = "profile:id:"
	cacheKeyTeamName            = "team:name:"
	cacheKeyTeamID              = "team:id:"
)
