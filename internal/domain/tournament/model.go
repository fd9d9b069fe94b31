package tournament

// Tournament is one half of a season's split: Regular or Playoffs.
type Tournament struct {
	TournamentPID       int64       `json:"TournamentPId"`
	TournamentShortName string      `json:"TournamentShortName"`
	Information         Information `json:"Information"`
}

type Information struct {
	TournamentName      string `json:"TournamentName"`
	TournamentType      string `json:"TournamentType"`
	TournamentShortName string `json:"TournamentShortName"`
	TournamentTabName   string `json:"TournamentTabName"`
	SeasonPID           int64  `json:"SeasonPId"`
}

const (
	TypeRegular  = "Regular"
	TypePlayoffs = "Playoffs"
)
