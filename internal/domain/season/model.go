package season

// Season is the full season document. The JSON field names are the document
// store's attribute names and must stay stable across deployments.
type Season struct {
	SeasonPID       int64       `json:"SeasonPId"`
	SeasonShortName string      `json:"SeasonShortName"`
	Information     Information `json:"Information"`
	Codes           Codes       `json:"Codes"`
	Roster          Roster      `json:"Roster"`
	Regular         *Regular    `json:"Regular,omitempty"`
	Playoffs        *Playoffs   `json:"Playoffs,omitempty"`
}

type Information struct {
	Status          string          `json:"Status"`
	DateOpened      int64           `json:"DateOpened"`
	SeasonName      string          `json:"SeasonName"`
	SeasonShortName string          `json:"SeasonShortName"`
	SeasonTabName   string          `json:"SeasonTabName"`
	SeasonTime      string          `json:"SeasonTime"`
	Description     string          `json:"Description"`
	LeagueCode      string          `json:"LeagueCode"`
	LeagueRank      string          `json:"LeagueRank"`
	LeagueType      string          `json:"LeagueType"`
	TournamentPIDs  TournamentPIDs  `json:"TournamentPIds"`
	FinalStandings  []FinalStanding `json:"FinalStandings,omitempty"`
	FinalsMvpHID    string          `json:"FinalsMvpHId,omitempty"`
	FinalsMvpName   string          `json:"FinalsMvpName,omitempty"`
	AllStars        *AllStars       `json:"AllStars,omitempty"`
}

type TournamentPIDs struct {
	RegTournamentPID        int64  `json:"RegTournamentPId"`
	PostTournamentPID       int64  `json:"PostTournamentPId"`
	RegTournamentShortName  string `json:"RegTournamentShortName,omitempty"`
	PostTournamentShortName string `json:"PostTournamentShortName,omitempty"`
}

type FinalStanding struct {
	Place    int    `json:"Place"`
	TeamHID  string `json:"TeamHId"`
	TeamName string `json:"TeamName,omitempty"`
}

type AllStars struct {
	TopHID      string `json:"TopHId"`
	JungleHID   string `json:"JungleHId"`
	MidHID      string `json:"MidHId"`
	BotHID      string `json:"BotHId"`
	SupportHID  string `json:"SupportHId"`
	TopName     string `json:"TopName,omitempty"`
	JungleName  string `json:"JungleName,omitempty"`
	MidName     string `json:"MidName,omitempty"`
	BotName     string `json:"BotName,omitempty"`
	SupportName string `json:"SupportName,omitempty"`
}

// Codes is the season's tournament-code ledger, keyed by uppercase week label.
type Codes struct {
	TournamentAPIID int64                `json:"TournamentApiId"`
	Weeks           map[string]WeekCodes `json:"Weeks"`
}

type WeekCodes struct {
	Timestamp int64          `json:"Timestamp"`
	Primary   []MatchupCodes `json:"Primary"`
	Backups   []string       `json:"Backups"`
}

type MatchupCodes struct {
	Team1 string   `json:"Team1"`
	Team2 string   `json:"Team2"`
	Codes []string `json:"Codes"`
}

// Roster maps hash IDs to team and profile entries. A team hash ID maps to
// exactly one team entry; a profile hash ID appears in at most one team's
// player mapping at a time.
type Roster struct {
	Teams    map[string]RosterTeam    `json:"Teams"`
	Profiles map[string]RosterProfile `json:"Profiles"`
}

type RosterTeam struct {
	Players  map[string]PlayerEntry `json:"Players"`
	TeamName string                 `json:"TeamName,omitempty"`
	TeamHID  string                 `json:"TeamHId,omitempty"`
}

type PlayerEntry struct {
	ProfileName string `json:"ProfileName,omitempty"`
	ProfileHID  string `json:"ProfileHId,omitempty"`
}

type RosterProfile struct {
	MostRecentTeamHID string `json:"MostRecentTeamHId"`
}

type Regular struct {
	RegularSeasonDivisions []Division `json:"RegularSeasonDivisions"`
	RegularSeasonGames     []Game     `json:"RegularSeasonGames"`
}

type Division struct {
	DivisionName       string         `json:"DivisionName,omitempty"`
	RegularSeasonTeams []StandingTeam `json:"RegularSeasonTeams"`
}

type StandingTeam struct {
	TeamHID  string `json:"TeamHId"`
	TeamName string `json:"TeamName,omitempty"`
	Wins     int    `json:"Wins"`
	Losses   int    `json:"Losses"`
}

type Game struct {
	MatchPID      string `json:"MatchPId,omitempty"`
	Week          string `json:"Week,omitempty"`
	BlueTeamHID   string `json:"BlueTeamHId"`
	RedTeamHID    string `json:"RedTeamHId"`
	ModeratorHID  string `json:"ModeratorHId,omitempty"`
	MvpHID        string `json:"MvpHId,omitempty"`
	BlueTeamName  string `json:"BlueTeamName,omitempty"`
	RedTeamName   string `json:"RedTeamName,omitempty"`
	ModeratorName string `json:"ModeratorName,omitempty"`
	MvpName       string `json:"MvpName,omitempty"`
}

type Playoffs struct {
	PlayoffBracket map[string][]Series `json:"PlayoffBracket"`
	PlayoffGames   []Game              `json:"PlayoffGames"`
}

type Series struct {
	HigherTeamHID  string `json:"HigherTeamHId"`
	LowerTeamHID   string `json:"LowerTeamHId"`
	SeriesMvpHID   string `json:"SeriesMvpHId,omitempty"`
	HigherTeamName string `json:"HigherTeamName,omitempty"`
	LowerTeamName  string `json:"LowerTeamName,omitempty"`
	SeriesMvpName  string `json:"SeriesMvpName,omitempty"`
}
