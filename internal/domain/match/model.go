package match

// PendingMatch is a match document before submission. Setup stays mutable
// through validation (resolved PIds are written back into it) and disappears
// once the canonical record replaces the document.
type PendingMatch struct {
	MatchPID string `json:"MatchPId"`
	Setup    *Setup `json:"Setup,omitempty"`
}

type Setup struct {
	Teams SetupTeams `json:"Teams"`
}

type SetupTeams struct {
	BlueTeam SetupTeam `json:"BlueTeam"`
	RedTeam  SetupTeam `json:"RedTeam"`
}

type SetupTeam struct {
	TeamName string        `json:"TeamName"`
	TeamPID  int64         `json:"TeamPId,omitempty"`
	Bans     []int         `json:"Bans"`
	Players  []SetupPlayer `json:"Players"`
}

type SetupPlayer struct {
	ProfileName string `json:"ProfileName"`
	ProfilePID  int64  `json:"ProfilePId,omitempty"`
	Role        string `json:"Role"`
}

// Record is the canonical match document persisted to both stores after a
// validated submission.
type Record struct {
	MatchPID   string                `json:"MatchPId"`
	DatePlayed int64                 `json:"DatePlayed"`
	Patch      string                `json:"Patch,omitempty"`
	Teams      map[string]RecordTeam `json:"Teams"`
}

type RecordTeam struct {
	TeamPID int64          `json:"TeamPId"`
	TeamHID string         `json:"TeamHId,omitempty"`
	Bans    []int          `json:"Bans"`
	Players []RecordPlayer `json:"Players"`
}

type RecordPlayer struct {
	ProfilePID int64  `json:"ProfilePId"`
	ProfileHID string `json:"ProfileHId,omitempty"`
	Role       string `json:"Role"`
}

const (
	SideBlue = "Blue"
	SideRed  = "Red"
)
