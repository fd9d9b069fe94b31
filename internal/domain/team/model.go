package team

// Team is a league team identity.
type Team struct {
	TeamPID  int64  `json:"TeamPId"`
	TeamName string `json:"TeamName"`
}
