package profile

// Profile is a registered player identity.
type Profile struct {
	ProfilePID  int64  `json:"ProfilePId"`
	ProfileName string `json:"ProfileName"`
}
