package identifier

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Hash IDs are the roster's internal key space: an opaque, deterministic
// derivation from the externally assigned numeric PId. Keeping the two key
// spaces distinct lets roster keys stay stable even if display surfaces of
// the numeric IDs change.
const (
	profileSalt uint64 = 0x5eb1a9c4d3f07
	teamSalt    uint64 = 0x2c8fd6a1b4e93
	offset      uint64 = 0x10000
)

func ProfileHashID(profileID int64) string {
	return encode(profileSalt, profileID)
}

func TeamHashID(teamID int64) string {
	return encode(teamSalt, teamID)
}

func DecodeProfileHashID(hashID string) (int64, error) {
	return decode(profileSalt, hashID)
}

func DecodeTeamHashID(hashID string) (int64, error) {
	return decode(teamSalt, hashID)
}

func encode(salt uint64, id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatUint((uint64(id)+offset)^salt, 36)
}

func decode(salt uint64, hashID string) (int64, error) {
	hashID = strings.TrimSpace(hashID)
	if hashID == "" {
		return 0, fmt.Errorf("hash id is empty")
	}
	v, err := strconv.ParseUint(hashID, 36, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hash id %q: %w", hashID, err)
	}
	raw := v ^ salt
	if raw <= offset {
		return 0, fmt.Errorf("hash id %q does not decode to a valid id", hashID)
	}
	return int64(raw - offset), nil
}

// FilterName normalizes a display name into its lookup form: lowercase with
// every non-alphanumeric rune removed.
func FilterName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
