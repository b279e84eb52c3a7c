package types

import (
	"crypto/md5"

	"github.com/google/uuid"
)

// UUID is the wire form of a Minecraft account/entity identifier: 16
// raw bytes, big-endian, with no ASCII dash formatting on the wire
// (formatting only matters at the HTTP/session-server boundary, see
// package auth).
type UUID [16]byte

func (u UUID) String() string {
	return uuid.UUID(u).String()
}

func (u UUID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

func (u *UUID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseUUID(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ParseUUID accepts both dashed and undashed hex forms.
func ParseUUID(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, err
	}
	return UUID(id), nil
}

// NewRandomUUID mints a random (v4) UUID. Offline-mode players do not
// get one of these; they get OfflinePlayerUUID.
func NewRandomUUID() UUID {
	return UUID(uuid.New())
}

// OfflinePlayerUUID derives the deterministic UUID offline-mode servers
// assign a player, matching vanilla's
// UUID.nameUUIDFromBytes(("OfflinePlayer:"+name).getBytes(UTF_8)): a
// bare MD5 digest of those bytes with the version/variant bits twiddled
// in directly, not a namespaced hash — there is no namespace UUID
// prepended to the input anywhere in the real algorithm, so
// uuid.NewMD5's RFC 4122 namespace argument doesn't apply here and the
// digest has to be built by hand.
func OfflinePlayerUUID(name string) UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + name))
	sum[6] = (sum[6] & 0x0f) | 0x30 // version 3
	sum[8] = (sum[8] & 0x3f) | 0x80 // RFC 4122 variant
	return UUID(sum)
}
