package easyyomi

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"strings"
)

// legacyLang is baked into the identity key. Sources were first published
// with lang "en"; bindings saved by the host are keyed by the ID derived from
// it, so the current "all" must never leak into the key.
const legacyLang = "en"

// identityKey builds "<name>[ (<suffix>)]/<lang>/<versionID>".
func identityKey(suffix string, versionID int) string {
	name := sourceName
	if strings.TrimSpace(suffix) != "" {
		name += " (" + suffix + ")"
	}
	return fmt.Sprintf("%s/%s/%d", name, legacyLang, versionID)
}

// DeriveID returns the stable, non-negative identifier of the source instance
// configured with suffix: the first eight bytes of the MD5 of its identity key
// read big-endian, with the sign bit cleared.
func DeriveID(suffix string, versionID int) int64 {
	sum := md5.Sum([]byte(identityKey(suffix, versionID)))
	return int64(binary.BigEndian.Uint64(sum[:8]) & 0x7FFFFFFFFFFFFFFF)
}
