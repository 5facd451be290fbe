package runner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmdtool/dmd/internal/schema"
)

// maxIdentifierLength is the ceiling a generated index/constraint name
// is truncated to (§4.6.2).
const maxIdentifierLength = 128

// indexName computes the index's base name ({prefix}_{Table}_{cols})
// and truncates it per truncateIdentifier if it exceeds the limit.
func indexName(table string, idx *schema.IndexModel) string {
	prefix := "IX"
	if idx.IsAlternateKey {
		prefix = "AK"
	}
	base := fmt.Sprintf("%s_%s_%s", prefix, table, strings.Join(idx.Fields, "_"))
	return truncateIdentifier(base)
}

// truncateIdentifier returns name unchanged if it already fits within
// maxIdentifierLength. Otherwise it truncates to leave room for
// "_{hash}", where hash is the lowercase hex of the first 4 bytes of a
// SHA-256 digest of the FULL untruncated name — so two names sharing
// a long common prefix still diverge in their final identifier
// (§4.6.2).
func truncateIdentifier(name string) string {
	if len(name) <= maxIdentifierLength {
		return name
	}

	sum := sha256.Sum256([]byte(name))
	hash := hex.EncodeToString(sum[:4])

	suffix := "_" + hash
	cut := maxIdentifierLength - len(suffix)
	return name[:cut] + suffix
}
