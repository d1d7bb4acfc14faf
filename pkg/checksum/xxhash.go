// Package checksum fingerprints raw sheet ranges.
package checksum

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// Rows hashes a range's cells. Cells and rows are delimited so that
// re-splitting the same text across cells changes the digest.
func Rows(rows [][]string) string {
	digest := xxhash.New()
	for _, row := range rows {
		for _, c := range row {
			_, _ = digest.WriteString(c)
			_, _ = digest.Write([]byte{0x1f})
		}
		_, _ = digest.Write([]byte{0x1e})
	}
	return hex.EncodeToString(digest.Sum(nil))
}
