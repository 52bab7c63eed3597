// Package hashutil computes the digests doty uses to compare entries.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Digest returns the hex SHA256 of the JSON encoding of v. Map keys are
// encoded in sorted order, so equal maps have equal digests.
func Digest(v interface{}) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
