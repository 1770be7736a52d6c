package document

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"

	"pmis/billing"
)

// Fingerprint is the hex BLAKE2b-256 of the snapshot's JSON encoding.
func Fingerprint(snap billing.Snapshot) (string, error) {
	b, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
