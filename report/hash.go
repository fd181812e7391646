package report

import (
	"fmt"

	"github.com/minio/highwayhash"
)

var key = []byte("trxlint-finding-fingerprint-key!")

// Hash returns 64 bit highway hash of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint identifies a finding independently of its position, so it survives unrelated edits.
// Occurrence distinguishes identical snippets reported by the same rule within one file.
func Fingerprint(path, rule, messageID, snippet string, occurrence int) (string, error) {
	value, err := Hash([]byte(fmt.Sprintf("%s\x00%s\x00%s\x00%s\x00%d", path, rule, messageID, snippet, occurrence)))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", value), nil
}
