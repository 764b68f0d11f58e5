package app

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/minio/highwayhash"
)

// FileHashKey is the hardcoded key used for file hashing.
// A fixed key keeps hashes stable across runs so cache keys survive restarts.
var FileHashKey = []byte("gridsift file hash key\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00")

// CalculateFileHash calculates a HighwayHash of the file content.
func CalculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash, err := highwayhash.New(FileHashKey)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}

	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// CalculateBytesHash calculates a HighwayHash over in-memory content.
// Used for datasets loaded from byte slices rather than paths.
func CalculateBytesHash(data []byte) (string, error) {
	hash, err := highwayhash.New(FileHashKey)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}
	if _, err := hash.Write(data); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
