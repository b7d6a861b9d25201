// Package secrets creates Docker secret files with generated credentials.
package secrets

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// DefaultLength is the generated secret length.
const DefaultLength = 32

const (
	filePermissions = 0o600
	dirPermissions  = 0o700
)

// alphabet deliberately omits shell- and URL-hostile characters.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrInvalidLength is returned when a non-positive secret length is requested.
var ErrInvalidLength = errors.New("secret length must be positive")

// Generate returns a random alphanumeric secret of the given length.
func Generate(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)

	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate secret: %w", err)
		}

		out[i] = alphabet[idx.Int64()]
	}

	return string(out), nil
}

// EnsureFile writes a freshly generated secret to path with owner-only
// permissions. An existing file is kept as-is so repeated init runs never
// rotate credentials. It reports whether the file was created.
func EnsureFile(path string, length int) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	err = os.MkdirAll(filepath.Dir(path), dirPermissions)
	if err != nil {
		return false, fmt.Errorf("create secrets directory: %w", err)
	}

	secret, err := Generate(length)
	if err != nil {
		return false, err
	}

	err = os.WriteFile(path, []byte(secret), filePermissions)
	if err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}

	return true, nil
}
