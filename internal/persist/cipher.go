package persist

import (
	"log/slog"
	"path/filepath"

	"github.com/inovacc/sealbox"
)

// Cipher seals and opens the persisted payload for at-rest encryption.
type Cipher interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(ciphertext []byte) ([]byte, error)
}

const (
	cipherProfile = "local"
	cipherDEKType = "store"
)

// sealboxCipher wraps a sealbox keystore. The key hierarchy roots in
// the TPM where the platform has one, otherwise in a machine-derived
// password.
type sealboxCipher struct {
	ks *sealbox.Keystore
}

// NewCipher opens a sealbox keystore next to the store files and
// returns a Cipher backed by it. When the keystore cannot be opened the
// payload stays plaintext: encryption is best effort, never a reason to
// lose persistence, so NewCipher returns nil and logs instead of
// failing.
func NewCipher(dir string, logger *slog.Logger) Cipher {
	if logger == nil {
		logger = slog.Default()
	}

	keystorePath := filepath.Join(dir, ".idp_keystore")

	var opts []sealbox.KeystoreOption
	if sealbox.IsAvailable() {
		opts = append(opts, sealbox.WithTPMRoot())
	} else {
		opts = append(opts, sealbox.WithPasswordRoot(machineKey(dir)))
	}
	opts = append(opts, sealbox.WithAutoSave())

	ks, err := sealbox.Open(keystorePath, opts...)
	if err != nil {
		logger.Warn("keystore unavailable, persisting payload unencrypted", "error", err)
		return nil
	}

	if !ks.HasProfile(cipherProfile) {
		if err := ks.CreateProfile(cipherProfile); err != nil {
			logger.Warn("keystore profile creation failed, persisting payload unencrypted", "error", err)
			_ = ks.Close()

			return nil
		}
	}

	return &sealboxCipher{ks: ks}
}

// machineKey returns a machine-specific key for non-TPM hosts. Weaker
// than a TPM root but keeps the payload opaque on disk.
func machineKey(dir string) []byte {
	return []byte("i-didnt-park-machine-key:" + dir)
}

func (c *sealboxCipher) Close() error {
	return c.ks.Close()
}

func (c *sealboxCipher) Seal(plaintext []byte) ([]byte, error) {
	return c.ks.Encrypt(cipherProfile, cipherDEKType, plaintext)
}

func (c *sealboxCipher) Open(ciphertext []byte) ([]byte, error) {
	return c.ks.Decrypt(cipherProfile, cipherDEKType, ciphertext)
}
