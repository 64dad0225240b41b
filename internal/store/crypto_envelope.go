package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"stayreal/internal/crypto"
	"stayreal/internal/domain"
)

const (
	// The current supported version of the sealed blob format stored on disk.
	sealedFormatVersion = 1
)

// blob is the on-disk JSON structure holding the ciphertext and KDF parameters.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// WriteSealedJSON encodes v as JSON, seals it under passphrase and writes it
// to path atomically.
func WriteSealedJSON(path, passphrase string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode backup: %w", domain.ErrPersistence, err)
	}
	defer crypto.Zero(raw)

	N, r, p := scryptParamsDefault()
	sealed, err := seal(passphrase, raw, N, r, p)
	if err != nil {
		return fmt.Errorf("%w: seal backup: %w", domain.ErrPersistence, err)
	}
	if err := writeFile(path, sealed, fileMode); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrPersistence, path, err)
	}
	return nil
}

// ReadSealedJSON opens the blob at path with passphrase and decodes it into
// out. A wrong passphrase or tampered file wraps domain.ErrWrongPassphrase.
func ReadSealedJSON(path, passphrase string, out any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", domain.ErrPersistence, path, err)
	}
	raw, err := open(passphrase, b)
	if err != nil {
		return err
	}
	defer crypto.Zero(raw)

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: backup payload: %w", domain.ErrCorruptData, err)
	}
	return nil
}

// seal derives a key from passphrase and seals raw into a JSON blob.
func seal(passphrase string, raw []byte, N, r, p int) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key is fresh per seal
	ct := aead.Seal(nil, nonce[:], raw, salt[:])

	return json.Marshal(blob{
		V:      sealedFormatVersion,
		Salt:   salt[:],
		N:      N,
		R:      r,
		P:      p,
		Cipher: ct,
	})
}

// open decrypts the JSON blob using a key derived from passphrase.
func open(passphrase string, b []byte) ([]byte, error) {
	var bl blob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, fmt.Errorf("%w: backup envelope: %w", domain.ErrCorruptData, err)
	}
	if bl.V > sealedFormatVersion {
		return nil, fmt.Errorf("%w: unsupported backup version %d", domain.ErrCorruptData, bl.V)
	}

	key, err := scrypt.Key([]byte(passphrase), bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: backup kdf parameters: %w", domain.ErrCorruptData, err)
	}
	defer crypto.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, bl.Salt)
	if err != nil {
		return nil, domain.ErrWrongPassphrase
	}
	return pt, nil
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
