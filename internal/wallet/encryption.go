package wallet

import (
	"crypto/cipher"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mrv777/ardor-keykit/pkg/curve"
	"github.com/mrv777/ardor-keykit/pkg/hdkey"
	"github.com/mrv777/ardor-keykit/pkg/types"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
	"lukechampine.com/frand"
)

// messageInfo separates the HKDF output of DH message keys.
const messageInfo = "keykit dh message v1"

// EncryptTo encrypts plaintext from sender to the holder of recipientPub
// (an ed25519 public key). Both sides compute the same X25519 shared
// secret from their converted keys.
//
// Output format: nonce(24) | ciphertext
func EncryptTo(sender *hdkey.Node, recipientPub types.Key, plaintext []byte) ([]byte, error) {
	aead, ad, err := messageCipher(sender, recipientPub, true)
	if err != nil {
		return nil, err
	}

	nonce := frand.Bytes(aead.NonceSize())
	out := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, ad), nil
}

// DecryptFrom opens a message EncryptTo produced for recipient by the
// holder of senderPub.
func DecryptFrom(recipient *hdkey.Node, senderPub types.Key, ciphertext []byte) ([]byte, error) {
	aead, ad, err := messageCipher(recipient, senderPub, false)
	if err != nil {
		return nil, err
	}

	nonceSize := aead.NonceSize()
	if len(ciphertext) < nonceSize+aead.Overhead() {
		return nil, fmt.Errorf("encrypted data too short: %d bytes, need at least %d", len(ciphertext), nonceSize+aead.Overhead())
	}
	plaintext, err := aead.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], ad)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}

// messageCipher derives the XChaCha20-Poly1305 key for a pair of keys.
// The associated data is senderPub || recipientPub so a message cannot be
// reflected back to its sender.
func messageCipher(self *hdkey.Node, peer types.Key, sending bool) (cipher.AEAD, []byte, error) {
	if !self.IsPrivate() {
		return nil, nil, ErrPublicOnly
	}
	shared, err := curve.SharedSecret(self.Scalar(), peer)
	if err != nil {
		return nil, nil, fmt.Errorf("shared secret: %w", err)
	}

	own := self.PublicKey()
	ad := make([]byte, 0, 2*types.KeySize)
	if sending {
		ad = append(append(ad, own[:]...), peer[:]...)
	} else {
		ad = append(append(ad, peer[:]...), own[:]...)
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, shared[:], nil, []byte(messageInfo)), key); err != nil {
		return nil, nil, fmt.Errorf("derive key: %w", err)
	}
	defer wipe(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, fmt.Errorf("create cipher: %w", err)
	}
	return aead, ad, nil
}

// Password protection for exported shares.
const (
	SaltSize = 32
	// Protected format: [salt(32)][memory(4)][iterations(4)][parallelism(1)][nonce(24)][ciphertext...]
	headerSize = SaltSize + 4 + 4 + 1
)

// ProtectParams holds Argon2id parameters.
type ProtectParams struct {
	Memory      uint32 // in KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultParams returns recommended Argon2id parameters.
func DefaultParams() ProtectParams {
	return ProtectParams{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 4,
	}
}

func passwordKey(password, salt []byte, params ProtectParams) []byte {
	return argon2.IDKey(password, salt, params.Iterations, params.Memory, params.Parallelism, chacha20poly1305.KeySize)
}

// Protect encrypts data under password with Argon2id + XChaCha20-Poly1305,
// so a share can be handed to a custodian on untrusted media.
func Protect(data, password []byte, params ProtectParams) ([]byte, error) {
	salt := frand.Bytes(SaltSize)
	key := passwordKey(password, salt, params)
	defer wipe(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	nonce := frand.Bytes(aead.NonceSize())

	out := make([]byte, 0, headerSize+len(nonce)+len(data)+aead.Overhead())
	out = append(out, salt...)
	out = binary.LittleEndian.AppendUint32(out, params.Memory)
	out = binary.LittleEndian.AppendUint32(out, params.Iterations)
	out = append(out, params.Parallelism)
	header := append([]byte(nil), out...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, data, header), nil
}

// Unprotect reverses Protect.
func Unprotect(protected, password []byte) ([]byte, error) {
	nonceSize := chacha20poly1305.NonceSizeX
	minSize := headerSize + nonceSize + chacha20poly1305.Overhead
	if len(protected) < minSize {
		return nil, fmt.Errorf("encrypted data too short: %d bytes, need at least %d", len(protected), minSize)
	}

	params := ProtectParams{
		Memory:      binary.LittleEndian.Uint32(protected[SaltSize:]),
		Iterations:  binary.LittleEndian.Uint32(protected[SaltSize+4:]),
		Parallelism: protected[SaltSize+8],
	}
	if params.Iterations == 0 || params.Parallelism == 0 {
		return nil, fmt.Errorf("invalid key derivation parameters")
	}

	key := passwordKey(password, protected[:SaltSize], params)
	defer wipe(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	nonce := protected[headerSize : headerSize+nonceSize]
	plaintext, err := aead.Open(nil, nonce, protected[headerSize+nonceSize:], protected[:headerSize])
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
