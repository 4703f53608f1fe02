// Package mnemonic converts between entropy, BIP-39 mnemonic sentences and
// 512-bit seeds. Every function is pure and safe for concurrent use.
package mnemonic

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// Entropy sizes in bits for the shortest and longest mnemonics.
const (
	Entropy128 = 128 // 12 words
	Entropy256 = 256 // 24 words
)

const bitsPerWord = 11

// validEntropyLength reports whether n bytes is a supported entropy size.
func validEntropyLength(n int) bool {
	return n >= 16 && n <= 32 && n%4 == 0
}

// EntropyToMnemonic encodes entropy as a mnemonic sentence using wl.
// A nil wordlist selects English.
//
// The checksum is the first len(entropy)/4 bits of SHA-256(entropy); entropy
// and checksum together are split into 11-bit word indices.
func EntropyToMnemonic(entropy []byte, wl *Wordlist) (string, error) {
	if !validEntropyLength(len(entropy)) {
		return "", fmt.Errorf("%w: got %d bytes", ErrInvalidEntropyLength, len(entropy))
	}
	if wl == nil {
		wl = English
	}

	checksumBits := len(entropy) / 4
	sum := sha256.Sum256(entropy)

	// The checksum is at most 8 bits, so one trailing hash byte is enough.
	buf := make([]byte, len(entropy)+1)
	copy(buf, entropy)
	buf[len(entropy)] = sum[0]

	count := (len(entropy)*8 + checksumBits) / bitsPerWord
	words := make([]string, count)
	for i := range words {
		words[i] = wl.words[readBits(buf, i*bitsPerWord, bitsPerWord)]
	}
	return strings.Join(words, wl.separator), nil
}

// MnemonicToEntropy decodes a mnemonic back into its entropy, verifying the
// checksum. A nil wordlist selects English.
func MnemonicToEntropy(mnemonic string, wl *Wordlist) ([]byte, error) {
	if wl == nil {
		wl = English
	}
	words := strings.Fields(Normalize(mnemonic))
	switch len(words) {
	case 12, 15, 18, 21, 24:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWordCount, len(words))
	}

	totalBits := len(words) * bitsPerWord
	buf := make([]byte, (totalBits+7)/8)
	for i, word := range words {
		idx, ok := wl.index[word]
		if !ok {
			return nil, fmt.Errorf("%w: %q (%s)", ErrUnknownWord, word, wl.name)
		}
		writeBits(buf, i*bitsPerWord, bitsPerWord, idx)
	}

	checksumBits := totalBits / 33
	entropy := make([]byte, (totalBits-checksumBits)/8)
	copy(entropy, buf)

	sum := sha256.Sum256(entropy)
	want := int(sum[0] >> (8 - checksumBits))
	got := readBits(buf, len(entropy)*8, checksumBits)
	if got != want {
		return nil, ErrInvalidChecksum
	}
	return entropy, nil
}

// Validate checks word count, vocabulary and checksum.
func Validate(mnemonic string, wl *Wordlist) error {
	_, err := MnemonicToEntropy(mnemonic, wl)
	return err
}

// IsValid reports whether mnemonic is valid under wl.
func IsValid(mnemonic string, wl *Wordlist) bool {
	return Validate(mnemonic, wl) == nil
}

// NewEntropy returns bits of random entropy. bits must be a multiple of 32
// between 128 and 256.
func NewEntropy(bits int) ([]byte, error) {
	if bits%32 != 0 || !validEntropyLength(bits/8) {
		return nil, fmt.Errorf("%w: got %d bits", ErrInvalidEntropyLength, bits)
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return nil, fmt.Errorf("generate entropy: %w", err)
	}
	return entropy, nil
}

// Generate creates a new random mnemonic with the given entropy size.
func Generate(bits int, wl *Wordlist) (string, error) {
	entropy, err := NewEntropy(bits)
	if err != nil {
		return "", err
	}
	return EntropyToMnemonic(entropy, wl)
}

// MnemonicToSeed derives the 64-byte seed for mnemonic and passphrase:
//
//	seed = PBKDF2-HMAC-SHA512(NFKD(mnemonic), "mnemonic"+NFKD(passphrase), 2048, 64)
//
// Whitespace in the mnemonic is collapsed to single spaces first. The
// mnemonic is not validated; callers that need that call Validate.
func MnemonicToSeed(mnemonic, passphrase string) []byte {
	return bip39.NewSeed(Normalize(mnemonic), norm.NFKD.String(passphrase))
}

// Normalize returns the NFKD form of a mnemonic with runs of whitespace
// (including ideographic spaces) collapsed to a single ASCII space.
func Normalize(mnemonic string) string {
	return strings.Join(strings.Fields(norm.NFKD.String(mnemonic)), " ")
}

// readBits reads n bits (n <= 16) MSB-first starting at bit offset off.
func readBits(buf []byte, off, n int) int {
	v := 0
	for i := 0; i < n; i++ {
		bit := off + i
		v <<= 1
		if buf[bit/8]&(0x80>>(bit%8)) != 0 {
			v |= 1
		}
	}
	return v
}

// writeBits writes the low n bits of v MSB-first starting at bit offset off.
func writeBits(buf []byte, off, n, v int) {
	for i := 0; i < n; i++ {
		if v&(1<<(n-1-i)) != 0 {
			bit := off + i
			buf[bit/8] |= 0x80 >> (bit % 8)
		}
	}
}
