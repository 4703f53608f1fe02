package mnemonic

import "errors"

var (
	// ErrInvalidEntropyLength indicates entropy is not 16, 20, 24, 28 or 32 bytes.
	ErrInvalidEntropyLength = errors.New("mnemonic: entropy must be 16-32 bytes in 4-byte steps")

	// ErrInvalidWordCount indicates a mnemonic that is not 12, 15, 18, 21 or 24 words.
	ErrInvalidWordCount = errors.New("mnemonic: word count must be 12, 15, 18, 21 or 24")

	// ErrUnknownWord indicates a word that is not in the wordlist.
	ErrUnknownWord = errors.New("mnemonic: word not in wordlist")

	// ErrInvalidChecksum indicates the embedded checksum does not match the entropy.
	ErrInvalidChecksum = errors.New("mnemonic: checksum mismatch")

	// ErrUnknownWordlist indicates a wordlist name that is not supported.
	ErrUnknownWordlist = errors.New("mnemonic: unknown wordlist")
)
