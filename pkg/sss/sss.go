// Package sss implements threshold Shamir secret sharing over GF(256).
//
// Each secret byte is the constant term of its own random polynomial of
// degree m-1; share i carries the evaluations at x = i for every byte.
// Any m distinct shares reconstruct the secret. Fewer than m shares
// reconstruct an unrelated value without any error, since the scheme
// cannot tell the difference.
package sss

import (
	"errors"
	"fmt"
	"io"

	"lukechampine.com/frand"
)

// MaxShares is the largest number of shares a secret can be split into.
const MaxShares = 255

var (
	// ErrInvalidThreshold indicates parameters outside 2 <= m <= n <= 255.
	ErrInvalidThreshold = errors.New("sss: threshold must satisfy 2 <= m <= n <= 255")

	// ErrEmptySecret indicates a zero-length secret.
	ErrEmptySecret = errors.New("sss: secret is empty")

	// ErrDuplicateShareIndex indicates two shares with the same index.
	ErrDuplicateShareIndex = errors.New("sss: duplicate share index")

	// ErrInvalidShare indicates a malformed share or share set.
	ErrInvalidShare = errors.New("sss: invalid share")
)

// Split divides secret into n shares, any m of which reconstruct it.
func Split(secret []byte, n, m int) ([]Share, error) {
	return SplitWithReader(frand.Reader, secret, n, m)
}

// SplitWithReader is Split with an explicit source of coefficient randomness.
func SplitWithReader(rand io.Reader, secret []byte, n, m int) ([]Share, error) {
	if m < 2 || m > n || n > MaxShares {
		return nil, fmt.Errorf("%w: n=%d m=%d", ErrInvalidThreshold, n, m)
	}
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	random := make([]byte, len(secret)*(m-1))
	if _, err := io.ReadFull(rand, random); err != nil {
		return nil, fmt.Errorf("read coefficients: %w", err)
	}
	defer wipe(random)

	shares := make([]Share, n)
	for i := range shares {
		shares[i] = Share{Index: byte(i + 1), Value: make([]byte, len(secret))}
	}

	coeffs := make([]byte, m)
	defer wipe(coeffs)
	for b, s := range secret {
		coeffs[0] = s
		copy(coeffs[1:], random[b*(m-1):(b+1)*(m-1)])
		for i := range shares {
			shares[i].Value[b] = evalPoly(coeffs, shares[i].Index)
		}
	}
	return shares, nil
}

// Combine reconstructs a secret from shares by interpolating at x = 0.
// It uses every share given; the caller must supply at least the
// threshold used at split time.
func Combine(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no shares", ErrInvalidShare)
	}
	size := len(shares[0].Value)
	if size == 0 {
		return nil, fmt.Errorf("%w: empty share value", ErrInvalidShare)
	}

	var seen [256]bool
	xs := make([]byte, len(shares))
	for i, s := range shares {
		if s.Index == 0 {
			return nil, fmt.Errorf("%w: share index 0", ErrInvalidShare)
		}
		if len(s.Value) != size {
			return nil, fmt.Errorf("%w: share %d has %d bytes, want %d", ErrInvalidShare, s.Index, len(s.Value), size)
		}
		if seen[s.Index] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateShareIndex, s.Index)
		}
		seen[s.Index] = true
		xs[i] = s.Index
	}

	secret := make([]byte, size)
	ys := make([]byte, len(shares))
	for b := range secret {
		for i, s := range shares {
			ys[i] = s.Value[b]
		}
		secret[b] = interpolateAtZero(xs, ys)
	}
	return secret, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
