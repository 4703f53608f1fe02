package crossval

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"

	klog "github.com/mrv777/ardor-keykit/internal/log"
	"github.com/mrv777/ardor-keykit/internal/wallet"
	"github.com/mrv777/ardor-keykit/pkg/mnemonic"
	"github.com/mrv777/ardor-keykit/pkg/sss"
)

// SharingReport summarises a CheckSharing run.
type SharingReport struct {
	Shares    int `json:"shares"`
	Threshold int `json:"threshold"`
	Subsets   int `json:"subsets"`
	Failed    int `json:"failed"`
}

// OK reports whether every subset recombined to the secret.
func (r *SharingReport) OK() bool {
	return r.Failed == 0
}

// CheckSharing splits secret into n shares with threshold m and combines
// every m-sized subset, counting those that do not reproduce secret.
func CheckSharing(secret []byte, n, m int) (*SharingReport, error) {
	shares, err := sss.Split(secret, n, m)
	if err != nil {
		return nil, err
	}
	return checkShares(secret, shares, m)
}

func checkShares(secret []byte, shares []sss.Share, m int) (*SharingReport, error) {
	report := &SharingReport{Shares: len(shares), Threshold: m}
	subset := make([]sss.Share, m)
	var combineErr error
	combinations(len(shares), m, func(idx []int) bool {
		for i, j := range idx {
			subset[i] = shares[j]
		}
		got, err := sss.Combine(subset)
		if err != nil {
			combineErr = fmt.Errorf("combine %v: %w", idx, err)
			return false
		}
		report.Subsets++
		if !bytes.Equal(got, secret) {
			report.Failed++
		}
		return true
	})
	if combineErr != nil {
		return report, combineErr
	}

	klog.CrossVal.Debug().
		Int("shares", report.Shares).
		Int("threshold", m).
		Int("subsets", report.Subsets).
		Int("failed", report.Failed).
		Msg("Sharing check finished")
	return report, nil
}

// combinations calls fn with every k-subset of [0, n) in lexicographic
// order until fn returns false.
func combinations(n, k int, fn func([]int) bool) {
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !fn(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// SharingPeer splits and combines on another implementation.
// rpcclient.Peer satisfies it.
type SharingPeer interface {
	Split(ctx context.Context, kind wallet.SecretKind, secret string, n, m int) ([]sss.Share, error)
	Combine(ctx context.Context, kind wallet.SecretKind, shares []sss.Share) (string, error)
}

// CheckSharingWith splits secret on the peer and checks every m-subset
// recombines locally, then splits locally and has the peer recombine the
// first m shares. secret is text for mnemonics and hex for private keys.
func CheckSharingWith(ctx context.Context, peer SharingPeer, kind wallet.SecretKind, secret string, n, m int) (*SharingReport, error) {
	raw, err := secretBytes(kind, secret)
	if err != nil {
		return nil, err
	}

	remoteShares, err := peer.Split(ctx, kind, secret, n, m)
	if err != nil {
		return nil, fmt.Errorf("remote split: %w", err)
	}
	report, err := checkShares(raw, remoteShares, m)
	if err != nil {
		return report, err
	}

	localShares, err := wallet.SplitSecret(kind, raw, n, m)
	if err != nil {
		return report, fmt.Errorf("local split: %w", err)
	}
	combined, err := peer.Combine(ctx, kind, localShares[:m])
	if err != nil {
		return report, fmt.Errorf("remote combine: %w", err)
	}
	report.Subsets++
	if got, err := secretBytes(kind, combined); err != nil || !bytes.Equal(got, raw) {
		report.Failed++
	}
	return report, nil
}

// secretBytes decodes the text form of a secret of the given kind.
func secretBytes(kind wallet.SecretKind, secret string) ([]byte, error) {
	if kind == wallet.SecretMnemonic {
		return []byte(mnemonic.Normalize(secret)), nil
	}
	b, err := hex.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wallet.ErrInvalidSecret, err)
	}
	return b, nil
}
