// Package crossval compares two derivation strategies, normally the local
// core and a remote derivation peer, over the same inputs and reports
// every field on which they disagree.
package crossval

import (
	"context"
	"errors"
	"fmt"

	klog "github.com/mrv777/ardor-keykit/internal/log"
	"github.com/mrv777/ardor-keykit/internal/rpc"
	"github.com/mrv777/ardor-keykit/internal/rpcclient"
	"github.com/mrv777/ardor-keykit/internal/wallet"
	"github.com/mrv777/ardor-keykit/pkg/hdkey"
	"github.com/mrv777/ardor-keykit/pkg/types"
)

// Compared fields.
const (
	FieldError                     = "error"
	FieldPrivateKey                = "privateKey"
	FieldPublicKey                 = "publicKey"
	FieldChainCode                 = "chainCode"
	FieldSerializedMasterPublicKey = "serializedMasterPublicKey"
	FieldChildPublicKey            = "childPublicKey"
	FieldChildFromPrivate          = "childFromPrivate"
)

// Mismatch is one disagreement between the two strategies. Private key
// values are never recorded; only whether they matched.
type Mismatch struct {
	Case   int    `json:"case"`
	Path   string `json:"path"`
	Field  string `json:"field"`
	Local  string `json:"local"`
	Remote string `json:"remote"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("case %d (%s): %s local=%s remote=%s", m.Case, m.Path, m.Field, m.Local, m.Remote)
}

// Report summarises a Run.
type Report struct {
	Cases      int        `json:"cases"`
	Skipped    int        `json:"skipped"`
	Mismatches []Mismatch `json:"mismatches"`
}

// OK reports whether every case agreed.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Harness runs cases against two strategies.
type Harness struct {
	Local  wallet.Strategy
	Remote wallet.Strategy
}

// New returns a harness comparing the local core against peer.
func New(peer wallet.RemotePeer) *Harness {
	return &Harness{
		Local:  wallet.LocalStrategy(),
		Remote: wallet.RemoteStrategy(peer),
	}
}

// Run derives every case with both strategies and compares the results.
// Transport failures abort the run; derivation errors are compared like
// any other output. A case whose child index is degenerate on both sides
// counts as skipped.
func (h *Harness) Run(ctx context.Context, cases []Case) (*Report, error) {
	done := klog.Benchmark("crossval run")
	defer done()

	report := &Report{}
	for i, c := range cases {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		before := len(report.Mismatches)
		skipped, err := h.runCase(ctx, i, c, report)
		if err != nil {
			return report, fmt.Errorf("case %d: %w", i, err)
		}
		report.Cases++
		if skipped {
			report.Skipped++
		}
		for _, m := range report.Mismatches[before:] {
			klog.CrossVal.Warn().Int("case", m.Case).Str("path", m.Path).Str("field", m.Field).Msg("Mismatch")
		}
	}

	klog.CrossVal.Info().
		Int("cases", report.Cases).
		Int("skipped", report.Skipped).
		Int("mismatches", len(report.Mismatches)).
		Msg("Cross-validation finished")
	return report, nil
}

func (h *Harness) runCase(ctx context.Context, i int, c Case, report *Report) (bool, error) {
	mismatch := func(field, local, remote string) {
		report.Mismatches = append(report.Mismatches, Mismatch{
			Case: i, Path: c.Path, Field: field, Local: local, Remote: remote,
		})
	}

	req := wallet.DeriveRequest{Mnemonic: c.Mnemonic, Passphrase: c.Passphrase, Path: c.Path}
	local, localErr := h.Local.Derive(ctx, req)
	remote, remoteErr := h.Remote.Derive(ctx, req)
	if remoteErr != nil && isTransport(remoteErr) {
		return false, remoteErr
	}
	if localErr != nil || remoteErr != nil {
		if errorKind(localErr) != errorKind(remoteErr) {
			mismatch(FieldError, errorKind(localErr), errorKind(remoteErr))
		}
		return false, nil
	}

	if local.HasPrivateKey() && remote.HasPrivateKey() && local.PrivateKey != remote.PrivateKey {
		mismatch(FieldPrivateKey, "differs", "differs")
	}
	if local.PublicKey != remote.PublicKey {
		mismatch(FieldPublicKey, local.PublicKey.String(), remote.PublicKey.String())
	}
	if local.ChainCode != remote.ChainCode {
		mismatch(FieldChainCode, local.ChainCode.String(), remote.ChainCode.String())
	}
	if local.SerializedMasterPublicKey != remote.SerializedMasterPublicKey {
		mismatch(FieldSerializedMasterPublicKey, local.SerializedMasterPublicKey.String(), remote.SerializedMasterPublicKey.String())
	}

	// Both sides derive the child from the local extended key so a
	// disagreement above does not cascade.
	ext := local.SerializedMasterPublicKey
	localChild, localErr := h.Local.ChildPublicKey(ctx, ext, c.ChildIndex)
	remoteChild, remoteErr := h.Remote.ChildPublicKey(ctx, ext, c.ChildIndex)
	if remoteErr != nil && isTransport(remoteErr) {
		return false, remoteErr
	}
	if localErr != nil || remoteErr != nil {
		if errorKind(localErr) != errorKind(remoteErr) {
			mismatch(FieldChildPublicKey, errorKind(localErr), errorKind(remoteErr))
			return false, nil
		}
		return errors.Is(localErr, hdkey.ErrInvalidChildKey), nil
	}
	if localChild != remoteChild {
		mismatch(FieldChildPublicKey, localChild.String(), remoteChild.String())
	}

	if !local.HasPrivateKey() {
		return false, nil
	}
	fromPriv, err := childFromPrivate(local, c.ChildIndex)
	if err != nil {
		mismatch(FieldChildFromPrivate, errorKind(err), localChild.String())
		return false, nil
	}
	if fromPriv != localChild {
		mismatch(FieldChildFromPrivate, fromPriv.String(), localChild.String())
	}
	return false, nil
}

// childFromPrivate derives the non-hardened child public key through the
// private path, which must equal public-only derivation.
func childFromPrivate(d *wallet.Derivation, index uint32) (types.Key, error) {
	node, err := d.Node()
	if err != nil {
		return types.Key{}, err
	}
	child, err := wallet.DeriveChildPrivateKey(node, index, false)
	if err != nil {
		return types.Key{}, err
	}
	return child.PublicKey(), nil
}

// errorKind names an error for comparison across implementations.
func errorKind(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := rpc.Kind(err); kind != "" {
		return kind
	}
	return err.Error()
}

// isTransport reports whether a remote error came from the transport
// rather than from the peer's derivation.
func isTransport(err error) bool {
	if rpc.Kind(err) != "" {
		return false
	}
	var rpcErr *rpcclient.RPCError
	return !errors.As(err, &rpcErr)
}
