package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrv777/ardor-keykit/internal/log"
	"github.com/mrv777/ardor-keykit/pkg/hdkey"
	"github.com/mrv777/ardor-keykit/pkg/types"
)

// StrategyKind selects where a derivation is computed.
type StrategyKind int

const (
	// Local computes in-process.
	Local StrategyKind = iota
	// Remote asks a derivation peer.
	Remote
	// HardwareDevice asks a signing device for public material only.
	HardwareDevice
)

// String returns the kind's name.
func (k StrategyKind) String() string {
	switch k {
	case Local:
		return "local"
	case Remote:
		return "remote"
	case HardwareDevice:
		return "hardware"
	default:
		return fmt.Sprintf("StrategyKind(%d)", int(k))
	}
}

// Strategy errors.
var (
	ErrNoPeer          = errors.New("wallet: remote strategy has no peer")
	ErrNoDevice        = errors.New("wallet: hardware strategy has no device")
	ErrUnknownStrategy = errors.New("wallet: unknown derivation strategy")
)

// DeriveRequest is the input to a strategy derivation. Hardware devices
// hold their own seed and ignore Mnemonic and Passphrase.
type DeriveRequest struct {
	Mnemonic   string
	Passphrase string
	Path       string
}

// RemotePeer performs derivations on another implementation.
type RemotePeer interface {
	DeriveFromSeed(ctx context.Context, mnemonic, passphrase, path string) (*Derivation, error)
	DeriveChildPublicKey(ctx context.Context, serialized types.ExtendedKey, index uint32) (types.Key, error)
}

// Device is a hardware signer. It exposes the extended public key
// (chainCode || publicKey) at a path and never a private key.
type Device interface {
	ExtendedPublicKey(ctx context.Context, path hdkey.Path) (types.ExtendedKey, error)
}

// Strategy is a closed variant over the derivation backends. Only the
// field matching Kind is used.
type Strategy struct {
	Kind   StrategyKind
	Peer   RemotePeer
	Device Device
}

// LocalStrategy returns the in-process strategy.
func LocalStrategy() Strategy {
	return Strategy{Kind: Local}
}

// RemoteStrategy returns a strategy backed by peer.
func RemoteStrategy(peer RemotePeer) Strategy {
	return Strategy{Kind: Remote, Peer: peer}
}

// DeviceStrategy returns a strategy backed by a hardware device.
func DeviceStrategy(dev Device) Strategy {
	return Strategy{Kind: HardwareDevice, Device: dev}
}

// Derive resolves req with the selected backend.
func (s Strategy) Derive(ctx context.Context, req DeriveRequest) (*Derivation, error) {
	logger := log.Wallet.With().Str("strategy", s.Kind.String()).Str("path", req.Path).Logger()

	switch s.Kind {
	case Local:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return DeriveFromSeed(req.Mnemonic, req.Passphrase, req.Path)

	case Remote:
		if s.Peer == nil {
			return nil, ErrNoPeer
		}
		logger.Debug().Msg("Delegating derivation to remote peer")
		d, err := s.Peer.DeriveFromSeed(ctx, req.Mnemonic, req.Passphrase, req.Path)
		if err != nil {
			logger.Warn().Err(err).Msg("Remote derivation failed")
			return nil, fmt.Errorf("remote derive: %w", err)
		}
		return d, nil

	case HardwareDevice:
		if s.Device == nil {
			return nil, ErrNoDevice
		}
		path, err := hdkey.ParsePath(req.Path)
		if err != nil {
			return nil, err
		}
		logger.Debug().Msg("Requesting public key from device")
		ext, err := s.Device.ExtendedPublicKey(ctx, path)
		if err != nil {
			logger.Warn().Err(err).Msg("Device derivation failed")
			return nil, fmt.Errorf("device derive: %w", err)
		}
		if _, err := hdkey.ParseMasterPublicKey(ext[:]); err != nil {
			return nil, fmt.Errorf("device returned bad key: %w", err)
		}
		return &Derivation{
			Path:                      path.String(),
			PublicKey:                 ext.PublicKey(),
			ChainCode:                 ext.ChainCode(),
			SerializedMasterPublicKey: ext,
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, s.Kind)
}

// ChildPublicKey derives a non-hardened child public key. Only the remote
// backend computes elsewhere; public derivation needs no device secret.
func (s Strategy) ChildPublicKey(ctx context.Context, serialized types.ExtendedKey, index uint32) (types.Key, error) {
	switch s.Kind {
	case Local, HardwareDevice:
		if err := ctx.Err(); err != nil {
			return types.Key{}, err
		}
		return DeriveChildPublicKey(serialized, index)
	case Remote:
		if s.Peer == nil {
			return types.Key{}, ErrNoPeer
		}
		pub, err := s.Peer.DeriveChildPublicKey(ctx, serialized, index)
		if err != nil {
			return types.Key{}, fmt.Errorf("remote child public key: %w", err)
		}
		return pub, nil
	}
	return types.Key{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, s.Kind)
}
