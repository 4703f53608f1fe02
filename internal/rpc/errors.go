package rpc

import (
	"errors"

	"github.com/mrv777/ardor-keykit/internal/wallet"
	"github.com/mrv777/ardor-keykit/pkg/curve"
	"github.com/mrv777/ardor-keykit/pkg/hdkey"
	"github.com/mrv777/ardor-keykit/pkg/mnemonic"
	"github.com/mrv777/ardor-keykit/pkg/sss"
)

// errorKinds names the sentinel errors that cross the wire. A client maps
// the name back to the same sentinel so errors.Is works remotely.
var errorKinds = map[string]error{
	"InvalidEntropyLength": mnemonic.ErrInvalidEntropyLength,
	"InvalidChecksum":      mnemonic.ErrInvalidChecksum,
	"InvalidWordCount":     mnemonic.ErrInvalidWordCount,
	"UnknownWord":          mnemonic.ErrUnknownWord,
	"InvalidPoint":         curve.ErrInvalidPoint,
	"LowOrderPoint":        curve.ErrLowOrderPoint,
	"InvalidPath":          hdkey.ErrInvalidPath,
	"IndexOutOfRange":      hdkey.ErrIndexOutOfRange,
	"InvalidChildKey":      hdkey.ErrInvalidChildKey,
	"HardenedPublic":       hdkey.ErrHardenedPublic,
	"InvalidSeedLength":    hdkey.ErrInvalidSeedLength,
	"InvalidKeyLength":     hdkey.ErrInvalidKeyLength,
	"InvalidPrivateKey":    hdkey.ErrInvalidPrivateKey,
	"MaxDepth":             hdkey.ErrMaxDepth,
	"InvalidThreshold":     sss.ErrInvalidThreshold,
	"DuplicateShareIndex":  sss.ErrDuplicateShareIndex,
	"InvalidShare":         sss.ErrInvalidShare,
	"EmptySecret":          sss.ErrEmptySecret,
	"InvalidSecret":        wallet.ErrInvalidSecret,
	"PublicOnly":           wallet.ErrPublicOnly,
}

// Kind returns the wire name of the sentinel err wraps, or "".
func Kind(err error) string {
	for name, sentinel := range errorKinds {
		if errors.Is(err, sentinel) {
			return name
		}
	}
	return ""
}

// KindError returns the sentinel for a wire name, or nil.
func KindError(kind string) error {
	return errorKinds[kind]
}

// toRPCError maps a core error to a JSON-RPC error.
func toRPCError(err error) *Error {
	kind := Kind(err)
	e := &Error{Code: CodeInvalidParams, Message: err.Error()}
	switch {
	case kind == "":
		e.Code = CodeDerivationFailed
		return e
	case kind == "InvalidChildKey":
		e.Code = CodeInvalidChildKey
	}
	e.Data = kind
	return e
}
