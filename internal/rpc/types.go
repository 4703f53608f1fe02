package rpc

import (
	"github.com/mrv777/ardor-keykit/pkg/sss"
	"github.com/mrv777/ardor-keykit/pkg/types"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	// CodeDerivationFailed is a derivation or sharing failure not caused
	// by the input shape.
	CodeDerivationFailed = -32000
	// CodeInvalidChildKey means the child index produced a degenerate key;
	// retry with the next index.
	CodeInvalidChildKey = -32001
)

// Method names.
const (
	MethodGetInfo              = "keykit_getInfo"
	MethodDeriveFromSeed       = "derive_fromSeed"
	MethodDeriveChildPublicKey = "derive_childPublicKey"
	MethodDeriveChildPrivate   = "derive_childPrivateKey"
	MethodToCurve25519         = "curve_toCurve25519"
	MethodSplit                = "sss_split"
	MethodCombine              = "sss_combine"
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      interface{} `json:"id"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Error is a JSON-RPC 2.0 error object. Data carries the error kind
// (see Kind) when the failure maps to a known sentinel.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ── Param types ─────────────────────────────────────────────────────────

// DeriveFromSeedParam is used by derive_fromSeed.
type DeriveFromSeedParam struct {
	Mnemonic   string `json:"mnemonic"`
	Passphrase string `json:"passphrase"`
	Path       string `json:"path"`
}

// ChildPublicKeyParam is used by derive_childPublicKey.
type ChildPublicKeyParam struct {
	SerializedMasterPublicKey types.ExtendedKey `json:"serializedMasterPublicKey"`
	ChildIndex                uint32            `json:"childIndex"`
}

// ChildPrivateKeyParam is used by derive_childPrivateKey. The parent is
// given by its private key and chain code.
type ChildPrivateKeyParam struct {
	PrivateKey types.Key `json:"privateKey"`
	ChainCode  types.Key `json:"chainCode"`
	ChildIndex uint32    `json:"childIndex"`
	Hardened   bool      `json:"hardened"`
}

// PublicKeyParam is used by curve_toCurve25519.
type PublicKeyParam struct {
	PublicKey types.Key `json:"publicKey"`
}

// SplitParam is used by sss_split. Mnemonic secrets are plain text,
// private keys are hex.
type SplitParam struct {
	Kind      string `json:"kind"`
	Secret    string `json:"secret"`
	Shares    int    `json:"shares"`
	Threshold int    `json:"threshold"`
}

// CombineParam is used by sss_combine.
type CombineParam struct {
	Kind   string      `json:"kind"`
	Shares []sss.Share `json:"shares"`
}

// ── Result types ────────────────────────────────────────────────────────

// InfoResult is returned by keykit_getInfo.
type InfoResult struct {
	Version string   `json:"version"`
	Network string   `json:"network"`
	Methods []string `json:"methods"`
}

// ChildPublicKeyResult is returned by derive_childPublicKey.
type ChildPublicKeyResult struct {
	PublicKey types.Key `json:"publicKey"`
}

// NodeResult describes a derived private node.
type NodeResult struct {
	PrivateKey                types.Key         `json:"privateKey"`
	PublicKey                 types.Key         `json:"publicKey"`
	ChainCode                 types.Key         `json:"chainCode"`
	SerializedMasterPublicKey types.ExtendedKey `json:"serializedMasterPublicKey"`
	Depth                     uint8             `json:"depth"`
	ParentFingerprint         types.HexBytes    `json:"parentFingerprint"`
	ChildIndex                uint32            `json:"childIndex"`
}

// CurveResult is returned by curve_toCurve25519.
type CurveResult struct {
	Curve25519 types.Key `json:"curve25519"`
}

// SplitResult is returned by sss_split.
type SplitResult struct {
	Shares []sss.Share `json:"shares"`
}

// CombineResult is returned by sss_combine.
type CombineResult struct {
	Secret string `json:"secret"`
}
