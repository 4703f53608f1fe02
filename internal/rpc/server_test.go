package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"filippo.io/edwards25519"
	"github.com/mrv777/ardor-keykit/config"
	klog "github.com/mrv777/ardor-keykit/internal/log"
	"github.com/mrv777/ardor-keykit/internal/wallet"
	"github.com/mrv777/ardor-keykit/pkg/curve"
	"github.com/mrv777/ardor-keykit/pkg/hdkey"
	"github.com/mrv777/ardor-keykit/pkg/sss"
	"github.com/mrv777/ardor-keykit/pkg/types"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testPath     = "m/44'/16754'/0'/0'/0'"
)

// testEnv holds the server under test and its URL.
type testEnv struct {
	server *Server
	url    string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	klog.Init("error", false, "")

	cfg := config.DefaultTestnet()
	srv := New(cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testEnv{server: srv, url: ts.URL + "/"}
}

func rpcCall(t *testing.T, url, method string, params interface{}) Response {
	t.Helper()
	req := Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", method, err)
	}
	defer resp.Body.Close()

	var rpcResp Response
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rpcResp
}

// postRaw sends body as-is and decodes the JSON-RPC response.
func postRaw(t *testing.T, url, body string) Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var rpcResp Response
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rpcResp
}

// decodeResult re-marshals the generic result into target.
func decodeResult(t *testing.T, resp Response, target interface{}) {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("unexpected error: %d %s (%v)", resp.Error.Code, resp.Error.Message, resp.Error.Data)
	}
	data, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
}

// wantError fails the test unless resp carries an error with the given code.
func wantError(t *testing.T, resp Response, code int) *Error {
	t.Helper()
	if resp.Error == nil {
		t.Fatalf("expected error, got result %v", resp.Result)
	}
	if resp.Error.Code != code {
		t.Errorf("error code = %d, want %d (%s)", resp.Error.Code, code, resp.Error.Message)
	}
	return resp.Error
}

func testDerivation(t *testing.T, passphrase string) *wallet.Derivation {
	t.Helper()
	d, err := wallet.DeriveFromSeed(testMnemonic, passphrase, testPath)
	if err != nil {
		t.Fatalf("DeriveFromSeed: %v", err)
	}
	return d
}

// offCurveKey returns 32 bytes that do not decode to an ed25519 point.
func offCurveKey(t *testing.T) types.Key {
	t.Helper()
	var k types.Key
	for y := byte(2); y != 0; y++ {
		k[0] = y
		if _, err := new(edwards25519.Point).SetBytes(k[:]); err != nil {
			return k
		}
	}
	t.Fatal("no off-curve encoding found")
	return k
}

// ── Tests ───────────────────────────────────────────────────────────────

func TestRPC_GetInfo(t *testing.T) {
	env := setupTestEnv(t)

	var result InfoResult
	decodeResult(t, rpcCall(t, env.url, MethodGetInfo, nil), &result)

	if result.Version != Version {
		t.Errorf("version = %q, want %q", result.Version, Version)
	}
	if result.Network != "testnet" {
		t.Errorf("network = %q, want %q", result.Network, "testnet")
	}
	if len(result.Methods) != 7 {
		t.Errorf("methods = %d, want 7", len(result.Methods))
	}
	found := false
	for _, m := range result.Methods {
		if m == MethodDeriveFromSeed {
			found = true
		}
	}
	if !found {
		t.Errorf("methods %v missing %s", result.Methods, MethodDeriveFromSeed)
	}
}

func TestRPC_DeriveFromSeed(t *testing.T) {
	env := setupTestEnv(t)
	want := testDerivation(t, "TREZOR")

	var got wallet.Derivation
	decodeResult(t, rpcCall(t, env.url, MethodDeriveFromSeed, DeriveFromSeedParam{
		Mnemonic:   testMnemonic,
		Passphrase: "TREZOR",
		Path:       testPath,
	}), &got)

	if got.Path != want.Path {
		t.Errorf("path = %q, want %q", got.Path, want.Path)
	}
	if got.PrivateKey != want.PrivateKey {
		t.Error("private key mismatch")
	}
	if got.PublicKey != want.PublicKey {
		t.Errorf("public key = %s, want %s", got.PublicKey, want.PublicKey)
	}
	if got.ChainCode != want.ChainCode {
		t.Errorf("chain code = %s, want %s", got.ChainCode, want.ChainCode)
	}
	if got.SerializedMasterPublicKey != want.SerializedMasterPublicKey {
		t.Errorf("extended key = %s, want %s", got.SerializedMasterPublicKey, want.SerializedMasterPublicKey)
	}
}

func TestRPC_DeriveFromSeed_Errors(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name     string
		mnemonic string
		path     string
		kind     string
	}{
		{"bad checksum", strings.Repeat("abandon ", 11) + "abandon", testPath, "InvalidChecksum"},
		{"bad word count", "abandon abandon abandon", testPath, "InvalidWordCount"},
		{"unknown word", strings.Repeat("abandon ", 11) + "notaword", testPath, "UnknownWord"},
		{"bad path", testMnemonic, "44'/0'", "InvalidPath"},
		{"index out of range", testMnemonic, "m/2147483648", "IndexOutOfRange"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := rpcCall(t, env.url, MethodDeriveFromSeed, DeriveFromSeedParam{
				Mnemonic: tt.mnemonic,
				Path:     tt.path,
			})
			e := wantError(t, resp, CodeInvalidParams)
			if e.Data != tt.kind {
				t.Errorf("kind = %v, want %s", e.Data, tt.kind)
			}
		})
	}
}

func TestRPC_ChildPublicKeyMatchesPrivate(t *testing.T) {
	env := setupTestEnv(t)
	d := testDerivation(t, "")

	for _, idx := range []uint32{0, 1, 7, 1000} {
		var pub ChildPublicKeyResult
		decodeResult(t, rpcCall(t, env.url, MethodDeriveChildPublicKey, ChildPublicKeyParam{
			SerializedMasterPublicKey: d.SerializedMasterPublicKey,
			ChildIndex:                idx,
		}), &pub)

		var priv NodeResult
		decodeResult(t, rpcCall(t, env.url, MethodDeriveChildPrivate, ChildPrivateKeyParam{
			PrivateKey: d.PrivateKey,
			ChainCode:  d.ChainCode,
			ChildIndex: idx,
		}), &priv)

		if pub.PublicKey != priv.PublicKey {
			t.Errorf("index %d: public-only child %s, private child %s", idx, pub.PublicKey, priv.PublicKey)
		}
		if priv.Depth != 1 {
			t.Errorf("index %d: depth = %d, want 1", idx, priv.Depth)
		}
		if priv.ChildIndex != idx {
			t.Errorf("child index = %d, want %d", priv.ChildIndex, idx)
		}
		if len(priv.ParentFingerprint) != 4 {
			t.Errorf("parent fingerprint length = %d, want 4", len(priv.ParentFingerprint))
		}
	}
}

func TestRPC_ChildPrivateKey_Hardened(t *testing.T) {
	env := setupTestEnv(t)
	d := testDerivation(t, "")

	var res NodeResult
	decodeResult(t, rpcCall(t, env.url, MethodDeriveChildPrivate, ChildPrivateKeyParam{
		PrivateKey: d.PrivateKey,
		ChainCode:  d.ChainCode,
		ChildIndex: 3,
		Hardened:   true,
	}), &res)
	if want := uint32(3) + hdkey.HardenedOffset; res.ChildIndex != want {
		t.Errorf("child index = %d, want %d", res.ChildIndex, want)
	}

	// The hardened child has no public-only counterpart.
	resp := rpcCall(t, env.url, MethodDeriveChildPublicKey, ChildPublicKeyParam{
		SerializedMasterPublicKey: d.SerializedMasterPublicKey,
		ChildIndex:                3 + hdkey.HardenedOffset,
	})
	if e := wantError(t, resp, CodeInvalidParams); e.Data != "IndexOutOfRange" {
		t.Errorf("kind = %v, want IndexOutOfRange", e.Data)
	}
}

func TestRPC_ToCurve25519(t *testing.T) {
	env := setupTestEnv(t)
	d := testDerivation(t, "")
	want, err := wallet.Ed25519ToCurve25519(d.PublicKey)
	if err != nil {
		t.Fatalf("Ed25519ToCurve25519: %v", err)
	}

	var res CurveResult
	decodeResult(t, rpcCall(t, env.url, MethodToCurve25519, PublicKeyParam{PublicKey: d.PublicKey}), &res)
	if res.Curve25519 != want {
		t.Errorf("curve25519 = %s, want %s", res.Curve25519, want)
	}
}

func TestRPC_InvalidPointKind(t *testing.T) {
	env := setupTestEnv(t)
	bad := offCurveKey(t)

	var ext types.ExtendedKey
	copy(ext[types.KeySize:], bad[:])

	// Both operations that decode a public key report the same kind.
	resps := map[string]Response{
		MethodToCurve25519: rpcCall(t, env.url, MethodToCurve25519, PublicKeyParam{PublicKey: bad}),
		MethodDeriveChildPublicKey: rpcCall(t, env.url, MethodDeriveChildPublicKey, ChildPublicKeyParam{
			SerializedMasterPublicKey: ext,
			ChildIndex:                0,
		}),
	}
	for method, resp := range resps {
		e := wantError(t, resp, CodeInvalidParams)
		if e.Data != "InvalidPoint" {
			t.Errorf("%s: kind = %v, want InvalidPoint", method, e.Data)
		}
	}
}

func TestRPC_SplitCombine(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("mnemonic", func(t *testing.T) {
		var split SplitResult
		decodeResult(t, rpcCall(t, env.url, MethodSplit, SplitParam{
			Kind:      "mnemonic",
			Secret:    testMnemonic,
			Shares:    5,
			Threshold: 3,
		}), &split)
		if len(split.Shares) != 5 {
			t.Fatalf("shares = %d, want 5", len(split.Shares))
		}

		var combined CombineResult
		decodeResult(t, rpcCall(t, env.url, MethodCombine, CombineParam{
			Kind:   "mnemonic",
			Shares: []sss.Share{split.Shares[4], split.Shares[0], split.Shares[2]},
		}), &combined)
		if combined.Secret != testMnemonic {
			t.Errorf("combined = %q, want %q", combined.Secret, testMnemonic)
		}
	})

	t.Run("private key", func(t *testing.T) {
		d := testDerivation(t, "")

		var split SplitResult
		decodeResult(t, rpcCall(t, env.url, MethodSplit, SplitParam{
			Kind:      "privateKey",
			Secret:    d.PrivateKey.String(),
			Shares:    3,
			Threshold: 2,
		}), &split)

		var combined CombineResult
		decodeResult(t, rpcCall(t, env.url, MethodCombine, CombineParam{
			Kind:   "privateKey",
			Shares: split.Shares[1:],
		}), &combined)
		if combined.Secret != d.PrivateKey.String() {
			t.Error("combined private key mismatch")
		}
	})
}

func TestRPC_SplitErrors(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name  string
		param SplitParam
		kind  interface{}
	}{
		{"threshold above shares", SplitParam{Kind: "mnemonic", Secret: testMnemonic, Shares: 2, Threshold: 3}, "InvalidThreshold"},
		{"threshold one", SplitParam{Kind: "mnemonic", Secret: testMnemonic, Shares: 3, Threshold: 1}, "InvalidThreshold"},
		{"invalid mnemonic", SplitParam{Kind: "mnemonic", Secret: "abandon abandon", Shares: 3, Threshold: 2}, "InvalidSecret"},
		{"short private key", SplitParam{Kind: "privateKey", Secret: "abcd", Shares: 3, Threshold: 2}, "InvalidSecret"},
		{"non-hex private key", SplitParam{Kind: "privateKey", Secret: "zz", Shares: 3, Threshold: 2}, nil},
		{"unknown kind", SplitParam{Kind: "seed", Secret: "00", Shares: 3, Threshold: 2}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := wantError(t, rpcCall(t, env.url, MethodSplit, tt.param), CodeInvalidParams)
			if e.Data != tt.kind {
				t.Errorf("kind = %v, want %v", e.Data, tt.kind)
			}
		})
	}
}

func TestRPC_CombineDuplicateIndex(t *testing.T) {
	env := setupTestEnv(t)

	share := sss.Share{Index: 1, Value: []byte{1, 2, 3}}
	resp := rpcCall(t, env.url, MethodCombine, CombineParam{
		Kind:   "privateKey",
		Shares: []sss.Share{share, share},
	})
	if e := wantError(t, resp, CodeInvalidParams); e.Data != "DuplicateShareIndex" {
		t.Errorf("kind = %v, want DuplicateShareIndex", e.Data)
	}
}

func TestRPC_MethodNotFound(t *testing.T) {
	env := setupTestEnv(t)
	wantError(t, rpcCall(t, env.url, "nonexistent_method", nil), CodeMethodNotFound)
}

func TestRPC_MissingParams(t *testing.T) {
	env := setupTestEnv(t)
	wantError(t, rpcCall(t, env.url, MethodDeriveFromSeed, nil), CodeInvalidParams)
}

func TestRPC_InvalidJSON(t *testing.T) {
	env := setupTestEnv(t)
	wantError(t, postRaw(t, env.url, "{not json"), CodeParseError)
}

func TestRPC_WrongVersion(t *testing.T) {
	env := setupTestEnv(t)
	body := `{"jsonrpc":"1.0","method":"keykit_getInfo","id":1}`
	wantError(t, postRaw(t, env.url, body), CodeInvalidRequest)
}

func TestRPC_GetRejected(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := http.Get(env.url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var rpcResp Response
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	wantError(t, rpcResp, CodeInvalidRequest)
}

func TestRPC_BodyTooLarge(t *testing.T) {
	klog.Init("error", false, "")
	cfg := config.DefaultMainnet()
	cfg.RPC.MaxBodyBytes = 64
	ts := httptest.NewServer(New(cfg).Handler())
	defer ts.Close()

	body := `{"jsonrpc":"2.0","method":"keykit_getInfo","params":{"pad":"` + strings.Repeat("x", 128) + `"},"id":1}`
	wantError(t, postRaw(t, ts.URL+"/", body), CodeInvalidRequest)
}

func TestRPC_IPFilter(t *testing.T) {
	klog.Init("error", false, "")
	cfg := config.DefaultMainnet()
	cfg.RPC.AllowedIPs = []string{"10.0.0.0/8"}
	ts := httptest.NewServer(New(cfg).Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}
}

func TestRPC_CORS(t *testing.T) {
	klog.Init("error", false, "")
	cfg := config.DefaultMainnet()
	cfg.RPC.CORSOrigins = []string{"http://wallet.local"}
	ts := httptest.NewServer(New(cfg).Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Origin", "http://wallet.local")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://wallet.local" {
		t.Errorf("allow origin = %q, want http://wallet.local", got)
	}

	req.Header.Set("Origin", "http://evil.local")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow origin for foreign origin = %q, want empty", got)
	}
}

func TestRPC_Health(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := http.Get(strings.TrimSuffix(env.url, "/") + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestServer_StartStop(t *testing.T) {
	klog.Init("error", false, "")
	cfg := config.DefaultMainnet()
	cfg.RPC.Port = 0
	srv := New(cfg)
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if srv.Addr() == "127.0.0.1:0" {
		t.Error("listener address not resolved")
	}

	var info InfoResult
	decodeResult(t, rpcCall(t, "http://"+srv.Addr()+"/", MethodGetInfo, nil), &info)
	if info.Network != "mainnet" {
		t.Errorf("network = %q, want mainnet", info.Network)
	}
	if err := srv.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestKindRoundTrip(t *testing.T) {
	for name, sentinel := range errorKinds {
		if got := Kind(sentinel); got != name {
			t.Errorf("Kind(%v) = %q, want %q", sentinel, got, name)
		}
		if KindError(name) != sentinel {
			t.Errorf("KindError(%q) = %v, want %v", name, KindError(name), sentinel)
		}
	}
	if got := Kind(errors.New("other")); got != "" {
		t.Errorf("Kind(unrelated) = %q, want empty", got)
	}
	if KindError("nope") != nil {
		t.Error("KindError(unknown) should be nil")
	}
}

func TestKind_InvalidPointShared(t *testing.T) {
	if Kind(hdkey.ErrInvalidPoint) != "InvalidPoint" {
		t.Errorf("Kind(hdkey.ErrInvalidPoint) = %q, want InvalidPoint", Kind(hdkey.ErrInvalidPoint))
	}
	if Kind(curve.ErrInvalidPoint) != "InvalidPoint" {
		t.Errorf("Kind(curve.ErrInvalidPoint) = %q, want InvalidPoint", Kind(curve.ErrInvalidPoint))
	}
}
