package wallet

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/mrv777/ardor-keykit/pkg/hdkey"
	"github.com/mrv777/ardor-keykit/pkg/types"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testPath     = "m/44'/16'/0'/0'/0'"
)

func testDerivation(t *testing.T, path string) *Derivation {
	t.Helper()
	d, err := DeriveFromSeed(testMnemonic, "TREZOR", path)
	if err != nil {
		t.Fatalf("DeriveFromSeed() error: %v", err)
	}
	return d
}

func TestSeedFromMnemonic(t *testing.T) {
	seed, err := SeedFromMnemonic(testMnemonic, "TREZOR")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	want := "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04"
	if hex.EncodeToString(seed) != want {
		t.Errorf("seed = %x, want %s", seed, want)
	}

	if _, err := SeedFromMnemonic("abandon abandon abandon", ""); err == nil {
		t.Error("expected error for invalid mnemonic")
	}
}

func TestDeriveFromSeed(t *testing.T) {
	d := testDerivation(t, testPath)

	if d.Path != testPath {
		t.Errorf("Path = %s, want %s", d.Path, testPath)
	}
	if len(d.Seed) != 64 {
		t.Errorf("seed length = %d, want 64", len(d.Seed))
	}
	if !d.HasPrivateKey() {
		t.Error("local derivation should carry a private key")
	}
	if d.SerializedMasterPublicKey.ChainCode() != d.ChainCode {
		t.Error("serialized key should start with the chain code")
	}
	if d.SerializedMasterPublicKey.PublicKey() != d.PublicKey {
		t.Error("serialized key should end with the public key")
	}

	// Same inputs, same output.
	again := testDerivation(t, testPath)
	if again.PrivateKey != d.PrivateKey || again.PublicKey != d.PublicKey || again.ChainCode != d.ChainCode {
		t.Error("DeriveFromSeed is not deterministic")
	}

	// Passphrase changes everything.
	other, err := DeriveFromSeed(testMnemonic, "", testPath)
	if err != nil {
		t.Fatalf("DeriveFromSeed() error: %v", err)
	}
	if other.PublicKey == d.PublicKey {
		t.Error("different passphrase produced the same key")
	}
}

func TestDeriveFromSeed_Errors(t *testing.T) {
	if _, err := DeriveFromSeed(testMnemonic, "", "44'/0'"); !errors.Is(err, hdkey.ErrInvalidPath) {
		t.Errorf("bad path error = %v, want ErrInvalidPath", err)
	}
	if _, err := DeriveFromSeed("not a mnemonic at all", "", testPath); err == nil {
		t.Error("expected error for invalid mnemonic")
	}
}

func TestDeriveChildPublicKey_MatchesPrivate(t *testing.T) {
	parent := testDerivation(t, testPath)

	for _, idx := range []uint32{0, 1, 42, 1<<31 - 1} {
		pub, err := DeriveChildPublicKey(parent.SerializedMasterPublicKey, idx)
		if err != nil {
			t.Fatalf("DeriveChildPublicKey(%d) error: %v", idx, err)
		}
		child := testDerivation(t, testPath+"/"+strconv.FormatUint(uint64(idx), 10))
		if pub != child.PublicKey {
			t.Errorf("index %d: public derivation %s != private derivation %s", idx, pub, child.PublicKey)
		}
	}
}

func TestDeriveChildPublicKey_Errors(t *testing.T) {
	parent := testDerivation(t, testPath)
	if _, err := DeriveChildPublicKey(parent.SerializedMasterPublicKey, 1<<31); !errors.Is(err, hdkey.ErrIndexOutOfRange) {
		t.Errorf("error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestDeriveChildPrivateKey(t *testing.T) {
	parent := testDerivation(t, testPath)
	node, err := parent.Node()
	if err != nil {
		t.Fatalf("Node() error: %v", err)
	}

	child, err := DeriveChildPrivateKey(node, 3, true)
	if err != nil {
		t.Fatalf("DeriveChildPrivateKey() error: %v", err)
	}
	want := testDerivation(t, testPath+"/3'")
	if child.PublicKey() != want.PublicKey {
		t.Error("child of rebuilt node differs from path derivation")
	}

	if _, err := DeriveChildPrivateKey(node.Neuter(), 3, false); !errors.Is(err, ErrPublicOnly) {
		t.Errorf("public node error = %v, want ErrPublicOnly", err)
	}
}

func TestEd25519ToCurve25519(t *testing.T) {
	ed, err := types.HexToKey("e30d5571d2c3f07691120792e5d3ead0f60f8a4504bf3c57f182f558e6243940")
	if err != nil {
		t.Fatalf("HexToKey() error: %v", err)
	}
	got, err := Ed25519ToCurve25519(ed)
	if err != nil {
		t.Fatalf("Ed25519ToCurve25519() error: %v", err)
	}
	if got.String() != "4d50b735fd45d22640675816f8ee2d56bf2caebebf76f7786183dcbd9022dd1f" {
		t.Errorf("Ed25519ToCurve25519() = %s", got)
	}
}

func TestDerivation_JSON(t *testing.T) {
	d := testDerivation(t, testPath)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Contains(data, []byte(`"publicKey":"`+d.PublicKey.String()+`"`)) {
		t.Errorf("JSON missing hex public key: %s", data)
	}

	var back Derivation
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.SerializedMasterPublicKey != d.SerializedMasterPublicKey || !bytes.Equal(back.Seed, d.Seed) {
		t.Error("JSON roundtrip mismatch")
	}
}
