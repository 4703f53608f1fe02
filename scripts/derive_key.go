// derive_key.go prints the public key, Curve25519 key and fingerprint for
// a hex-encoded private scalar file (the privateKey field of derive output).
// Usage: go run scripts/derive_key.go <keyfile>
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"filippo.io/edwards25519"
	"github.com/mrv777/ardor-keykit/pkg/crypto"
	"github.com/mrv777/ardor-keykit/pkg/curve"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_key <keyfile>")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	keyBytes, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	scalar, err := new(edwards25519.Scalar).SetCanonicalBytes(keyBytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	pub := curve.PublicKey(scalar)
	u, err := curve.Ed25519PublicKeyToCurve25519(pub)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fp := crypto.KeyFingerprint(pub[:])
	fmt.Printf("pubkey=%s\n", pub)
	fmt.Printf("curve25519=%s\n", u)
	fmt.Printf("fingerprint=%s\n", hex.EncodeToString(fp[:]))
}
