package crossval

import (
	"encoding/hex"
	"fmt"

	"github.com/mrv777/ardor-keykit/pkg/hdkey"
	"github.com/mrv777/ardor-keykit/pkg/mnemonic"
	"lukechampine.com/frand"
)

// MaxCaseDepth bounds the depth of randomly generated paths.
const MaxCaseDepth = 6

// Case is one cross-validation input.
type Case struct {
	Mnemonic   string `json:"mnemonic"`
	Passphrase string `json:"passphrase"`
	Path       string `json:"path"`
	ChildIndex uint32 `json:"childIndex"`
}

// entropySizes are the BIP-39 entropy lengths in bytes.
var entropySizes = []int{16, 20, 24, 28, 32}

// RandomCases draws n cases from rng: random entropy of every allowed
// size, an empty or random passphrase, a fully hardened path of depth 1
// to MaxCaseDepth and a non-hardened child index. Mnemonics are written
// in a wordlist picked from wls (English when none are given).
func RandomCases(n int, rng *frand.RNG, wls ...*mnemonic.Wordlist) ([]Case, error) {
	if len(wls) == 0 {
		wls = []*mnemonic.Wordlist{mnemonic.English}
	}
	cases := make([]Case, 0, n)
	for i := 0; i < n; i++ {
		entropy := rng.Bytes(entropySizes[rng.Intn(len(entropySizes))])
		phrase, err := mnemonic.EntropyToMnemonic(entropy, wls[rng.Intn(len(wls))])
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}

		var passphrase string
		if rng.Intn(2) == 1 {
			passphrase = hex.EncodeToString(rng.Bytes(1 + rng.Intn(16)))
		}

		path := make(hdkey.Path, 1+rng.Intn(MaxCaseDepth))
		for j := range path {
			path[j] = uint32(rng.Uint64n(uint64(hdkey.HardenedOffset))) + hdkey.HardenedOffset
		}

		cases = append(cases, Case{
			Mnemonic:   phrase,
			Passphrase: passphrase,
			Path:       path.String(),
			ChildIndex: uint32(rng.Uint64n(uint64(hdkey.HardenedOffset))),
		})
	}
	return cases, nil
}
