package sss

import (
	"bytes"
	"errors"
	"testing"

	"lukechampine.com/frand"
)

const testMnemonic = "legal winner thank year wave sausage worth useful legal winner thank yellow"

func testRNG() *frand.RNG {
	return frand.NewCustom(make([]byte, 32), 1024, 12)
}

// subsets calls fn with every m-element subset of shares.
func subsets(shares []Share, m int, fn func([]Share)) {
	pick := make([]Share, 0, m)
	var rec func(start int)
	rec = func(start int) {
		if len(pick) == m {
			fn(append([]Share(nil), pick...))
			return
		}
		for i := start; i < len(shares); i++ {
			pick = append(pick, shares[i])
			rec(i + 1)
			pick = pick[:len(pick)-1]
		}
	}
	rec(0)
}

func TestSplitCombine_AllSubsets(t *testing.T) {
	secrets := map[string][]byte{
		"mnemonic":    []byte(testMnemonic),
		"private key": bytes.Repeat([]byte{0xa5, 0x00, 0xff, 0x13}, 8),
		"single byte": {0x00},
	}
	params := []struct{ n, m int }{
		{2, 2}, {3, 2}, {3, 3}, {5, 3}, {6, 4},
	}

	for name, secret := range secrets {
		for _, p := range params {
			shares, err := Split(secret, p.n, p.m)
			if err != nil {
				t.Fatalf("%s: Split(%d, %d) error: %v", name, p.n, p.m, err)
			}
			if len(shares) != p.n {
				t.Fatalf("%s: got %d shares, want %d", name, len(shares), p.n)
			}

			count := 0
			for k := p.m; k <= p.n; k++ {
				subsets(shares, k, func(sub []Share) {
					count++
					got, err := Combine(sub)
					if err != nil {
						t.Fatalf("%s: Combine() error: %v", name, err)
					}
					if !bytes.Equal(got, secret) {
						t.Errorf("%s n=%d m=%d: subset of %d did not recover the secret", name, p.n, p.m, k)
					}
				})
			}
			if count == 0 {
				t.Fatalf("%s: no subsets exercised", name)
			}
		}
	}
}

func TestSplit_ShareLayout(t *testing.T) {
	secret := []byte("secret")
	shares, err := SplitWithReader(testRNG(), secret, 4, 2)
	if err != nil {
		t.Fatalf("SplitWithReader() error: %v", err)
	}
	for i, s := range shares {
		if s.Index != byte(i+1) {
			t.Errorf("share %d index = %d, want %d", i, s.Index, i+1)
		}
		if len(s.Value) != len(secret) {
			t.Errorf("share %d length = %d, want %d", i, len(s.Value), len(secret))
		}
	}
}

func TestSplitWithReader_Deterministic(t *testing.T) {
	secret := []byte(testMnemonic)
	a, err := SplitWithReader(testRNG(), secret, 3, 2)
	if err != nil {
		t.Fatalf("SplitWithReader() error: %v", err)
	}
	b, err := SplitWithReader(testRNG(), secret, 3, 2)
	if err != nil {
		t.Fatalf("SplitWithReader() error: %v", err)
	}
	for i := range a {
		if a[i].String() != b[i].String() {
			t.Errorf("share %d differs for identical randomness", i)
		}
	}
}

func TestSplitWithReader_ShortRandomness(t *testing.T) {
	_, err := SplitWithReader(bytes.NewReader([]byte{1, 2}), []byte("longer secret"), 3, 2)
	if err == nil {
		t.Error("expected error when randomness runs out")
	}
}

func TestSplit_Threshold(t *testing.T) {
	tests := []struct {
		name    string
		n, m    int
		wantErr bool
	}{
		{"m greater than n", 3, 4, true},
		{"m below two", 3, 1, true},
		{"m zero", 3, 0, true},
		{"n above 255", 256, 2, true},
		{"minimum", 2, 2, false},
		{"maximum", 255, 255, false},
		{"max n low m", 255, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Split([]byte{0x01, 0x02}, tt.n, tt.m)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidThreshold) {
					t.Errorf("Split(%d, %d) error = %v, want ErrInvalidThreshold", tt.n, tt.m, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split(%d, %d) error: %v", tt.n, tt.m, err)
			}
			got, err := Combine(shares[len(shares)-tt.m:])
			if err != nil {
				t.Fatalf("Combine() error: %v", err)
			}
			if !bytes.Equal(got, []byte{0x01, 0x02}) {
				t.Errorf("Combine() = %x, want 0102", got)
			}
		})
	}
}

func TestSplit_EmptySecret(t *testing.T) {
	if _, err := Split(nil, 3, 2); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("Split(nil) error = %v, want ErrEmptySecret", err)
	}
}

func TestCombine_DuplicateIndex(t *testing.T) {
	shares, err := Split([]byte(testMnemonic), 3, 2)
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}

	_, err = Combine([]Share{shares[0], shares[0]})
	if !errors.Is(err, ErrDuplicateShareIndex) {
		t.Errorf("Combine() error = %v, want ErrDuplicateShareIndex", err)
	}

	// Same index but a different payload is still rejected.
	forged := Share{Index: shares[0].Index, Value: shares[1].Value}
	_, err = Combine([]Share{shares[0], forged})
	if !errors.Is(err, ErrDuplicateShareIndex) {
		t.Errorf("Combine() error = %v, want ErrDuplicateShareIndex", err)
	}
}

func TestCombine_InvalidShares(t *testing.T) {
	shares, err := Split([]byte("abc"), 3, 2)
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}

	tests := []struct {
		name   string
		shares []Share
	}{
		{"no shares", nil},
		{"index zero", []Share{{Index: 0, Value: []byte("abc")}, shares[1]}},
		{"length mismatch", []Share{shares[0], {Index: 2, Value: []byte("ab")}}},
		{"empty value", []Share{{Index: 1}, {Index: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Combine(tt.shares); !errors.Is(err, ErrInvalidShare) {
				t.Errorf("Combine() error = %v, want ErrInvalidShare", err)
			}
		})
	}
}

func TestCombine_BelowThreshold(t *testing.T) {
	// Fewer shares than the threshold interpolate a different polynomial;
	// there is no error, the output is simply not the secret.
	secret := bytes.Repeat([]byte{0x5a}, 32)
	shares, err := SplitWithReader(testRNG(), secret, 5, 3)
	if err != nil {
		t.Fatalf("SplitWithReader() error: %v", err)
	}
	got, err := Combine(shares[:2])
	if err != nil {
		t.Fatalf("Combine() error: %v", err)
	}
	if bytes.Equal(got, secret) {
		t.Error("two of three shares should not recover the secret")
	}
}

func TestShare_Text(t *testing.T) {
	s := Share{Index: 0x0b, Value: []byte{0xde, 0xad, 0xbe, 0xef}}
	if s.String() != "0bdeadbeef" {
		t.Errorf("String() = %s, want 0bdeadbeef", s)
	}

	parsed, err := ParseShare("0bdeadbeef")
	if err != nil {
		t.Fatalf("ParseShare() error: %v", err)
	}
	if parsed.Index != s.Index || !bytes.Equal(parsed.Value, s.Value) {
		t.Errorf("ParseShare() = %+v, want %+v", parsed, s)
	}

	for _, bad := range []string{"", "0b", "zz00", "00dead", "0bdea"} {
		if _, err := ParseShare(bad); !errors.Is(err, ErrInvalidShare) {
			t.Errorf("ParseShare(%q) error = %v, want ErrInvalidShare", bad, err)
		}
	}
}

func TestShare_TextCombine(t *testing.T) {
	secret := []byte(testMnemonic)
	shares, err := Split(secret, 3, 2)
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}

	var parsed []Share
	for _, s := range shares[1:] {
		p, err := ParseShare(s.String())
		if err != nil {
			t.Fatalf("ParseShare() error: %v", err)
		}
		parsed = append(parsed, p)
	}
	got, err := Combine(parsed)
	if err != nil {
		t.Fatalf("Combine() error: %v", err)
	}
	if string(got) != testMnemonic {
		t.Errorf("Combine() = %q, want the original mnemonic", got)
	}
}
