package hdkey

import (
	"fmt"
	"strconv"
	"strings"
)

// HardenedOffset is added to an index to mark hardened derivation.
const HardenedOffset uint32 = 1 << 31

// BIP-44 purpose field.
const PurposeBIP44 = 44

// Path is a sequence of child indices. Hardened elements carry
// HardenedOffset.
type Path []uint32

// ParsePath parses the textual form "m/44'/16'/0'/0'/0'". An apostrophe,
// "h" or "H" suffix marks a hardened segment. "m" alone is the master.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s != "m" && s != "M" && !strings.HasPrefix(s, "m/") && !strings.HasPrefix(s, "M/") {
		return nil, fmt.Errorf("%w: %q must start with \"m\"", ErrInvalidPath, s)
	}
	if len(s) == 1 {
		return Path{}, nil
	}

	segments := strings.Split(s[2:], "/")
	path := make(Path, 0, len(segments))
	for _, seg := range segments {
		idx, err := parseSegment(seg)
		if err != nil {
			return nil, err
		}
		path = append(path, idx)
	}
	return path, nil
}

func parseSegment(seg string) (uint32, error) {
	hardened := false
	if n := len(seg); n > 0 {
		switch seg[n-1] {
		case '\'', 'h', 'H':
			hardened = true
			seg = seg[:n-1]
		}
	}
	if seg == "" {
		return 0, fmt.Errorf("%w: empty segment", ErrInvalidPath)
	}
	for _, c := range seg {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: bad segment %q", ErrInvalidPath, seg)
		}
	}
	v, err := strconv.ParseUint(seg, 10, 64)
	if err != nil || v >= uint64(HardenedOffset) {
		return 0, fmt.Errorf("%w: %s", ErrIndexOutOfRange, seg)
	}
	idx := uint32(v)
	if hardened {
		idx += HardenedOffset
	}
	return idx, nil
}

// String renders the path with apostrophes for hardened segments.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range p {
		b.WriteByte('/')
		if idx >= HardenedOffset {
			b.WriteString(strconv.FormatUint(uint64(idx-HardenedOffset), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return b.String()
}

// Child returns a copy of p extended by one segment.
func (p Path) Child(index uint32, hardened bool) (Path, error) {
	if index >= HardenedOffset {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if hardened {
		index += HardenedOffset
	}
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, index), nil
}

// BIP44Path returns m/44'/coin'/account'/chain'/index' with every segment
// hardened, the layout ed25519 wallets use.
func BIP44Path(coin, account, chain, index uint32) (Path, error) {
	p := Path{}
	var err error
	for _, idx := range []uint32{PurposeBIP44, coin, account, chain, index} {
		if p, err = p.Child(idx, true); err != nil {
			return nil, err
		}
	}
	return p, nil
}
