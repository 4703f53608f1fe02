package sss

// Arithmetic in GF(2^8) with reduction polynomial x^8+x^4+x^3+x^2+1 (0x11d)
// and generator 2. Addition is XOR.

const primitive = 0x11d

var (
	expTable [255]byte
	logTable [256]byte
)

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		expTable[i] = byte(x)
		logTable[x] = byte(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= primitive
		}
	}
}

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[(int(logTable[a])+int(logTable[b]))%255]
}

// gfDiv panics on b == 0; callers reject zero indices first.
func gfDiv(a, b byte) byte {
	if b == 0 {
		panic("sss: division by zero in GF(256)")
	}
	if a == 0 {
		return 0
	}
	return expTable[(int(logTable[a])-int(logTable[b])+255)%255]
}

// evalPoly evaluates coeffs (constant term first) at x by Horner's rule.
func evalPoly(coeffs []byte, x byte) byte {
	var y byte
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = gfMul(y, x) ^ coeffs[i]
	}
	return y
}

// interpolateAtZero returns the Lagrange interpolation of (xs[i], ys[i])
// evaluated at 0. The xs must be distinct and non-zero.
func interpolateAtZero(xs, ys []byte) byte {
	var result byte
	for i := range xs {
		basis := byte(1)
		for j := range xs {
			if i == j {
				continue
			}
			// (0 - xj) / (xi - xj) in characteristic 2.
			basis = gfMul(basis, gfDiv(xs[j], xs[i]^xs[j]))
		}
		result ^= gfMul(ys[i], basis)
	}
	return result
}
