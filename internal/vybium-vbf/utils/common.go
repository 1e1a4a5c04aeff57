package utils

import "math/bits"

// IsPowerOfTwo checks if a number is a power of 2
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// Log2 computes the base-2 logarithm of a power of 2
func Log2(n int) int {
	if !IsPowerOfTwo(n) {
		return -1
	}
	return bits.TrailingZeros(uint(n))
}

// Popcount returns the Hamming weight of x
func Popcount(x uint32) int {
	return bits.OnesCount32(x)
}

// Parity returns the XOR of all bits of x
func Parity(x uint32) uint32 {
	return uint32(bits.OnesCount32(x) & 1)
}

// Dot returns the GF(2) inner product of a and b
func Dot(a, b uint32) uint32 {
	return Parity(a & b)
}
