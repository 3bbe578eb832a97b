// Package billno generates bill numbers.
//
// Bill numbers are short random alphanumeric codes rather than sequential
// integers, so the number printed on a receipt does not reveal how many
// bills the shop has issued.
package billno

import (
	"crypto/rand"
)

// Alphabet is the set of characters used in bill numbers.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of characters in a bill number.
const Length = 8

// New returns a new random bill number, e.g. "K7KD204A".
func New() string {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic("billno: rand.Read: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(buf)
}
