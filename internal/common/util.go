// Package common holds small utilities shared across the Clea client.
package common

// WipeByteArray overwrites the buffer with zeros. Used for passwords read
// from the terminal once they have been sent to the backend.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
