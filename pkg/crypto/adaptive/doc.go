// Package adaptive provides authenticated encryption for values SnipBoard
// persists at rest.
//
// Supported Algorithms:
//
//   - AES-256-GCM: preferred when the CPU has AES instructions
//   - ChaCha20-Poly1305: fallback for other architectures
//
// A Cipher is built either from a raw key (New, NewWithType) or from an
// operator-supplied secret (FromSecret), which is stretched to 32 bytes
// with HKDF-SHA256. Ciphertexts carry their nonce as a prefix.
//
// Usage:
//
//	c, err := adaptive.FromSecret(secret, "")
//	sealed, err := c.Encrypt(value, []byte("storedFiles"))
//	value, err := c.Decrypt(sealed, []byte("storedFiles"))
package adaptive
