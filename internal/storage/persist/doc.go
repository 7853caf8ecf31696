// Package persist maps the board onto two keys of a KV engine.
//
// Layout:
//
//   - storedFiles: JSON array of {"name","content"}, in tab order
//   - darkMode: "enabled" or "disabled"; absent means follow the system
//
// Loading never fails. Anything missing or unreadable under a key reads
// as the empty board or the unset theme. When a cipher is configured,
// values are sealed with it and the key name is bound as additional data,
// so a value copied under the other key does not decrypt.
package persist
