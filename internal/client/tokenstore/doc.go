// Package tokenstore persists the session token between runs.
//
// SQLiteStore keeps it in the local database, sealed with AES-256-GCM under
// a key expanded (HKDF-SHA256) from a random per-device secret file. The key
// is derived once when the store is built. The plaintext never reaches disk.
// Ciphertext and nonce are written in one transaction, so a crash leaves
// either the old token or the new one.
//
// All methods wrap failures with ErrStorage.
package tokenstore
