package repositories

import "context"

// LedgerRegistry is the boundary to the external, authoritative, append-only
// ledger: an opaque key→digest registry that can reject duplicate writes and
// can fail independently of the local store.
//
// Implementations must map outcomes onto the apperrors taxonomy:
//   - Write of an existing key  → apperrors.ErrAlreadyRegistered
//   - transient transport/5xx   → apperrors.ErrLedgerUnavailable
//   - Read of an unknown key    → apperrors.ErrNotFound
type LedgerRegistry interface {
	// Write registers digest under key and returns the ledger's receipt.
	Write(ctx context.Context, key, digest string) (receipt string, err error)

	// Read returns the digest the ledger holds for key.
	Read(ctx context.Context, key string) (digest string, err error)
}

// DocumentStore is the boundary to the external blob store. Uploads return a
// stable reference URL; core treats references as opaque strings.
type DocumentStore interface {
	Upload(ctx context.Context, filename string, content []byte) (ref string, err error)
}
