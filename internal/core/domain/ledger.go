package domain

import "time"

// LedgerProof is the durable outcome of minting a record: the deterministic
// fingerprint written to the external ledger and the receipt it returned.
type LedgerProof struct {
	Fingerprint string    `json:"fingerprint"`
	Receipt     string    `json:"receipt"`
	RecordedAt  time.Time `json:"recordedAt"`
}
