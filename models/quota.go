package models

const (
	// QuotaMirrorKeyPrefix prefixes the per-day ledger keys in the durable mirror.
	QuotaMirrorKeyPrefix = "promoscan:quota"
)

// QuotaState is the durable form of the ledger, mirrored to the KV store so
// separate process instances approximate a shared daily budget.
type QuotaState struct {
	Day  string `json:"day"`
	Used int64  `json:"used"`
}

// QuotaStatus is the snapshot handed to clients alongside quota errors and
// the /api/quota endpoint.
type QuotaStatus struct {
	Used            int64  `json:"used"`
	Remaining       int64  `json:"remaining"`
	UsableRemaining int64  `json:"usableRemaining"`
	Limit           int64  `json:"limit"`
	PercentUsed     int    `json:"percentUsed"`
	IsLow           bool   `json:"isLow"`
	IsExhausted     bool   `json:"isExhausted"`
	ResetsAt        string `json:"resetsAt"`
}
