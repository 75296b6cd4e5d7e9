package db_models

const (
	SyncMetaLastSync   = "last_sync"
	SyncMetaSyncStatus = "sync_status"
)

const (
	SyncStatusNeverRun = "never_run"
	SyncStatusSuccess  = "success"
	SyncStatusError    = "error"
)

// SyncMetadata is a key/value row. Holds the watermark (last_sync) and the
// outcome of the last pass (sync_status).
type SyncMetadata struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt int64 `gorm:"autoUpdateTime"`
}

// SyncLock is a single advisory-lock row claimed before a sync pass.
// Invocations may run in separate processes, so the claim has to go through
// the database, with an expiry in case a holder dies mid-pass.
type SyncLock struct {
	ID        int `gorm:"primaryKey"`
	Holder    string
	ExpiresAt int64
}
