package models

// KVEntry is the persistence row backing the record store. The store only
// ever reads and writes whole values per key; collections are JSON blobs.
type KVEntry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value []byte `gorm:"column:value"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
