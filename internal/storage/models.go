package storage

import "time"

// Entry is one row of the kv_store table used by the SQL backends.
type Entry struct {
	Key       string    `json:"key" gorm:"primaryKey;column:key"`
	Value     string    `json:"value" gorm:"column:value;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName pins the gorm table name so it matches the goose migrations.
func (Entry) TableName() string { return "kv_store" }
