package models

// Setting is a key/value row for app-level state such as the lock
// passphrase hash.
type Setting struct {
	BaseModel
	Key   string `gorm:"type:varchar(60);uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

const (
	SettingLockHash     = "lock_passphrase_hash"
	SettingPracticeName = "practice_name"
)
