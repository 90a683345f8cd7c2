package configsapp

import (
	"os"
	"path/filepath"
)

// Env returns the environment variable or a fallback when unset.
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ListenAddr is the address the local web process binds to.
func ListenAddr() string {
	return Env("LISTEN_ADDR", "127.0.0.1:8942")
}

// DataDir is the root of all on-disk record storage: the database file,
// per-patient folders, the import inbox and snapshot exports.
func DataDir() string {
	return Env("DATA_DIR", "./data")
}

// PatientsDir holds one folder per patient, keyed by public ID.
func PatientsDir() string {
	return filepath.Join(DataDir(), "patients")
}

// PatientDir is the attachment folder of a single patient.
func PatientDir(publicID string) string {
	return filepath.Join(PatientsDir(), publicID)
}

// InboxDir is watched for externally dropped files; a subfolder named after a
// patient public ID routes its contents to that patient.
func InboxDir() string {
	return filepath.Join(DataDir(), "inbox")
}

// SnapshotsDir receives the nightly whole-document JSON exports.
func SnapshotsDir() string {
	return filepath.Join(DataDir(), "snapshots")
}

// PracticeName is shown in the app shell and in exported documents.
func PracticeName() string {
	return Env("PRACTICE_NAME", "PraxisNote")
}

// WatchInbox reports whether the inbox watcher should run.
func WatchInbox() bool {
	return Env("WATCH_INBOX", "true") == "true"
}

// SnapshotCron and ReminderCron are standard 5-field cron expressions.
func SnapshotCron() string {
	return Env("SNAPSHOT_CRON", "0 2 * * *")
}

func ReminderCron() string {
	return Env("REMINDER_CRON", "0 7 * * *")
}

// EnsureDirs creates the storage layout below DataDir.
func EnsureDirs() error {
	for _, dir := range []string{PatientsDir(), InboxDir(), SnapshotsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
