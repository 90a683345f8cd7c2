// Package watcher imports files dropped into the inbox folder. A subfolder
// named after a patient public ID routes its contents to that patient's
// record.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"praxisnote.app/configs/configsapp"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/services"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settleDelay gives external programs time to finish writing before import.
const settleDelay = 500 * time.Millisecond

// InboxWatcher watches the inbox tree for dropped files.
type InboxWatcher struct {
	patients services.IPatientService
	files    services.IFileService
}

// NewInboxWatcher builds the watcher on the default services.
func NewInboxWatcher() *InboxWatcher {
	return &InboxWatcher{
		patients: services.NewPatientService(),
		files:    services.NewFileService(),
	}
}

// Run blocks until ctx is done, importing inbox drops as they appear.
// Existing files are swept once on startup.
func (w *InboxWatcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	inbox := configsapp.InboxDir()
	if err := fsw.Add(inbox); err != nil {
		return err
	}

	entries, err := os.ReadDir(inbox)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			dir := filepath.Join(inbox, entry.Name())
			if err := fsw.Add(dir); err != nil {
				configslog.SLog.Warnf("Could not watch inbox folder %q: %v", dir, err)
			}
			w.sweepDir(ctx, dir)
		}
	}

	configslog.SLog.Infof("Inbox watcher running on %s", inbox)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if filepath.Dir(event.Name) == inbox {
					if err := fsw.Add(event.Name); err != nil {
						configslog.SLog.Warnf("Could not watch inbox folder %q: %v", event.Name, err)
					}
				}
				continue
			}
			// imports wait out the settle delay off the event loop so a
			// burst of drops does not stall event handling
			go w.importAfterSettle(ctx, event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			configslog.Log.Error("Inbox watcher error", zap.Error(err))
		}
	}
}

// sweepDir imports anything already sitting in a patient inbox folder.
func (w *InboxWatcher) sweepDir(ctx context.Context, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			w.importFile(ctx, filepath.Join(dir, entry.Name()))
		}
	}
}

// importAfterSettle gives the writer time to finish, then imports. Returns
// early when the watcher is shutting down.
func (w *InboxWatcher) importAfterSettle(ctx context.Context, path string) {
	timer := time.NewTimer(settleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}
	w.importFile(ctx, path)
}

// importFile routes one dropped file to the patient its folder names. Files
// directly in the inbox root, or in folders that match no patient, stay put.
func (w *InboxWatcher) importFile(ctx context.Context, path string) {
	inbox := configsapp.InboxDir()
	parent := filepath.Dir(path)
	if parent == inbox {
		configslog.SLog.Warnf("Ignoring inbox file %q: not inside a patient folder", filepath.Base(path))
		return
	}

	publicID := filepath.Base(parent)
	patient, err := w.patients.GetPatient(ctx, publicID)
	if err != nil {
		configslog.SLog.Warnf("Ignoring inbox folder %q: no such patient", publicID)
		return
	}

	file, err := w.files.ImportFromPath(ctx, patient, path)
	if err != nil {
		configslog.Log.Error("Inbox import failed", zap.String("path", path), zap.Error(err))
		return
	}
	configslog.SLog.Infof("Imported inbox file %q for patient %s", file.Filename, patient.PublicID)
}
