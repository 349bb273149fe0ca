// SPDX-License-Identifier: Unlicense OR MIT

package installer

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the hive whenever its backing file changes and calls
// onChange after each successful reload. It blocks until ctx is
// cancelled. Reload failures are reported through onError, if set;
// the previous snapshot stays in effect.
func (h *FileHive) Watch(ctx context.Context, onChange func(), onError func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("installer: watch hive: %w", err)
	}
	defer w.Close()
	if err := w.Add(h.path); err != nil {
		return fmt.Errorf("installer: watch %s: %w", h.path, err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := h.Load(); err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			if onChange != nil {
				onChange()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
