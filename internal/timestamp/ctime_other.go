//go:build !linux

package timestamp

import (
	"io/fs"
	"time"
)

// changeTime falls back to the modification time on platforms where the
// change time is not portably available.
func changeTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
