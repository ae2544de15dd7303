//go:build linux

package timestamp

import (
	"io/fs"
	"syscall"
	"time"
)

// changeTime returns the inode change time where the platform exposes it.
// Backends without a real inode (afero's memory fs) fall back to mtime.
func changeTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok && st != nil {
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return info.ModTime()
}
