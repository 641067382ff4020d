//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows

package diagnostic

func isTerminal(fd uintptr) bool { return false }
