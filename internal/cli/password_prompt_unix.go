//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import "golang.org/x/sys/unix"

func disableEcho(fd uintptr) (func(), error) {
	original, err := unix.IoctlGetTermios(int(fd), ioctlGetTermios)
	if err != nil {
		return nil, err
	}
	silent := *original
	silent.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(int(fd), ioctlSetTermios, &silent); err != nil {
		return nil, err
	}
	return func() { _ = unix.IoctlSetTermios(int(fd), ioctlSetTermios, original) }, nil
}
