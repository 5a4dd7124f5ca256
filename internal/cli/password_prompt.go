package cli

import (
	"errors"
	"io"
	"os"
	"strings"
)

var errNoTerminal = errors.New("terminal input unavailable")

// readHiddenLine reads one line from stdin with echo disabled. Input is read
// a byte at a time so a later prompt still sees the rest of the stream.
func readHiddenLine(stdin *os.File) (string, error) {
	if stdin == nil {
		return "", errNoTerminal
	}
	restore, err := disableEcho(stdin.Fd())
	if err != nil {
		return "", err
	}
	defer restore()

	var line []byte
	next := make([]byte, 1)
	for {
		n, err := stdin.Read(next)
		if n == 1 {
			if next[0] == '\n' {
				break
			}
			line = append(line, next[0])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimSuffix(string(line), "\r"), nil
}
