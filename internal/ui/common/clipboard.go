package common

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = writeClipboard

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) error {
	return clipboardWrite(text)
}

func writeClipboard(text string) error {
	// pbcopy works from more macOS sessions than the library does.
	if runtime.GOOS == "darwin" {
		cmd := exec.Command("pbcopy")
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return clipboard.WriteAll(text)
}
