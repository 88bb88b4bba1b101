package tui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// SystemOpener opens URLs with the platform's default handler.
type SystemOpener struct{}

// Open implements explore.Opener. The opener process is started, not
// waited on.
func (SystemOpener) Open(url string) error {
	cmd := openCommand(runtime.GOOS, url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go cmd.Wait()
	return nil
}

func openCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}
