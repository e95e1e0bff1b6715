package cli

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// viewerCommand returns the command that opens path. A configured viewer is
// split on whitespace and receives path as its last argument.
func viewerCommand(path, viewer string) (string, []string, error) {
	if fields := strings.Fields(viewer); len(fields) > 0 {
		return fields[0], append(fields[1:], path), nil
	}
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{path}, nil
	case "linux":
		return "xdg-open", []string{path}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// openViewer starts the viewer for path without waiting for it to exit.
func openViewer(path, viewer string) error {
	name, args, err := viewerCommand(path, viewer)
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}
