package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Opener opens stored notes and PDFs in a viewer.
type Opener struct {
	root   string
	reader string
}

// NewOpener creates an opener resolving relative paths against root. An
// empty reader means the system default application.
func NewOpener(root, reader string) *Opener {
	if reader == "" {
		reader = "system"
	}
	return &Opener{root: root, reader: reader}
}

// ResolvePath returns the absolute path of an existing file. Relative paths
// are joined to the opener's root.
func (o *Opener) ResolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no file specified")
	}
	if !filepath.IsAbs(path) {
		if o.root == "" {
			return "", fmt.Errorf("relative path %s needs a configured directory", path)
		}
		path = filepath.Join(o.root, path)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", path)
		}
		return "", fmt.Errorf("checking file: %w", err)
	}
	return path, nil
}

// Open starts the viewer on path and returns without waiting for it.
func (o *Opener) Open(path string) error {
	cmd, err := o.Command(runtime.GOOS, path)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Command returns the viewer command for goos.
func (o *Opener) Command(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return o.darwinCommand(path), nil
	case "linux":
		return o.linuxCommand(path), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// darwinCommand returns the command to open a PDF on macOS.
func (o *Opener) darwinCommand(path string) *exec.Cmd {
	switch o.reader {
	case "skim":
		return exec.Command("open", "-a", "Skim", path)
	case "preview":
		return exec.Command("open", "-a", "Preview", path)
	default: // "system"
		return exec.Command("open", path)
	}
}

// linuxCommand returns the command to open a PDF on Linux.
func (o *Opener) linuxCommand(path string) *exec.Cmd {
	switch o.reader {
	case "zathura":
		return exec.Command("zathura", path)
	case "evince":
		return exec.Command("evince", path)
	case "okular":
		return exec.Command("okular", path)
	default: // "system"
		return exec.Command("xdg-open", path)
	}
}
