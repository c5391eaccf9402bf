// Package export renders reflection story cards to PNG and hands them to
// the user, either as a plain file or through the platform's opener.
package export

import (
	"fmt"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Exporter renders documents and writes them under the output directory.
type Exporter struct {
	renderer *Renderer
	outDir   string
	log      *zap.Logger

	now    func() time.Time
	opener func(path string) error
}

func NewExporter(outDir string, log *zap.Logger) (*Exporter, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{
		renderer: renderer,
		outDir:   outDir,
		log:      log,
		now:      time.Now,
		opener:   openWithPlatform,
	}, nil
}

// Download renders doc and saves it, returning the written path. Filenames
// carry a millisecond timestamp so repeated exports never collide.
func (e *Exporter) Download(doc Document) (string, error) {
	img, err := e.renderer.Render(doc)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(e.outDir, fmt.Sprintf("reflections-%d.png", e.now().UnixMilli()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return path, nil
}

// Share saves the card and asks the platform to open it. When no opener is
// available or it refuses, the saved file is still the result; opened
// reports which of the two happened.
func (e *Exporter) Share(doc Document) (path string, opened bool, err error) {
	path, err = e.Download(doc)
	if err != nil {
		return "", false, err
	}

	if err := e.opener(path); err != nil {
		e.log.Debug("platform opener unavailable, leaving the file", zap.Error(err))
		return path, false, nil
	}
	return path, true, nil
}

func openWithPlatform(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("no opener for %s", runtime.GOOS)
	}
	return cmd.Start()
}
