package cmd

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yourorg/catalogadmin/internal/client"
)

type terminalNotifier struct {
	out    io.Writer
	errOut io.Writer
}

func (n *terminalNotifier) Success(message string) {
	fmt.Fprintf(n.out, "✓ %s\n", message)
}

func (n *terminalNotifier) Error(message string) {
	fmt.Fprintf(n.errOut, "✗ %s\n", message)
}

// signalNavigator has no page to switch to; it reports the target and closes
// done so the command can exit.
type signalNavigator struct {
	out  io.Writer
	once sync.Once
	done chan struct{}
}

func newSignalNavigator(out io.Writer) *signalNavigator {
	return &signalNavigator{out: out, done: make(chan struct{})}
}

func (n *signalNavigator) Navigate(path string) {
	n.once.Do(func() {
		fmt.Fprintf(n.out, "→ %s\n", path)
		close(n.done)
	})
}

func loadImages(paths []string) ([]client.File, error) {
	files := make([]client.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		files = append(files, client.File{
			Filename:    filepath.Base(p),
			ContentType: detectContentType(p, data),
			Data:        data,
		})
	}
	return files, nil
}

func detectContentType(path string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
