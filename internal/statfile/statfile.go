// Package statfile writes the MonaLisa accounting file of a simulation job.
//
// The file is named inputN_passedN_errorsN_outputN.stat, only the number of
// produced MC collisions is known here, so the name is always 0_0_0_<N>.stat.
package statfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/AliceO2Group/eventstat/internal/model"
)

// Name returns the stat file name for count.
func Name(count model.EventCount) string {
	return fmt.Sprintf("0_0_0_%d.stat", count)
}

// Content returns the stat file body. The "Numer" spelling is what the
// MonaLisa side expects, do not fix it.
func Content(count model.EventCount) []byte {
	return fmt.Appendf(nil,
		"#This file is autogenerated\n"+
			"#It tells MonaLisa about the number of produced MC events\n"+
			"#Numer of MC collisions in AOD : %d\n",
		count)
}

// Writer stores stat files in a directory.
type Writer struct {
	root *os.Root
}

func NewWriter(dir string) (*Writer, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("opening stat directory: %w", err)
	}
	return &Writer{root: root}, nil
}

// Write creates or truncates the stat file for count and fills it with a
// single write. It returns the path of the file.
func (w *Writer) Write(ctx context.Context, count model.EventCount) (string, error) {
	if w.root == nil {
		return "", errors.New("writer already closed")
	}

	name := Name(count)
	f, err := w.root.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating stat file: %w", err)
	}
	_, err = f.Write(Content(count))
	if err != nil {
		_ = f.Close()
		return "", fmt.Errorf("saving stat file: %w", err)
	}
	err = f.Close()
	if err != nil {
		return "", fmt.Errorf("closing stat file: %w", err)
	}

	path := w.root.Name() + string(os.PathSeparator) + name
	slog.InfoContext(ctx, "stat file saved", "path", path, "events", uint64(count))
	return path, nil
}

func (w *Writer) Close() error {
	if w.root == nil {
		return errors.New("writer already closed")
	}
	err := w.root.Close()
	w.root = nil
	return err
}

// Write is a convenience wrapper writing a single stat file into dir.
func Write(ctx context.Context, dir string, count model.EventCount) (string, error) {
	w, err := NewWriter(dir)
	if err != nil {
		return "", err
	}
	path, err := w.Write(ctx, count)
	return path, errors.Join(err, w.Close())
}
