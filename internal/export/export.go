// Package export writes generated images to files or standard output.
package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"cogentcore.org/core/base/iox/imagex"
)

// DefaultSnapshotName is the file name used for snapshots when none is given.
const DefaultSnapshotName = "planet.png"

// ErrTerminal is returned when output would go to an interactive terminal.
var ErrTerminal = errors.New("didn't specify output file and standard output is a terminal")

var (
	stdout           io.Writer = os.Stdout
	stdoutIsTerminal           = func() bool {
		stat, err := os.Stdout.Stat()
		return err == nil && stat.Mode()&os.ModeCharDevice != 0
	}
)

// CheckStdout fails with ErrTerminal when path is empty and standard
// output is a terminal. Call it before doing expensive work.
func CheckStdout(path string) error {
	if path == "" && stdoutIsTerminal() {
		return ErrTerminal
	}
	return nil
}

// Format returns the image format for path. An empty path means PNG on
// standard output.
func Format(path string) (imagex.Formats, error) {
	if path == "" {
		return imagex.PNG, nil
	}
	f, err := imagex.ExtToFormat(filepath.Ext(path))
	if err != nil {
		return imagex.None, fmt.Errorf("output %s: %w", path, err)
	}
	return f, nil
}

// WriteImage encodes img to path in the format its extension names. An
// empty path writes PNG to standard output.
func WriteImage(path string, img image.Image) error {
	if path == "" {
		if err := CheckStdout(path); err != nil {
			return err
		}
		slog.Info("writing image", "output", "stdout")
		return imagex.Write(img, stdout, imagex.PNG)
	}
	if _, err := Format(path); err != nil {
		return err
	}
	slog.Info("writing image", "output", path)
	if err := imagex.Save(img, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteEncoded writes already encoded PNG bytes to path, or to standard
// output when path is empty. Paths with another image extension are
// re-encoded.
func WriteEncoded(path string, png []byte, img image.Image) error {
	f, err := Format(path)
	if err != nil {
		return err
	}
	if f != imagex.PNG {
		return WriteImage(path, img)
	}

	var out io.Writer = stdout
	if path == "" {
		if err := CheckStdout(path); err != nil {
			return err
		}
		slog.Info("writing image", "output", "stdout")
	} else {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
		slog.Info("writing image", "output", path)
	}
	if _, err := out.Write(png); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}
