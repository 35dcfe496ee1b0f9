package imageio

import (
	"bytes"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/tintstack/tintstack/pkg/errors"
)

// Writer persists a final image. It is invoked at most once per
// successful render, only after compositing fully succeeds, so a failed
// render never leaves a partial output file behind.
type Writer interface {
	// Write encodes img in the given format and persists it at path.
	Write(img *image.NRGBA, format, path string) error

	// WriteBytes persists already-encoded bytes at path. Used when the
	// encoded output comes from the render cache.
	WriteBytes(data []byte, path string) error
}

// FileWriter writes images to the filesystem atomically: the encoded
// bytes go to a uniquely-named temp file in the destination directory,
// which is renamed into place only after a complete write.
type FileWriter struct{}

// NewFileWriter creates a filesystem-backed writer.
func NewFileWriter() *FileWriter {
	return &FileWriter{}
}

// Write encodes img in the given format and writes it to path.
// All failures surface as OUTPUT_WRITE_ERROR (or INVALID_FORMAT for an
// unknown format identifier).
func (w *FileWriter) Write(img *image.NRGBA, format, path string) error {
	data, err := Encode(img, format)
	if err != nil {
		return err
	}
	return w.WriteBytes(data, path)
}

// WriteBytes writes pre-encoded bytes to path using the same
// temp-file-and-rename scheme as Write.
func (w *FileWriter) WriteBytes(data []byte, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "creating output directory %s", dir)
	}

	// Temp file in the same directory so the rename is atomic on the
	// same filesystem.
	tmp := filepath.Join(dir, ".tintstack-"+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "writing %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "finalizing %s", path)
	}
	return nil
}

// Encode serializes img in the named format and returns the bytes.
func Encode(img *image.NRGBA, format string) ([]byte, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutputWrite, err, "encoding %s", format)
	}
	return buf.Bytes(), nil
}

var _ Writer = (*FileWriter)(nil)
