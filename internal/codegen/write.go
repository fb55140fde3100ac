package codegen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// filePerm is the mode of written files.
const filePerm = 0o644

// IOError reports a failure to persist rendered output.
type IOError struct {
	Op   string // "create", "write" or "rename"
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOError reports whether err is (or wraps) an *IOError.
func IsIOError(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}

// WriteFile renders the job and writes the result to path.
//
// The text goes to a temporary file in the same directory which is then
// renamed over path; on failure the temporary file is removed and path is
// left untouched.
func (j *Job) WriteFile(path string) error {
	text, err := j.Text()
	if err != nil {
		return err
	}
	if err := writeAtomic(path, []byte(text)); err != nil {
		return err
	}
	j.logger.Info("output written", "lang", string(j.lang), "path", path, "bytes", len(text))
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
