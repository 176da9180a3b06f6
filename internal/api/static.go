package api

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const entryDocument = "index.html"

// Frontend serves the built bundle and falls back to the entry document
// for any path that is not a file in the bundle.
type Frontend struct {
	dir string
}

func NewFrontend(dir string) *Frontend {
	return &Frontend{dir: dir}
}

func (f *Frontend) Serve(c *fiber.Ctx) error {
	if file, ok := f.resolve(c.Params("*")); ok {
		return c.SendFile(file)
	}
	return c.SendFile(filepath.Join(f.dir, entryDocument))
}

// resolve maps a request path onto a regular file under dir. The path is
// cleaned against "/" first so it cannot climb out of dir.
func (f *Frontend) resolve(p string) (string, bool) {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "", false
	}
	file := filepath.Join(f.dir, filepath.FromSlash(p))
	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return file, true
}
