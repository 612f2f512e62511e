package utils

import (
	"path/filepath"

	"github.com/google/uuid"
)

// TempSibling returns a fresh, hidden file name next to path:
// dir/.name.<uuid>.tmp. Keeping it in the same directory lets the final
// rename stay on one filesystem.
func TempSibling(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, "."+name+"."+uuid.NewString()+".tmp")
}
