package isaac

import (
	"path/filepath"
	"strings"
)

// maxNameLen is the filename length (not counting its directory) that
// NormalizeIdentifier truncates to.
const maxNameLen = 32

// NormalizeIdentifier mirrors the original generator's getValidFile: a bare
// filename is anchored to the current directory, and the final path
// component is truncated to maxNameLen bytes so that encrypted state files
// never trip length limits imposed by the filesystem.
func NormalizeIdentifier(path string) string {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "." + string(filepath.Separator)
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return strings.TrimSuffix(dir, string(filepath.Separator)) + string(filepath.Separator) + name
}
