package artifact

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// SourceExt is the extension every schema source must carry.
	SourceExt = ".proto"

	// ArtifactExt is the extension of compiled descriptor sets.
	ArtifactExt = ".pb"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces name to a safe base name: directories are
// dropped, whitespace becomes '_' and characters outside [A-Za-z0-9_.-] are
// removed. The result must still end in ".proto".
func SanitizeFilename(name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(strings.TrimSpace(name))
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, "._")

	if !strings.HasSuffix(name, SourceExt) || len(name) == len(SourceExt) {
		return "", ErrInvalidFilename
	}
	return name, nil
}

// ArtifactName maps a source filename onto its artifact object name:
// "users.proto" becomes "users.pb".
func ArtifactName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ArtifactExt
}

// SourceName is the inverse of ArtifactName.
func SourceName(artifact string) string {
	return strings.TrimSuffix(artifact, ArtifactExt) + SourceExt
}
