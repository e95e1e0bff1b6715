package source

import (
	"path/filepath"
	"regexp"
)

// DefaultPrefix is returned by Prefix when the file name carries no
// numeric prefix.
const DefaultPrefix = "graph"

var prefixRe = regexp.MustCompile(`^(\d+)_L1-L2_DB`)

// Prefix returns the numeric prefix of a File A name such as
// "1050400_L1-L2_DB.txt". Cache keys and output names derive from it.
func Prefix(path string) string {
	if m := prefixRe.FindStringSubmatch(filepath.Base(path)); m != nil {
		return m[1]
	}
	return DefaultPrefix
}
