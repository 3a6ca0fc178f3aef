package domain

import "path/filepath"

const (
	// PackDirName is the name of the internal workspace directory.
	PackDirName = ".pack"

	// StoreDirName is the name of the build info store directory.
	StoreDirName = "store"

	// StoreFileName is the name of the build info store file.
	StoreFileName = "state.json"

	// EntryRelPath is the entry module location relative to the project root.
	EntryRelPath = "lib/js/src/Handler.js"

	// OutputFileName is the name of the generated bundle.
	OutputFileName = "dist.js"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultPackPath returns the default root directory for pack metadata.
func DefaultPackPath() string {
	return PackDirName
}

// DefaultStorePath returns the default path of the build info store file.
// It joins .pack, store and state.json.
func DefaultStorePath() string {
	return filepath.Join(PackDirName, StoreDirName, StoreFileName)
}
