package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// missingMarker stands in for the content hash of an input that no longer exists,
// so that deleting an input changes the fingerprint instead of failing it.
const missingMarker = "\x00missing\x00"

// Hasher provides hashing functionality for build configurations and files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeInputHash computes a single hash representing the configuration and
// the content of every input file. Input order does not matter.
func (h *Hasher) ComputeInputHash(cfg domain.BuildConfig, inputs []string) (string, error) {
	hasher := xxhash.New()

	h.hashConfig(cfg, hasher)

	sorted := slices.Clone(inputs)
	slices.Sort(sorted)
	for _, input := range slices.Compact(sorted) {
		if err := h.hashFile(input, hasher); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// ComputeOutputHash computes the hash of a generated bundle.
func (h *Hasher) ComputeOutputHash(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", zerr.With(zerr.Wrap(iofs.ErrNotExist, "output file missing"), "path", path)
		}
		return "", zerr.With(zerr.Wrap(err, "failed to stat output file"), "path", path)
	}

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", hash), nil
}

// hashConfig hashes every field of the configuration in a fixed order.
func (h *Hasher) hashConfig(cfg domain.BuildConfig, hasher *xxhash.Digest) {
	fields := []string{
		string(cfg.Mode),
		cfg.Entry,
		string(cfg.Target),
		cfg.Output.Filename,
		cfg.Output.Path,
		string(cfg.Output.Library.Type),
		fmt.Sprint(cfg.Node.Global),
		fmt.Sprint(cfg.Node.Filename),
		fmt.Sprint(cfg.Node.Dirname),
		fmt.Sprint(cfg.Stats.ErrorDetails),
	}
	for _, field := range fields {
		_, _ = hasher.WriteString(field)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0}) // Section separator
}

func (h *Hasher) hashFile(path string, mainHasher io.Writer) error {
	_, _ = mainHasher.Write([]byte(path))
	_, _ = mainHasher.Write([]byte{0})

	if _, err := os.Stat(path); errors.Is(err, iofs.ErrNotExist) {
		_, _ = mainHasher.Write([]byte(missingMarker))
		return nil
	}

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
