package patch

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"softpatch/log"
)

// ErrNotFound is returned by a Resolver when no patch exists for a location.
// It is a normal outcome: most games are not patched.
var ErrNotFound = errors.New("no patch found")

// A Resolver finds the patch of a given format associated with a game
// location and returns its content.
type Resolver interface {
	Resolve(location string, format Format) ([]byte, error)
}

// FSResolver finds patches the way emulator front-ends look for soft patches:
//
//   - a game directory holds its patch as "patch.ips" or "patch.bps";
//   - a game archive holds its patch as its first member with the format
//     extension;
//   - otherwise the patch is named after the game and lives in PatchDir.
type FSResolver struct {
	Fs afero.Fs

	// PatchDir holds patches named after their game. When empty the
	// directory of the game is used.
	PatchDir string
}

// NewFSResolver returns a resolver on the host filesystem.
func NewFSResolver(patchDir string) *FSResolver {
	return &FSResolver{Fs: afero.NewOsFs(), PatchDir: patchDir}
}

func (r *FSResolver) Resolve(location string, format Format) ([]byte, error) {
	if isDir, _ := afero.IsDir(r.Fs, location); isDir {
		return r.read(filepath.Join(location, format.Base()))
	}

	if IsArchive(location) {
		data, err := readArchiveMember(r.Fs, location, format.Ext())
		if err == nil && len(data) > 0 {
			return data, nil
		}
		log.ModPatch.DebugZ("no patch in archive").String("archive", location).Error("err", err).End()
	}

	return r.read(r.Conventional(location, format))
}

// Conventional returns the path where the patch for location is expected
// when it is neither a directory nor an archive holding it.
func (r *FSResolver) Conventional(location string, format Format) string {
	dir := r.PatchDir
	if dir == "" {
		dir = filepath.Dir(location)
	}
	base := filepath.Base(location)
	return filepath.Join(dir, base[:len(base)-len(filepath.Ext(base))]+format.Ext())
}

func (r *FSResolver) read(path string) ([]byte, error) {
	data, err := afero.ReadFile(r.Fs, path)
	if errors.Is(err, fs.ErrNotExist) || err == nil && len(data) == 0 {
		log.ModPatch.DebugZ("no patch").String("path", path).End()
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	log.ModPatch.DebugZ("patch found").String("path", path).Int("size", len(data)).End()
	return data, nil
}
