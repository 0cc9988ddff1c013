package registry

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"lorad/internal/common/fsutil"
	"lorad/pkg/types"
)

// modelExts are the checkpoint file extensions picked up by a scan.
var modelExts = []string{".safetensors", ".ckpt", ".pt"}

// Scanner discovers checkpoint files under one or more roots and turns them
// into merge-engine seeds. Walk order is lexical per directory, so two scans
// of an unchanged tree always yield the same seed order.
type Scanner struct{}

func NewScanner() *Scanner { return &Scanner{} }

// Scan walks a single root. The root may start with '~'.
func (s *Scanner) Scan(root string) ([]types.Seed, error) {
	base, err := fsutil.ExpandHome(root)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	var seeds []types.Seed
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isModelFile(d.Name()) {
			return nil
		}
		seeds = append(seeds, s.seedFor(abs, path, d))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", abs, err)
	}
	return seeds, nil
}

// ScanAll walks every root in order and concatenates the results. The
// returned slice is never nil: an empty tree is a valid, empty seed sequence.
func (s *Scanner) ScanAll(roots []string) ([]types.Seed, error) {
	all := []types.Seed{}
	for _, root := range roots {
		seeds, err := s.Scan(root)
		if err != nil {
			return nil, err
		}
		all = append(all, seeds...)
	}
	return all, nil
}

// seedFor builds the Seed for one discovered checkpoint file, merging in
// sidecar metadata when present.
func (s *Scanner) seedFor(root, path string, d fs.DirEntry) types.Seed {
	name := d.Name()
	m := types.Model{
		Name:     trimModelExt(name),
		FileName: name,
		Path:     path,
	}
	if fi, err := d.Info(); err == nil {
		m.SizeBytes = fi.Size()
	}
	if info, ok := readSidecar(path); ok {
		if id := info.ModelID.String(); id != "" {
			m.ModelID = id
		}
		if info.Model.Name != "" {
			m.Name = info.Model.Name
		}
		m.VersionName = info.Name
		m.BaseModel = info.BaseModel
		if len(info.Files) > 0 && info.Files[0].Name != "" {
			m.FileName = info.Files[0].Name
		}
	}
	segments := fsutil.RelSegments(root, path)
	return types.Seed{
		Model:        m,
		SourcePath:   root,
		FolderPath:   filepath.Dir(path),
		TreePath:     strings.Join(segments, "/"),
		TreeSegments: segments,
	}
}

func isModelFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range modelExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// LoadRoots is a convenience wrapper over NewScanner().ScanAll.
func LoadRoots(roots []string) ([]types.Seed, error) {
	return NewScanner().ScanAll(roots)
}
