// Package ntuple holds the ROOT file plumbing shared by the selection,
// flattening and closure tools: opening trees, binding row structs to
// branches and reading reweighting histograms.
package ntuple

import (
	"fmt"
	"os"
	"path/filepath"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/rootcnv"
)

// TreeName is the name of the event tree in every file we read or write.
const TreeName = "Events"

// OpenTree opens the ROOT file at path and retrieves the named tree.
// The caller owns the returned file.
func OpenTree(path, name string) (*riofs.File, rtree.Tree, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, nil, &ErrOpenFile{Path: path, Err: err}
	}

	obj, err := f.Get(name)
	if err != nil {
		f.Close()
		return nil, nil, &ErrMissingObject{Path: path, Name: name, Err: err}
	}

	tree, ok := obj.(rtree.Tree)
	if !ok {
		f.Close()
		return nil, nil, &ErrMissingObject{Path: path, Name: name, Err: fmt.Errorf("object is a %T, not a tree", obj)}
	}

	return f, tree, nil
}

// Create creates a ROOT file, making the parent directories if needed.
func Create(path string) (*riofs.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &ErrOpenFile{Path: path, Err: err}
		}
	}

	f, err := groot.Create(path)
	if err != nil {
		return nil, &ErrOpenFile{Path: path, Err: err}
	}
	return f, nil
}

// ReadH1D retrieves a 1D histogram from an open file.
func ReadH1D(f *riofs.File, name string) (*hbook.H1D, error) {
	obj, err := f.Get(name)
	if err != nil {
		return nil, &ErrMissingObject{Path: f.Name(), Name: name, Err: err}
	}

	h1, ok := obj.(rhist.H1)
	if !ok {
		return nil, &ErrMissingObject{Path: f.Name(), Name: name, Err: fmt.Errorf("object is a %T, not a 1D histogram", obj)}
	}

	return rootcnv.H1D(h1), nil
}

// LoadH1Ds opens path and reads every named histogram from it.
func LoadH1Ds(path string, names ...string) ([]*hbook.H1D, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, &ErrOpenFile{Path: path, Err: err}
	}
	defer f.Close()

	hists := make([]*hbook.H1D, len(names))
	for i, name := range names {
		hists[i], err = ReadH1D(f, name)
		if err != nil {
			return nil, err
		}
	}
	return hists, nil
}

// SaveH1Ds writes the histograms to a new ROOT file under the given keys.
func SaveH1Ds(path string, hists map[string]*hbook.H1D) error {
	f, err := Create(path)
	if err != nil {
		return err
	}

	for name, h := range hists {
		if err := f.Put(name, rhist.NewH1DFrom(h)); err != nil {
			f.Close()
			return fmt.Errorf("could not write %q to %q: %w", name, path, err)
		}
	}
	return f.Close()
}
