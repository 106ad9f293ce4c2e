package bacon

import (
	"fmt"

	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/decibelcooper/zllplot/ntuple"
)

// Part selects which collections of an event are read.
type Part uint8

const (
	PartInfo Part = 1 << iota
	PartGen
	PartGenParticles
	PartElectrons
	PartVertices

	PartAll = PartInfo | PartGen | PartGenParticles | PartElectrons | PartVertices
)

// File is an open Bacon ntuple.
type File struct {
	path   string
	f      *riofs.File
	tree   rtree.Tree
	hasGen bool
}

// Open opens the Events tree of a Bacon ntuple.
func Open(path string) (*File, error) {
	f, tree, err := ntuple.OpenTree(path, ntuple.TreeName)
	if err != nil {
		return nil, err
	}

	return &File{
		path:   path,
		f:      f,
		tree:   tree,
		hasGen: tree.Branch("GenEvtInfo_weight") != nil,
	}, nil
}

func (f *File) Path() string { return f.path }

// HasGen reports whether the file carries generator information.
func (f *File) HasGen() bool { return f.hasGen }

func (f *File) Entries() int64 { return f.tree.Entries() }

func (f *File) Close() error { return f.f.Close() }

// Scan reads every entry and calls fn with the requested parts filled in.
// Generator parts are silently skipped for files without generator
// information. The event buffer is reused across calls.
func (f *File) Scan(parts Part, fn func(entry int64, ev *Event) error) error {
	return f.ScanRange(parts, 0, f.Entries(), fn)
}

// ScanRange is Scan restricted to the entries [beg, end).
func (f *File) ScanRange(parts Part, beg, end int64, fn func(entry int64, ev *Event) error) error {
	if end > f.Entries() {
		end = f.Entries()
	}
	if beg >= end {
		return nil
	}

	ev := new(Event)
	r, err := rtree.NewReader(f.tree, f.readVars(parts, ev), rtree.WithRange(beg, end))
	if err != nil {
		return fmt.Errorf("could not create reader for %q: %w", f.path, err)
	}
	defer r.Close()

	return r.Read(func(ctx rtree.RCtx) error {
		return fn(ctx.Entry, ev)
	})
}

func (f *File) readVars(parts Part, ev *Event) []rtree.ReadVar {
	var rvars []rtree.ReadVar
	if parts&PartInfo != 0 {
		rvars = append(rvars, ntuple.ReadVars(&ev.Info)...)
	}
	if parts&PartGen != 0 && f.hasGen {
		rvars = append(rvars, ntuple.ReadVars(&ev.Gen)...)
	}
	if parts&PartGenParticles != 0 && f.hasGen {
		rvars = append(rvars, ntuple.ReadVars(&ev.GenParticles)...)
	}
	if parts&PartElectrons != 0 {
		rvars = append(rvars, ntuple.ReadVars(&ev.Electrons)...)
	}
	if parts&PartVertices != 0 {
		rvars = append(rvars, ntuple.ReadVars(&ev.PV)...)
	}
	return rvars
}

// Writer produces files in the same layout, for skims and fixtures.
type Writer struct {
	f   *riofs.File
	w   rtree.Writer
	buf Event
}

// NewWriter creates a Bacon ntuple at path. Generator columns are only
// written when withGen is set.
func NewWriter(path string, withGen bool) (*Writer, error) {
	f, err := ntuple.Create(path)
	if err != nil {
		return nil, err
	}

	w := &Writer{f: f}
	wvars := ntuple.WriteVars(&w.buf.Info)
	if withGen {
		wvars = append(wvars, ntuple.WriteVars(&w.buf.Gen)...)
		wvars = append(wvars, ntuple.WriteVars(&w.buf.GenParticles)...)
	}
	wvars = append(wvars, ntuple.WriteVars(&w.buf.Electrons)...)
	wvars = append(wvars, ntuple.WriteVars(&w.buf.PV)...)

	w.w, err = rtree.NewWriter(f, ntuple.TreeName, wvars, rtree.WithTitle(ntuple.TreeName))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("could not create tree in %q: %w", path, err)
	}
	return w, nil
}

// Write appends ev as a new entry.
func (w *Writer) Write(ev *Event) error {
	w.buf = *ev
	w.buf.Gen.NLHEWeight = int32(len(ev.Gen.LHEWeight))
	w.buf.GenParticles.N = int32(ev.GenParticles.Len())
	w.buf.Electrons.N = int32(ev.Electrons.Len())

	_, err := w.w.Write()
	return err
}

func (w *Writer) Close() error {
	if err := w.w.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("could not close tree: %w", err)
	}
	return w.f.Close()
}
