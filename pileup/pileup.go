// Package pileup looks up pileup reweighting factors.
package pileup

import (
	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/zllplot/ntuple"
)

// Histogram names of the golden-JSON reweighting tables.
const (
	Nominal = "h_rw_golden"
	Up      = "h_rw_up_golden"
	Down    = "h_rw_down_golden"

	// NPV is the reconstructed-vertex reweighting table of the closure test.
	NPV = "npv_rw"
)

// Weights holds the nominal and ±1σ reweighting tables, binned in the mean
// number of pileup interactions.
type Weights struct {
	nom, up, down *hbook.H1D
}

// Load reads the three reweighting tables from path. A missing table is
// an error.
func Load(path string) (*Weights, error) {
	hs, err := ntuple.LoadH1Ds(path, Nominal, Up, Down)
	if err != nil {
		return nil, err
	}
	return New(hs[0], hs[1], hs[2]), nil
}

func New(nom, up, down *hbook.H1D) *Weights {
	return &Weights{nom: nom, up: up, down: down}
}

// At returns the weights for a mean pileup of npu. A nil table set
// reweights nothing.
func (w *Weights) At(npu float64) (nom, up, down float64) {
	if w == nil {
		return 1, 1, 1
	}
	return ntuple.FindBinContent(w.nom, npu),
		ntuple.FindBinContent(w.up, npu),
		ntuple.FindBinContent(w.down, npu)
}

// VertexWeights reweights simulation by the number of reconstructed
// vertices.
type VertexWeights struct {
	h *hbook.H1D
}

// LoadVertex reads the npv_rw table from path.
func LoadVertex(path string) (*VertexWeights, error) {
	hs, err := ntuple.LoadH1Ds(path, NPV)
	if err != nil {
		return nil, err
	}
	return &VertexWeights{h: hs[0]}, nil
}

func NewVertex(h *hbook.H1D) *VertexWeights { return &VertexWeights{h: h} }

// At returns the content of bin npv+1: the table has unit-width bins
// starting at zero vertices.
func (w *VertexWeights) At(npv uint32) float64 {
	if w == nil {
		return 1
	}
	return ntuple.BinContent(w.h, int(npv)+1)
}
