// Package corr applies lepton momentum scale and resolution corrections
// binned in |η|.
package corr

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"gonum.org/v1/gonum/stat/distuv"
	"gopkg.in/yaml.v3"
)

// Table is a scale and resolution correction binned in |η|. Eta holds the
// bin edges, Scale and Resolution one value per bin.
type Table struct {
	Eta        []float64 `yaml:"eta"`
	Scale      []float64 `yaml:"scale"`
	Resolution []float64 `yaml:"resolution"`
}

// Tables is the content of a correction file.
type Tables struct {
	Muon     Table `yaml:"muon"`
	Electron Table `yaml:"electron"`
}

// DefaultMuon leaves muons untouched.
func DefaultMuon() Table {
	return Table{
		Eta:        []float64{0, 2.4},
		Scale:      []float64{1},
		Resolution: []float64{0},
	}
}

// DefaultElectron is the 2015 50ns electron energy scale.
func DefaultElectron() Table {
	return Table{
		Eta:        []float64{0, 1.4442, 2.5},
		Scale:      []float64{0.992, 1.009},
		Resolution: []float64{0, 0},
	}
}

func Defaults() Tables {
	return Tables{Muon: DefaultMuon(), Electron: DefaultElectron()}
}

// Load reads correction tables from a YAML file. Sections absent from the
// file keep their defaults.
func Load(path string) (Tables, error) {
	tabs := Defaults()

	raw, err := os.ReadFile(path)
	if err != nil {
		return tabs, fmt.Errorf("could not read corrections: %w", err)
	}

	var file struct {
		Muon     *Table `yaml:"muon"`
		Electron *Table `yaml:"electron"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return tabs, fmt.Errorf("could not decode corrections %q: %w", path, err)
	}

	if file.Muon != nil {
		if err := file.Muon.Validate(); err != nil {
			return tabs, fmt.Errorf("invalid muon corrections in %q: %w", path, err)
		}
		tabs.Muon = *file.Muon
	}
	if file.Electron != nil {
		if err := file.Electron.Validate(); err != nil {
			return tabs, fmt.Errorf("invalid electron corrections in %q: %w", path, err)
		}
		tabs.Electron = *file.Electron
	}
	return tabs, nil
}

// Validate checks that the table has increasing edges and one value per bin.
func (t Table) Validate() error {
	nbins := len(t.Eta) - 1
	if nbins < 1 {
		return fmt.Errorf("need at least two eta edges, got %d", len(t.Eta))
	}
	for i := 1; i < len(t.Eta); i++ {
		if t.Eta[i] <= t.Eta[i-1] {
			return fmt.Errorf("eta edges not increasing at %d", i)
		}
	}
	if len(t.Scale) != nbins {
		return fmt.Errorf("%d scale values for %d bins", len(t.Scale), nbins)
	}
	if len(t.Resolution) != nbins {
		return fmt.Errorf("%d resolution values for %d bins", len(t.Resolution), nbins)
	}
	return nil
}

// bin returns the bin of |eta|. Values past the last edge use the last bin.
func (t Table) bin(eta float64) int {
	aeta := math.Abs(eta)
	for i := 1; i < len(t.Eta)-1; i++ {
		if aeta < t.Eta[i] {
			return i - 1
		}
	}
	return len(t.Eta) - 2
}

func (t Table) ScaleAt(eta float64) float64 {
	return t.Scale[t.bin(eta)]
}

func (t Table) ResolutionAt(eta float64) float64 {
	return t.Resolution[t.bin(eta)]
}

// Smearer draws corrected transverse momenta.
type Smearer struct {
	tab Table
	src rand.Source
}

// NewSmearer returns a smearer with its own generator, so that a given seed
// always yields the same sequence.
func NewSmearer(tab Table, seed uint64) *Smearer {
	return &Smearer{tab: tab, src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
}

// Pt draws from a Gaussian centred on pt times the scale at eta, with the
// resolution at eta as width.
func (s *Smearer) Pt(pt, eta float64) float64 {
	mu := pt * s.tab.ScaleAt(eta)
	sigma := s.tab.ResolutionAt(eta)
	if sigma <= 0 {
		return mu
	}
	g := distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}
	return g.Rand()
}
