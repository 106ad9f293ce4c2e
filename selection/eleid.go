package selection

import (
	"math"

	"github.com/decibelcooper/zllplot/bacon"
)

// EBEtaMax is the |ηSC| boundary between the barrel and endcap cut sets.
const EBEtaMax = 1.479

// medium holds one column of the cut-based medium working point.
type medium struct {
	sieie          float64
	dEtaIn, dPhiIn float64
	hOverE         float64
	relIso         float64
	ooemoop        float64
	d0, dz         float64
	missingHits    int32
}

var (
	mediumEB = medium{
		sieie:       0.0101,
		dEtaIn:      0.0103,
		dPhiIn:      0.0336,
		hOverE:      0.0876,
		relIso:      0.0766,
		ooemoop:     0.0174,
		d0:          0.0118,
		dz:          0.373,
		missingHits: 2,
	}
	mediumEE = medium{
		sieie:       0.0283,
		dEtaIn:      0.00733,
		dPhiIn:      0.114,
		hOverE:      0.0678,
		relIso:      0.0678,
		ooemoop:     0.0898,
		d0:          0.0739,
		dz:          0.602,
		missingHits: 1,
	}
)

// effective areas for the pileup correction of the neutral isolation
var effAreas = []struct {
	etaMax, area float64
}{
	{1.0, 0.1752},
	{1.479, 0.1862},
	{2.0, 0.1411},
	{2.2, 0.1534},
	{2.3, 0.1903},
	{2.4, 0.2243},
	{math.Inf(1), 0.2687},
}

// EffArea returns the effective area at supercluster pseudorapidity eta.
func EffArea(eta float64) float64 {
	aeta := math.Abs(eta)
	for _, ea := range effAreas {
		if aeta < ea.etaMax {
			return ea.area
		}
	}
	return effAreas[len(effAreas)-1].area
}

// RelIso is the particle-flow isolation, corrected for pileup with the
// event energy density rho, relative to the electron pT.
func RelIso(el *bacon.Electron, rho float64) float64 {
	neutral := el.NeuHadIso + el.GammaIso - rho*EffArea(el.ScEta)
	iso := el.ChHadIso + math.Max(neutral, 0)
	return iso / el.Pt
}

// PassEleID applies the medium cut-based identification.
func PassEleID(el *bacon.Electron, rho float64) bool {
	if el.TypeBits&bacon.EleTypeEcalDriven == 0 {
		return false
	}
	if el.IsConv {
		return false
	}
	if el.Pt <= 0 {
		return false
	}

	wp := mediumEE
	if math.Abs(el.ScEta) <= EBEtaMax {
		wp = mediumEB
	}

	switch {
	case el.Sieie >= wp.sieie:
		return false
	case math.Abs(el.DEtaIn) >= wp.dEtaIn:
		return false
	case math.Abs(el.DPhiIn) >= wp.dPhiIn:
		return false
	case el.HOverE >= wp.hOverE:
		return false
	case RelIso(el, rho) >= wp.relIso:
		return false
	case el.EcalEnergy <= 0 || math.Abs(1-el.EOverP)/el.EcalEnergy >= wp.ooemoop:
		return false
	case math.Abs(el.D0) >= wp.d0:
		return false
	case math.Abs(el.Dz) >= wp.dz:
		return false
	case el.NMissingHits > wp.missingHits:
		return false
	}
	return true
}
