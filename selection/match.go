package selection

import "github.com/decibelcooper/zllplot/gen"

func (r *Row) GenLep1() gen.Kinematics {
	return gen.Kinematics{Pt: r.GenLep1Pt, Eta: r.GenLep1Eta, Phi: r.GenLep1Phi, M: r.GenLep1M}
}

func (r *Row) GenLep2() gen.Kinematics {
	return gen.Kinematics{Pt: r.GenLep2Pt, Eta: r.GenLep2Eta, Phi: r.GenLep2Phi, M: r.GenLep2M}
}

// Match pairs a stored generator lepton with the closest reconstructed
// lepton inside the matching cone.
type Match struct {
	Gen  gen.Kinematics
	Reco gen.Kinematics
	// Found is false when no reconstructed lepton lies inside the cone.
	Found bool
}

// Matches returns one entry per generator lepton stored in the row, that
// is per lepton inside the generator acceptance.
func (r *Row) Matches(cone float64) []Match {
	var (
		out  []Match
		recs = []gen.Kinematics{r.Lep1(), r.Lep2()}
	)
	for _, g := range []gen.Kinematics{r.GenLep1(), r.GenLep2()} {
		if g.Pt <= 0 {
			continue
		}
		gv := gen.PtEtaPhiM(g.Pt, g.Eta, g.Phi, g.M)

		m := Match{Gen: g}
		best := cone
		for _, rec := range recs {
			dr := gen.DeltaR(gv, gen.PtEtaPhiM(rec.Pt, rec.Eta, rec.Phi, rec.M))
			if dr < best {
				best = dr
				m.Reco, m.Found = rec, true
			}
		}
		out = append(out, m)
	}
	return out
}
