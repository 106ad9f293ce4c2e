package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/zllplot/gen"
)

func TestMatches(t *testing.T) {
	var r Row
	r.setGenLep1(gen.Kinematics{Pt: 40, Eta: 0.5, Phi: 1, M: 0.000511})
	r.setGenLep2(gen.Kinematics{Pt: 35, Eta: -1.2, Phi: -2, M: 0.000511})
	r.setLep1(gen.Kinematics{Pt: 36, Eta: -1.21, Phi: -2.01, M: 0.000511})
	r.setLep2(gen.Kinematics{Pt: 20, Eta: 2.0, Phi: 1, M: 0.000511})

	ms := r.Matches(0.3)
	require.Len(t, ms, 2)

	assert.False(t, ms[0].Found)
	assert.Equal(t, 40.0, ms[0].Gen.Pt)

	assert.True(t, ms[1].Found)
	assert.Equal(t, 36.0, ms[1].Reco.Pt)
	assert.Equal(t, -1.2, ms[1].Gen.Eta)
}

func TestMatchesSkipsMissingGen(t *testing.T) {
	var r Row
	r.setGenLep2(gen.Kinematics{Pt: 30, Eta: 0.1, Phi: 0.2, M: 0.000511})
	r.setLep1(gen.Kinematics{Pt: 31, Eta: 0.1, Phi: 0.2, M: 0.000511})

	ms := r.Matches(0.3)
	require.Len(t, ms, 1)
	assert.True(t, ms[0].Found)
	assert.Equal(t, 31.0, ms[0].Reco.Pt)

	assert.Empty(t, (&Row{}).Matches(0.3))
}
