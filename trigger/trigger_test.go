package trigger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMenu(t *testing.T) {
	m := DefaultMenu()

	bit, ok := m.TriggerBit(EleTrigger)
	require.True(t, ok)
	assert.Equal(t, 0, bit)

	bit, ok = m.TriggerBit("HLT_IsoMu20_v2")
	require.True(t, ok)
	assert.Equal(t, 1, bit)

	assert.True(t, m.Pass(EleTrigger, 0b001))
	assert.False(t, m.Pass(EleTrigger, 0b010))
	assert.True(t, m.Pass("HLT_Ele27_eta2p1_WPLoose_Gsf_v1", 0b100))
	assert.False(t, m.Pass("HLT_Photon175_v1", ^uint64(0)))

	assert.True(t, m.PassObject(EleTriggerObject, 0b1))
	assert.False(t, m.PassObject(EleTriggerObject, 0b10))
	assert.False(t, m.PassObject("hltUnknown", ^uint64(0)))
}

func TestParseMenuSharedFilters(t *testing.T) {
	m, err := ParseMenu(strings.NewReader(`
# comment
HLT_A_v*  filterA filterB
HLT_B_v*  filterB filterC
`))
	require.NoError(t, err)

	bit, ok := m.FilterBit("filterC")
	require.True(t, ok)
	assert.Equal(t, 2, bit)

	bit, ok = m.TriggerBit("HLT_B_v3")
	require.True(t, ok)
	assert.Equal(t, 1, bit)
}

func TestParseMenuTooManyTriggers(t *testing.T) {
	var sb strings.Builder
	for i := 0; i <= MaxBits; i++ {
		sb.WriteString("HLT_X\n")
	}
	_, err := ParseMenu(strings.NewReader(sb.String()))
	assert.Error(t, err)
}

func TestLoadMenu(t *testing.T) {
	m, err := LoadMenu("")
	require.NoError(t, err)
	assert.True(t, m.Pass(EleTrigger, 1))

	path := filepath.Join(t.TempDir(), "menu")
	require.NoError(t, os.WriteFile(path, []byte("HLT_Mu_v*  hltMu\n"), 0o644))
	m, err = LoadMenu(path)
	require.NoError(t, err)
	assert.False(t, m.Pass(EleTrigger, 1))
	assert.True(t, m.Pass("HLT_Mu_v4", 1))
}
