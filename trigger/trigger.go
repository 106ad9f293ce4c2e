// Package trigger maps trigger names and trigger-object filters to the bit
// positions used in the ntuple trigger words.
package trigger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// MaxBits is the width of the trigger words.
const MaxBits = 64

// Menu is an ordered list of triggers. The n-th trigger owns bit n of the
// event trigger word; the object filters, in order of first appearance,
// own the bits of the object match words.
type Menu struct {
	triggers []string
	filters  []string
}

// Electron triggers of the 2015 50ns menu.
const (
	EleTrigger       = "HLT_Ele23_WPLoose_Gsf_v*"
	EleTriggerObject = "hltEle23WPLooseGsfTrackIsoFilter"
)

const defaultMenu = `
HLT_Ele23_WPLoose_Gsf_v*     hltEle23WPLooseGsfTrackIsoFilter
HLT_IsoMu20_v*               hltL3crIsoL1sMu16L1f0L2f10QL3f20QL3trkIsoFiltered0p09
HLT_Ele27_eta2p1_WPLoose_Gsf_v*  hltEle27WPLooseGsfTrackIsoFilter
`

// DefaultMenu returns the built-in menu.
func DefaultMenu() *Menu {
	m, err := ParseMenu(strings.NewReader(defaultMenu))
	if err != nil {
		panic(err)
	}
	return m
}

// LoadMenu reads the menu file at path. An empty path yields DefaultMenu.
func LoadMenu(path string) (*Menu, error) {
	if path == "" {
		return DefaultMenu(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open trigger menu: %w", err)
	}
	defer f.Close()

	m, err := ParseMenu(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse trigger menu %q: %w", path, err)
	}
	return m, nil
}

// ParseMenu reads one trigger per line, followed by its object filters.
// Lines starting with # are comments.
func ParseMenu(r io.Reader) (*Menu, error) {
	m := &Menu{}
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		m.triggers = append(m.triggers, fields[0])
		for _, filter := range fields[1:] {
			if !seen[filter] {
				seen[filter] = true
				m.filters = append(m.filters, filter)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(m.triggers) > MaxBits {
		return nil, fmt.Errorf("%d triggers do not fit in %d bits", len(m.triggers), MaxBits)
	}
	if len(m.filters) > MaxBits {
		return nil, fmt.Errorf("%d object filters do not fit in %d bits", len(m.filters), MaxBits)
	}
	return m, nil
}

// TriggerBit returns the bit of the trigger matching name. Menu entries
// may be glob patterns such as HLT_Ele23_WPLoose_Gsf_v*.
func (m *Menu) TriggerBit(name string) (int, bool) {
	for i, pattern := range m.triggers {
		if pattern == name {
			return i, true
		}
		if ok, _ := path.Match(pattern, name); ok {
			return i, true
		}
	}
	return -1, false
}

func (m *Menu) FilterBit(filter string) (int, bool) {
	for i, f := range m.filters {
		if f == filter {
			return i, true
		}
	}
	return -1, false
}

// Pass reports whether the event trigger word fired the named trigger.
// Triggers absent from the menu never pass.
func (m *Menu) Pass(name string, bits uint64) bool {
	i, ok := m.TriggerBit(name)
	return ok && bits&(1<<uint(i)) != 0
}

// PassObject reports whether an object match word has the filter bit set.
func (m *Menu) PassObject(filter string, bits uint64) bool {
	i, ok := m.FilterBit(filter)
	return ok && bits&(1<<uint(i)) != 0
}
