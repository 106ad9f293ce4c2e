// Package conf parses sample lists.
//
// A sample list is a text file where
//
//	# starts a comment line
//	$ name color @label     starts a new sample
//	path xsec               adds an input file with its cross section (pb)
//	%                       ends the list
//
// Blank lines are ignored. File lines before the first sample are an error.
package conf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Sample is a named group of input files, e.g. "data" or "zee".
type Sample struct {
	Name  string
	Label string
	Color int
	Files []File
}

// File is one input ntuple. A non-positive cross section disables the
// luminosity normalisation (data).
type File struct {
	Path string
	Xsec float64
}

// Load parses the sample list at path.
func Load(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open sample list: %w", err)
	}
	defer f.Close()

	samples, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", path, err)
	}
	return samples, nil
}

// Parse reads a sample list.
func Parse(r io.Reader) ([]Sample, error) {
	var samples []Sample

	sc := bufio.NewScanner(r)
	for lineno := 1; sc.Scan(); lineno++ {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "%"):
			return samples, nil
		case strings.HasPrefix(line, "$"):
			s, err := parseSample(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			samples = append(samples, s)
		default:
			if len(samples) == 0 {
				return nil, fmt.Errorf("line %d: file %q listed before any sample", lineno, line)
			}
			f, err := parseFile(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			last := &samples[len(samples)-1]
			last.Files = append(last.Files, f)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

func parseSample(line string) (Sample, error) {
	var s Sample
	head := line
	if at := strings.Index(line, "@"); at >= 0 {
		head = line[:at]
		s.Label = strings.TrimSpace(line[at+1:])
	}

	fields := strings.Fields(strings.TrimPrefix(head, "$"))
	if len(fields) == 0 {
		return s, fmt.Errorf("sample without a name")
	}
	s.Name = fields[0]
	if len(fields) > 1 {
		color, err := strconv.Atoi(fields[1])
		if err != nil {
			return s, fmt.Errorf("invalid color %q for sample %q: %w", fields[1], s.Name, err)
		}
		s.Color = color
	}
	if s.Label == "" {
		s.Label = s.Name
	}
	return s, nil
}

func parseFile(line string) (File, error) {
	fields := strings.Fields(line)
	f := File{Path: fields[0], Xsec: -1}
	if len(fields) > 1 {
		xsec, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return f, fmt.Errorf("invalid cross section %q for %q: %w", fields[1], f.Path, err)
		}
		f.Xsec = xsec
	}
	return f, nil
}
