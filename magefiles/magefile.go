//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

var commands = []string{
	"makeflat",
	"selectzeegen",
	"muscaleclosure",
	"dilepmass",
	"eleres",
	"eleeff",
	"eoverp",
	"bosonpt",
	"fsrloss",
}

// Build compiles every command into ./bin.
func Build() error {
	mg.Deps(BuildAnalysis, BuildPlots)
	fmt.Println("Compilation finished")
	return nil
}

// BuildAnalysis compiles the ntuple producers and the closure test.
func BuildAnalysis() error {
	for _, name := range commands[:3] {
		if err := build(name); err != nil {
			return err
		}
	}
	return nil
}

// BuildPlots compiles the plotting commands.
func BuildPlots() error {
	for _, name := range commands[3:] {
		if err := build(name); err != nil {
			return err
		}
	}
	return nil
}

func build(name string) error {
	fmt.Printf("Building %s executable...\n", name)
	return sh.RunWith(map[string]string{"CGO_ENABLED": "0"}, "go", "build", "-o", "./bin/"+name, "./"+name)
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Clean removes the built executables.
func Clean() error {
	return sh.Rm("bin")
}
