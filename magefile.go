//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	modulePath = "github.com/amstokely/fortest"
	binDir     = "bin"
	libDir     = "lib"
)

// Default target - build the library and the CLI
var Default = Build

// Build builds libfortest and the fortest CLI
func Build() {
	mg.Deps(Lib, CLI)
}

// Lib builds the C shared library and its generated header
func Lib() error {
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		return err
	}
	out := filepath.Join(libDir, sharedLibName())
	env := map[string]string{"CGO_ENABLED": "1"}
	if err := sh.RunWithV(env, "go", "build", "-buildmode=c-shared", "-o", out, "./cmd/libfortest"); err != nil {
		return fmt.Errorf("building %s: %w", out, err)
	}
	fmt.Printf("Built: %s\n", out)
	return nil
}

// CLI builds the fortest command with the version stamped in
func CLI() error {
	ldflags := fmt.Sprintf("-s -w -X '%s/internal/cli.Version=%s'", modulePath, gitVersion())
	out := filepath.Join(binDir, "fortest")
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, "./cmd/fortest"); err != nil {
		return fmt.Errorf("building %s: %w", out, err)
	}
	fmt.Printf("Built: %s\n", out)
	return nil
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Clean removes build artifacts
func Clean() error {
	for _, dir := range []string{binDir, libDir} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}

func sharedLibName() string {
	switch runtime.GOOS {
	case "darwin":
		return "libfortest.dylib"
	case "windows":
		return "fortest.dll"
	default:
		return "libfortest.so"
	}
}

func gitVersion() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty", "--match=v*")
	if err != nil {
		return "dev"
	}
	return strings.TrimSpace(out)
}
