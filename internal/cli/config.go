package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// Version is the library version, set at link time with
// -ldflags "-X github.com/amstokely/fortest/internal/cli.Version=...".
var Version = "dev"

// PrefixEnvVar overrides the detected installation prefix.
const PrefixEnvVar = "FORTEST_PREFIX"

// InstallInfo describes where the fortest library is installed.
type InstallInfo struct {
	Version     string `json:"version"`
	Prefix      string `json:"prefix"`
	IncludeDir  string `json:"include_dir"`
	ModDir      string `json:"module_dir"`
	LibDir      string `json:"library_dir"`
	CMakePrefix string `json:"cmake_prefix"`
	Libs        string `json:"libs"`
}

// InstallFrom lays out the standard directories under prefix.
func InstallFrom(prefix string) InstallInfo {
	libDir := filepath.Join(prefix, "lib")
	return InstallInfo{
		Version:     Version,
		Prefix:      prefix,
		IncludeDir:  filepath.Join(prefix, "include"),
		ModDir:      filepath.Join(prefix, "include", "fortest"),
		LibDir:      libDir,
		CMakePrefix: filepath.Join(libDir, "cmake", "fortest"),
		Libs:        fmt.Sprintf("-L%s -lfortest", libDir),
	}
}

// DetectInstall uses $FORTEST_PREFIX, or the parent of the directory
// holding the running executable.
func DetectInstall() (InstallInfo, error) {
	if prefix := os.Getenv(PrefixEnvVar); prefix != "" {
		return InstallFrom(prefix), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return InstallInfo{}, fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return InstallFrom(filepath.Dir(filepath.Dir(exe))), nil
}

// String renders the --all listing.
func (i InstallInfo) String() string {
	var b strings.Builder
	b.WriteString("Fortest configuration:\n")
	fmt.Fprintf(&b, "  version:       %s\n", i.Version)
	fmt.Fprintf(&b, "  prefix:        %s\n", i.Prefix)
	fmt.Fprintf(&b, "  include dir:   %s\n", i.IncludeDir)
	fmt.Fprintf(&b, "  module dir:    %s\n", i.ModDir)
	fmt.Fprintf(&b, "  library dir:   %s\n", i.LibDir)
	fmt.Fprintf(&b, "  cmake prefix:  %s\n", i.CMakePrefix)
	fmt.Fprintf(&b, "  libs:          %s", i.Libs)
	return b.String()
}

// configField is one single-value option of the config command.
type configField struct {
	flag  string
	usage string
	key   string
	value func(InstallInfo) string
}

var configFields = []configField{
	{"prefix", "installation prefix", "prefix", func(i InstallInfo) string { return i.Prefix }},
	{"includedir", "C include directory", "include_dir", func(i InstallInfo) string { return i.IncludeDir }},
	{"moddir", "Fortran module directory", "module_dir", func(i InstallInfo) string { return i.ModDir }},
	{"libdir", "library directory", "library_dir", func(i InstallInfo) string { return i.LibDir }},
	{"cmake-prefix", "CMake package config directory", "cmake_prefix", func(i InstallInfo) string { return i.CMakePrefix }},
	{"libs", "link flags for fortest (-L... -lfortest)", "libs", func(i InstallInfo) string { return i.Libs }},
	{"version", "fortest version", "version", func(i InstallInfo) string { return i.Version }},
}

// ConfigOptions holds flags for the config command.
type ConfigOptions struct {
	*RootOptions
	All      bool
	Selected map[string]*bool

	detect func() (InstallInfo, error)
}

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return newConfigCommand(rootOpts, DetectInstall)
}

func newConfigCommand(rootOpts *RootOptions, detect func() (InstallInfo, error)) *cobra.Command {
	opts := &ConfigOptions{
		RootOptions: rootOpts,
		Selected:    make(map[string]*bool),
		detect:      detect,
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print installation paths and link flags",
		Long: `Print where the fortest library is installed.

Pass exactly one option to print a single value, or --all for everything.
Intended for build scripts, e.g. $(fortest config --libs).

Exit codes:
  0 - Value printed
  1 - No option given
  2 - Command error (more than one option, etc.)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(opts, cmd)
		},
	}

	for _, f := range configFields {
		opts.Selected[f.flag] = cmd.Flags().Bool(f.flag, false, f.usage)
	}
	cmd.Flags().BoolVar(&opts.All, "all", false, "print all configuration information")

	return cmd
}

func runConfig(opts *ConfigOptions, cmd *cobra.Command) error {
	var chosen []configField
	for _, f := range configFields {
		if *opts.Selected[f.flag] {
			chosen = append(chosen, f)
		}
	}
	if opts.All && len(chosen) > 0 || len(chosen) > 1 {
		return NewExitError(ExitCommandError, "config accepts a single option")
	}
	if !opts.All && len(chosen) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cmd.UsageString())
		return NewExitError(ExitFailure, "no option given")
	}

	info, err := opts.detect()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to detect installation", err)
	}

	out := newFormatter(opts.RootOptions, cmd)
	out.VerboseLog("installation prefix: %s", info.Prefix)
	if opts.All {
		if out.JSON() {
			return out.Success(info)
		}
		return out.Success(info.String())
	}

	field := chosen[0]
	if out.JSON() {
		return out.Success(map[string]string{field.key: field.value(info)})
	}
	return out.Success(field.value(info))
}
