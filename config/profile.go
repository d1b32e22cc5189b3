package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"symcc/common"

	"github.com/pelletier/go-toml"
)

// Profile is the configuration the compiler runs with: the target parameters
// that drive storage allocation and the output settings of the driver.
type Profile struct {
	// WordSize is the size of a pointer and of the return address slot.
	WordSize int

	// RegisterParams is how many leading parameters are passed in registers.
	RegisterParams int

	// OutputFormat selects the tentative definition emitter: "asm" or "llvm".
	OutputFormat string

	// OutputPath is the file to write output to; empty means stdout.
	OutputPath string

	// Verbose enables the symbol trace and the namespace dumps.
	Verbose bool
}

// tomlProfileFile represents the profile file as it is encoded in TOML
type tomlProfileFile struct {
	Target *tomlTarget `toml:"target"`
	Output *tomlOutput `toml:"output"`
}

type tomlTarget struct {
	WordSize       int  `toml:"word-size"`
	RegisterParams *int `toml:"register-params"`
}

type tomlOutput struct {
	Format  string `toml:"format"`
	Path    string `toml:"path"`
	Verbose bool   `toml:"verbose"`
}

// DefaultProfile returns the profile used in absence of a profile file.
func DefaultProfile() *Profile {
	return &Profile{
		WordSize:       common.DefaultWordSize,
		RegisterParams: common.DefaultRegisterParams,
		OutputFormat:   "asm",
	}
}

// LoadProfile loads the profile file in dir.  If there is no such file, the
// default profile is returned.  Missing sections keep their defaults.
func LoadProfile(dir string) (*Profile, error) {
	buff, err := os.ReadFile(filepath.Join(dir, common.ProfileFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultProfile(), nil
		}

		return nil, err
	}

	return ParseProfile(buff)
}

// ParseProfile decodes and validates the contents of a profile file.
func ParseProfile(buff []byte) (*Profile, error) {
	tpf := &tomlProfileFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, fmt.Errorf("error decoding profile: %s", err.Error())
	}

	prof := DefaultProfile()
	if tpf.Target != nil {
		if tpf.Target.WordSize != 0 {
			prof.WordSize = tpf.Target.WordSize
		}

		if tpf.Target.RegisterParams != nil {
			prof.RegisterParams = *tpf.Target.RegisterParams
		}
	}

	if tpf.Output != nil {
		if tpf.Output.Format != "" {
			prof.OutputFormat = tpf.Output.Format
		}

		prof.OutputPath = tpf.Output.Path
		prof.Verbose = tpf.Output.Verbose
	}

	if err := prof.Validate(); err != nil {
		return nil, err
	}

	return prof, nil
}

// Validate checks that the profile describes a supported configuration.
func (p *Profile) Validate() error {
	if p.WordSize != 4 && p.WordSize != 8 {
		return fmt.Errorf("word size must be 4 or 8, not %d", p.WordSize)
	}

	if p.RegisterParams < 0 {
		return errors.New("register parameter count cannot be negative")
	}

	if p.OutputFormat != "asm" && p.OutputFormat != "llvm" {
		return fmt.Errorf("%s is not a valid output format", p.OutputFormat)
	}

	return nil
}
