package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"symcc/common"

	"github.com/pelletier/go-toml"
)

// InitProfile writes a profile file with the default settings into dir.
func InitProfile(dir string) error {
	profFilePath := filepath.Join(dir, common.ProfileFileName)

	// check to see if a profile already exists
	_, err := os.Stat(profFilePath)
	if err == nil {
		return errors.New("profile file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("profile file error: %s", err.Error())
	}

	def := DefaultProfile()
	registerParams := def.RegisterParams
	tpf := &tomlProfileFile{
		Target: &tomlTarget{
			WordSize:       def.WordSize,
			RegisterParams: &registerParams,
		},
		Output: &tomlOutput{
			Format: def.OutputFormat,
		},
	}

	f, err := os.Create(profFilePath)
	if err != nil {
		return fmt.Errorf("error creating profile file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(tpf); err != nil {
		return fmt.Errorf("error encoding TOML %s", err.Error())
	}

	return nil
}
