package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/inodb/vibe-structure/internal/represent"
	"github.com/inodb/vibe-structure/internal/session"
	"github.com/inodb/vibe-structure/internal/transcript"
)

// sessionFile is the on-disk form of one viewer state:
//
//	pdb: 3HHR
//	transcriptFile: kras.json
//	region: {startIndex: 1010, endIndex: 1012}
//	position: "A/B=1-50"
//	chains: [{chainId: A}, {chainId: B}]
//	chainId: A
//	displayMode: CA
//	displayColor: SS
type sessionFile struct {
	PDB            string             `mapstructure:"pdb"`
	TranscriptFile string             `mapstructure:"transcriptFile"`
	Region         *transcript.Region `mapstructure:"region"`
	Position       string             `mapstructure:"position"`
	Chains         []represent.Chain  `mapstructure:"chains"`
	ChainID        string             `mapstructure:"chainId"`
	DisplayMode    string             `mapstructure:"displayMode"`
	DisplayColor   string             `mapstructure:"displayColor"`
}

// loadSession reads a YAML or JSON session file. The transcript file path is
// resolved relative to the session file. Display settings fall back to the
// display.mode and display.color config keys.
func loadSession(path string) (session.Inputs, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return session.Inputs{}, fmt.Errorf("read session: %w", err)
	}

	var sf sessionFile
	if err := v.Unmarshal(&sf); err != nil {
		return session.Inputs{}, fmt.Errorf("decode session: %w", err)
	}

	in := session.Inputs{
		StructureID:  sf.PDB,
		Region:       sf.Region,
		Position:     sf.Position,
		Chains:       sf.Chains,
		ChainFilter:  sf.ChainID,
		DisplayMode:  sf.DisplayMode,
		DisplayColor: sf.DisplayColor,
	}
	if in.DisplayMode == "" {
		in.DisplayMode = viper.GetString("display.mode")
	}
	if in.DisplayColor == "" {
		in.DisplayColor = viper.GetString("display.color")
	}

	if sf.TranscriptFile != "" {
		tp := sf.TranscriptFile
		if !filepath.IsAbs(tp) {
			tp = filepath.Join(filepath.Dir(path), tp)
		}
		t, err := transcript.Load(tp)
		if err != nil {
			return session.Inputs{}, err
		}
		in.Transcript = t
	}
	return in, nil
}
