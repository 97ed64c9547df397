package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Rudra2712/Plagiarism-detection-system/pkg/config"
)

var (
	cfgFile    string
	formatFlag string
	outputFlag string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:     "plagiarism",
	Version: version,
	Short:   "Source-code plagiarism detection across assignment submissions",
	Long: `Detects near-duplicate source code across a corpus of student
submissions using normalized token fingerprints: k-gram shingling, a
Rabin-Karp rolling hash, winnowing, and Jaccard similarity over an
inverted fingerprint index.

Supports: C, C++, Java, JavaScript, TypeScript, Python, Go`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (TOML, YAML, or JSON)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Output format: text, json, markdown")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "Write output to file instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

// loadConfig resolves configuration: explicit file, else standard locations,
// else defaults, with flags layered on top.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}
	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	return cfg, nil
}

// newLogger builds the CLI logger; quiet unless --verbose.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
