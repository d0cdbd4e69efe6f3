package config

// This file defines the command-line flags and folds flags, ANNOTRIM_*
// environment variables, and the optional config file into a Config via
// viper. Precedence: flag > env > config file > DefaultConfig.

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Viper keys. Flag names match the keys.
const (
	KeyScan      = "scan"
	KeyPrefix    = "prefix"
	KeyChangeExt = "change-ext"
	KeyMove      = "move"
	KeyInfo      = "info"
	KeyUnique    = "unique"
	KeyManifest  = "manifest"
	KeyProgress  = "progress"
	KeyLog       = "log"
	KeyVerbose   = "verbose"
	KeyColor     = "color"
	KeyNoColor   = "no-color"
)

// EnvPrefix is prepended to environment variable names (ANNOTRIM_PREFIX, ...).
const EnvPrefix = "ANNOTRIM"

// BindFlags registers the run flags on fs and binds each one to v.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	def := DefaultConfig()

	fs.StringP(KeyScan, "s", string(def.ScanMode), "Scan type: shallow | deep")
	fs.StringP(KeyPrefix, "b", def.Prefix, "Base name prefix for renamed pairs")
	fs.StringP(KeyChangeExt, "c", "", "Rewrite extensions, e.g. jpeg->jpg")
	fs.BoolP(KeyMove, "m", false, "Move stray files into quarantine folders")
	fs.BoolP(KeyInfo, "i", false, "Print a summary of renamed annotations")
	fs.Bool(KeyUnique, false, "Redraw generated names that are already taken")
	fs.String(KeyManifest, "", "Write processed pairs to a YAML manifest")
	fs.Bool(KeyProgress, false, "Show a progress bar while renaming")
	fs.StringP(KeyLog, "l", def.LogFile, "Audit log file (empty disables)")
	fs.BoolP(KeyVerbose, "v", false, "Verbose output")
	fs.Bool(KeyColor, false, "Force colored logs")
	fs.Bool(KeyNoColor, false, "Disable colored logs")

	for _, key := range []string{
		KeyScan, KeyPrefix, KeyChangeExt, KeyMove, KeyInfo, KeyUnique,
		KeyManifest, KeyProgress, KeyLog, KeyVerbose, KeyColor, KeyNoColor,
	} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return err
		}
	}
	return nil
}

// NewViper returns a viper instance reading ANNOTRIM_* environment
// variables, with defaults from DefaultConfig.
func NewViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault(KeyScan, string(def.ScanMode))
	v.SetDefault(KeyPrefix, def.Prefix)
	v.SetDefault(KeyLog, def.LogFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load builds a Config from v on top of DefaultConfig. The result still
// needs [Config.Validate].
func Load(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()

	mode, err := ParseScanMode(v.GetString(KeyScan))
	if err != nil {
		return cfg, err
	}
	cfg.ScanMode = mode
	cfg.Prefix = v.GetString(KeyPrefix)
	cfg.ChangeExt = strings.TrimSpace(v.GetString(KeyChangeExt))
	cfg.MoveStrays = v.GetBool(KeyMove)
	cfg.ShowInfo = v.GetBool(KeyInfo)
	cfg.UniqueNames = v.GetBool(KeyUnique)
	cfg.ManifestPath = v.GetString(KeyManifest)
	cfg.Progress = v.GetBool(KeyProgress)
	cfg.LogFile = v.GetString(KeyLog)
	cfg.Verbose = v.GetBool(KeyVerbose)

	applyColorFlags(&cfg, v.GetBool(KeyColor), v.GetBool(KeyNoColor))
	return cfg, nil
}

// applyColorFlags resolves --color/--no-color into ColorMode; --no-color wins.
func applyColorFlags(cfg *Config, forceColor, noColor bool) {
	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}
}
