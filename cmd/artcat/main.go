// Copyright Whalen Digital Projects, 2026. All rights reserved.

// Package main is the entry point for the artcat CLI.
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwhalen/artcat/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "artcat/0.1"

	defaultCachePath     = "content/_data/linked-art.json"
	defaultObjectsPath   = "content/_data/objects.yaml"
	defaultFiguresPath   = "content/_data/figures.yaml"
	defaultFiguresDir    = "content/_assets/images/figures"
	defaultHashCachePath = "content/_data/figures.json"
	defaultIndexDir      = "content/_data/index"
)

// rootCmd is the base command for the artcat CLI.
var rootCmd = &cobra.Command{
	Use:   "artcat",
	Short: "Build Quire catalog entries from Linked Art records",
	Long: `artcat fetches Linked Art (JSON-LD) records from museum APIs and turns
them into Quire data-file entries: objects.yaml records, figures.yaml
records, and downloaded figure images. Activity records expand into their
member objects.

Use add to scaffold entries, spreadsheet to summarize an activity's
objects as CSV, and query to search previously added entries.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./artcat.yaml or ~/.config/artcat/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("artcat")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "artcat"))
		}
	}

	viper.SetEnvPrefix("ARTCAT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles stage configuration from defaults, the config
// file, and command flags, in increasing precedence.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	resize, _ := cmd.Flags().GetString("resize")

	httpCfg := types.HTTPConfig{
		Timeout:   timeout,
		UserAgent: defaultUserAgent,
	}

	vocab := types.DefaultVocabulary()
	if viper.IsSet("vocabulary") {
		viper.UnmarshalKey("vocabulary", &vocab)
	}

	return types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig:   httpCfg,
			CachePath:    setting("cache_path", defaultCachePath),
			RequestDelay: delay,
		},
		Catalog: types.CatalogConfig{
			ObjectsPath: setting("objects_path", defaultObjectsPath),
			FiguresPath: setting("figures_path", defaultFiguresPath),
			FieldNames:  viper.GetStringMapString("field_names"),
		},
		Images: types.ImageConfig{
			HTTPConfig:    httpCfg,
			FiguresDir:    setting("figures_dir", defaultFiguresDir),
			HashCachePath: setting("figure_cache_path", defaultHashCachePath),
			Resize:        resize,
		},
		Index: types.IndexConfig{
			IndexDir:   setting("index_dir", defaultIndexDir),
			MaxResults: viper.GetInt("max_results"),
		},
		Vocabulary: vocab,
	}
}

func setting(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
