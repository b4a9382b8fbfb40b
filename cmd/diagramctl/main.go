/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Command diagramctl inspects and serves the diagrams of a project: it
// prints legends and diagram sizes, renders diagram layers as SVG,
// normalizes project files and serves legend queries over HTTP.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/ilhamster/diagramviz/legend"
	"github.com/ilhamster/diagramviz/project"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
)

// Configuration keys.  Each may be set by flag, by a DIAGRAMVIZ_<KEY>
// environment variable, or in the file named by --config.
const (
	addrKey             = "addr"
	localeKey           = "locale"
	dpiKey              = "dpi"
	scaleKey            = "scale"
	mapUnitsPerPixelKey = "map_units_per_pixel"
)

type config struct {
	addr             string
	locale           language.Tag
	dpi              float64
	scale            float64
	mapUnitsPerPixel float64
}

func loadConfig(v *viper.Viper) (*config, error) {
	cfg := &config{
		addr:             v.GetString(addrKey),
		dpi:              v.GetFloat64(dpiKey),
		scale:            v.GetFloat64(scaleKey),
		mapUnitsPerPixel: v.GetFloat64(mapUnitsPerPixelKey),
	}
	var err error
	if cfg.locale, err = language.Parse(v.GetString(localeKey)); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", localeKey, err)
	}
	if cfg.dpi <= 0 || cfg.mapUnitsPerPixel <= 0 {
		return nil, fmt.Errorf("%s and %s must be positive", dpiKey, mapUnitsPerPixelKey)
	}
	return cfg, nil
}

func (cfg *config) formatter() *legend.Formatter {
	return legend.NewFormatter(cfg.locale)
}

func (cfg *config) renderContext() *rendercontext.Context {
	return rendercontext.New(cfg.dpi, cfg.mapUnitsPerPixel, cfg.scale)
}

func readProject(path string) (*project.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := project.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var configPath string
	var cfg *config
	rootCmd := &cobra.Command{
		Use:           "diagramctl",
		Short:         "Inspect, render and serve project diagrams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				v.SetConfigFile(configPath)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read config: %w", err)
				}
			}
			var err error
			cfg, err = loadConfig(v)
			return err
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Configuration file (JSON, YAML or TOML)")
	flags.String(localeKey, "en", "Locale of legend values")
	flags.Float64(dpiKey, 96, "Output resolution, in dots per inch")
	flags.Float64(scaleKey, 0, "Map scale denominator")
	flags.Float64(mapUnitsPerPixelKey, 1, "Map units covered by one output pixel")
	bindFlags(v, flags)

	getConfig := func() *config { return cfg }
	rootCmd.AddCommand(
		newLegendCmd(getConfig),
		newSizeCmd(getConfig),
		newRenderCmd(getConfig),
		newNormalizeCmd(),
		newServeCmd(v, getConfig),
	)
	return rootCmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name != "config" {
			v.BindPFlag(f.Name, f)
		}
	})
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("DIAGRAMVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func main() {
	if err := newRootCmd(newViper()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "diagramctl:", err)
		os.Exit(1)
	}
}
