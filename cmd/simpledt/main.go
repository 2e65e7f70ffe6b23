// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command simpledt views tabular files and database tables.
package main

import (
	"context"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/magpierre/simpledt/datatable"
	"github.com/magpierre/simpledt/internal/config"
	"github.com/magpierre/simpledt/internal/logging"
)

var (
	app = kingpin.New("simpledt", "View tabular data from files and databases.")

	configPath = app.Flag("config", "YAML file of named sources.").Short('c').
			Envar("SIMPLEDT_CONFIG").ExistingFile()
	logLevel = app.Flag("log-level", "Log level (debug, info, warn, error).").
			IsSetByUser(&logLevelSet).Default("warn").Enum("debug", "info", "warn", "error")
	logFormat = app.Flag("log-format", "Log format.").
			IsSetByUser(&logFormatSet).Default("text").Enum("text", "json")
	options = app.Flag("opt", "Parser option as key=value, repeatable.").
		Short('o').StringMap()

	logLevelSet, logFormatSet bool

	// sources is the loaded config file, nil without --config.
	sources *config.Config

	commandHandlers []func(ctx context.Context, command string) bool
)

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	var err error
	sources, err = loadConfig()
	kingpin.FatalIfError(err, "Unable to load config file")

	level, format := *logLevel, *logFormat
	if sources != nil && !logLevelSet && sources.Logging.Level != "" {
		level = sources.Logging.Level
	}
	if sources != nil && !logFormatSet && sources.Logging.Format != "" {
		format = sources.Logging.Format
	}
	kingpin.FatalIfError(logging.Setup(level, format), "Logging")

	ctx := context.Background()
	for _, handler := range commandHandlers {
		if handler(ctx, command) {
			break
		}
	}
}

func loadConfig() (*config.Config, error) {
	if *configPath == "" {
		return nil, nil
	}
	return config.Load(*configPath)
}

// cliOptions returns the --opt values as parser options.
func cliOptions() datatable.Options {
	opts := datatable.Options{}
	for k, v := range *options {
		opts[k] = v
	}
	return opts
}

// openSource resolves name against the config file, falling back to a
// file path or URL.
func openSource(ctx context.Context, cfg *config.Config, name string, opts datatable.Options) (*datatable.Adapter, error) {
	if src, ok := cfg.Lookup(name); ok {
		return src.Open(ctx, opts)
	}
	return config.OpenLocation(ctx, name, opts)
}
