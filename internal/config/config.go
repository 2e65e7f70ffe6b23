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

// Package config loads the named table sources of the viewer.
//
// A configuration file is YAML:
//
//	logging:
//	  level: info
//	  format: text
//	sources:
//	  orders:
//	    type: sql
//	    engine: postgresql
//	    host: localhost
//	    database: shop
//	    user: ${DB_USER}
//	    password: ${DB_PASSWORD}
//	    table: orders
//	  sales:
//	    type: csv
//	    path: data/sales.csv
//	    options:
//	      sep: ";"
//
// ${VAR} references in the path, database, host, user, password and
// profile fields are expanded from the environment after decoding. A "$"
// not followed by "{" is kept as written.
package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/magpierre/simpledt/datatable"
)

// envRef matches a ${NAME} environment reference.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Source types.
const (
	TypeGeneric      = "generic"
	TypeCSV          = "csv"
	TypeExcel        = "excel"
	TypeJSON         = "json"
	TypeSQL          = "sql"
	TypeParquet      = "parquet"
	TypeDeltaSharing = "deltasharing"
)

// Config is the viewer configuration.
type Config struct {
	Logging Logging            `yaml:"logging"`
	Sources map[string]*Source `yaml:"sources"`
}

// Logging configures the process logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Source describes one table source. Which fields apply depends on Type.
type Source struct {
	Type string `yaml:"type"`

	// Path is a file path or http(s) URL for file sources.
	Path string `yaml:"path"`

	// Relational sources.
	Engine    string `yaml:"engine"`
	Database  string `yaml:"database"`
	Table     string `yaml:"table"`
	Statement string `yaml:"statement"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`

	// Delta Sharing sources. Table is shared with relational sources.
	Profile     string `yaml:"profile"`
	ProfilePath string `yaml:"profile_path"`
	Share       string `yaml:"share"`
	Schema      string `yaml:"schema"`
	FileID      string `yaml:"file_id"`

	Options datatable.Options `yaml:"options"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data and expands environment references in it.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Sources == nil {
		cfg.Sources = map[string]*Source{}
	}
	for _, src := range cfg.Sources {
		if src == nil {
			continue
		}
		if src.Type == "" {
			src.Type = TypeGeneric
		}
		src.expandEnvFields()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every source and returns all failures together.
func (c *Config) Validate() error {
	var errs []string
	for _, name := range c.SourceNames() {
		if err := c.Sources[name].Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("source %q: %v", name, err))
		}
	}
	if len(errs) > 0 {
		return &datatable.ConfigurationError{Field: "sources", Err: fmt.Errorf("%s", strings.Join(errs, "; "))}
	}
	return nil
}

// SourceNames returns the configured source names, sorted.
func (c *Config) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named source.
func (c *Config) Lookup(name string) (*Source, bool) {
	if c == nil {
		return nil, false
	}
	src, ok := c.Sources[name]
	return src, ok
}

func (s *Source) expandEnvFields() {
	for _, field := range []*string{
		&s.Path, &s.Database, &s.Host, &s.User, &s.Password, &s.Profile, &s.ProfilePath,
	} {
		*field = expandEnv(*field)
	}
}

// expandEnv replaces ${NAME} references with the environment value.
// Unset variables expand to the empty string.
func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

// Validate checks that the fields required by the source type are set.
func (s *Source) Validate() error {
	if s == nil {
		return fmt.Errorf("empty source")
	}
	switch s.Type {
	case TypeGeneric, TypeCSV, TypeExcel, TypeJSON, TypeParquet:
		if s.Path == "" {
			return fmt.Errorf("path is required")
		}
	case TypeSQL:
		if s.Engine == "" || s.Database == "" {
			return fmt.Errorf("engine and database are required")
		}
	case TypeDeltaSharing:
		if s.Profile == "" && s.ProfilePath == "" {
			return fmt.Errorf("profile or profile_path is required")
		}
	default:
		return fmt.Errorf("unknown type %q", s.Type)
	}
	return nil
}
