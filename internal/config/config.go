// Package config loads xlgrid viewer settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/javajack/xlgrid"
)

// Config is the on-disk viewer configuration.
//
//	sheet: Budget
//	area: A1:F40
//	focus_mode: roving
//	row_wrap: continuous
//	col_wrap: loop
//	soft_disabled: true
//	selection_fill: FFEB9C
//	rules:
//	  disabled: empty
//	  selectable: row > 1
//	log:
//	  path: xlgrid.log
//	  level: debug
type Config struct {
	Sheet         string       `yaml:"sheet"`
	Area          string       `yaml:"area"`
	FocusMode     string       `yaml:"focus_mode"`
	RowWrap       string       `yaml:"row_wrap"`
	ColWrap       string       `yaml:"col_wrap"`
	SoftDisabled  *bool        `yaml:"soft_disabled"`
	SelectionFill string       `yaml:"selection_fill"`
	Rules         xlgrid.Rules `yaml:"rules"`
	Log           LogConfig    `yaml:"log"`
}

// LogConfig controls the viewer's log file.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	soft := true
	return &Config{
		FocusMode:     string(xlgrid.FocusRoving),
		RowWrap:       string(xlgrid.WrapLoop),
		ColWrap:       string(xlgrid.WrapLoop),
		SoftDisabled:  &soft,
		SelectionFill: xlgrid.DefaultSelectionFill,
		Log:           LogConfig{Level: "info"},
	}
}

// Load reads path and overlays it on Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every enumerated value, the area and the rule expressions.
func (c *Config) Validate() error {
	var errs []error
	if _, err := xlgrid.ParseFocusMode(c.FocusMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := xlgrid.ParseWrap(c.RowWrap); err != nil {
		errs = append(errs, fmt.Errorf("row_wrap: %w", err))
	}
	if _, err := xlgrid.ParseWrap(c.ColWrap); err != nil {
		errs = append(errs, fmt.Errorf("col_wrap: %w", err))
	}
	if c.Area != "" {
		if _, err := xlgrid.ParseRect(c.Area); err != nil {
			errs = append(errs, fmt.Errorf("area: %w", err))
		}
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	for _, issue := range xlgrid.ValidateRules(c.Rules) {
		errs = append(errs, errors.New(issue.Message))
	}
	return errors.Join(errs...)
}

// GridOptions converts the navigation settings to grid options.
func (c *Config) GridOptions() ([]xlgrid.Option, error) {
	mode, err := xlgrid.ParseFocusMode(c.FocusMode)
	if err != nil {
		return nil, err
	}
	rowWrap, err := xlgrid.ParseWrap(c.RowWrap)
	if err != nil {
		return nil, fmt.Errorf("row_wrap: %w", err)
	}
	colWrap, err := xlgrid.ParseWrap(c.ColWrap)
	if err != nil {
		return nil, fmt.Errorf("col_wrap: %w", err)
	}
	opts := []xlgrid.Option{
		xlgrid.WithFocusMode(mode),
		xlgrid.WithRowWrap(rowWrap),
		xlgrid.WithColWrap(colWrap),
	}
	if c.SoftDisabled != nil {
		opts = append(opts, xlgrid.WithSoftDisabled(*c.SoftDisabled))
	}
	return opts, nil
}

// SheetOptions converts the loading settings to sheet options.
func (c *Config) SheetOptions() ([]xlgrid.SheetOption, error) {
	var opts []xlgrid.SheetOption
	if c.Area != "" {
		area, err := xlgrid.ParseRect(c.Area)
		if err != nil {
			return nil, fmt.Errorf("area: %w", err)
		}
		opts = append(opts, xlgrid.WithArea(area))
	}
	if !c.Rules.IsZero() {
		opts = append(opts, xlgrid.WithRules(c.Rules))
	}
	if c.SelectionFill != "" {
		opts = append(opts, xlgrid.WithSelectionFill(c.SelectionFill))
	}
	return opts, nil
}

// LogLevel parses Log.Level; empty means info.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(c.Log.Level) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
