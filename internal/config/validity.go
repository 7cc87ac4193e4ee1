package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var (
	outputModes = map[string]bool{"pretty": true, "plain": true, "html": true, "json": true, "tui": true}
	logLevels   = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true}
	logFormats  = map[string]bool{"console": true, "json": true}
)

// CheckConfigValidity reports every invalid setting in v at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	if out := strings.ToLower(strings.TrimSpace(v.GetString("output"))); !outputModes[out] {
		errs = append(errs, fmt.Errorf("output %q must be one of pretty, plain, html, json, tui", out))
	}
	if v.GetInt("pretty.word_wrap") <= 0 {
		errs = append(errs, errors.New("pretty.word_wrap must be greater than 0"))
	}
	if lvl := strings.ToLower(strings.TrimSpace(v.GetString("log.level"))); !logLevels[lvl] {
		errs = append(errs, fmt.Errorf("log.level %q is not a known level", lvl))
	}
	if f := strings.ToLower(strings.TrimSpace(v.GetString("log.format"))); !logFormats[f] {
		errs = append(errs, fmt.Errorf("log.format %q must be console or json", f))
	}
	if strings.TrimSpace(v.GetString("http_addr")) == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}

	return errors.Join(errs...)
}
