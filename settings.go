// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.
package retry

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sosodev/duration"
)

// Environment variable example:
// RETRY_PAUSE=PT0.5S
// RETRY_MAX_TRIES=5
// RETRY_STRATEGY=exponential.
func OptionsFromEnv() (*Options, error) {
	envVars := os.Environ()

	settingsMap := parseToSettingsMap(envVars, "=")
	return applySettingsMap(settingsMap)
}

// Settings string example:
// Pause=PT1S;MaxTries=5;MaxTotalTime=PT30S;Strategy=exponential.
func OptionsFromString(settings string) (*Options, error) {
	settingsMap := parseToSettingsMap(settings, ";")
	return applySettingsMap(settingsMap)
}

func parseToSettingsMap(
	input any,
	delimiter string,
) map[string]string {
	settingsMap := make(map[string]string)

	switch v := input.(type) {
	case string:
		// Parse settings string.
		v = strings.TrimSuffix(v, delimiter)
		params := strings.Split(v, delimiter)
		for _, param := range params {
			kv := strings.SplitN(param, "=", 2)
			if len(kv) == 2 {
				k := normalizeSettingsKey(kv[0])
				settingsMap[k] = strings.TrimSpace(kv[1])
			}
		}
	case []string:
		// Parse environment variables.
		for _, envVar := range v {
			kv := strings.SplitN(envVar, delimiter, 2)
			if len(kv) == 2 && strings.HasPrefix(kv[0], "RETRY_") {
				k := normalizeSettingsKey(strings.TrimPrefix(kv[0], "RETRY_"))
				settingsMap[k] = strings.TrimSpace(kv[1])
			}
		}
	}
	return settingsMap
}

// Keys are matched ignoring case and underscores, so MaxTries, maxtries, and
// MAX_TRIES are all the same setting.
func normalizeSettingsKey(key string) string {
	return strings.ToLower(
		strings.ReplaceAll(strings.TrimSpace(key), "_", ""),
	)
}

func applySettingsMap(settingsMap map[string]string) (*Options, error) {
	opt := &Options{}

	if value, exists := settingsMap["pause"]; exists {
		pause, err := duration.Parse(value)
		if err != nil {
			return nil, &InvalidArgumentError{
				message: "invalid Pause setting",
				wrapped: err,
			}
		}
		opt.Pause = pause.ToTimeDuration()
	}

	if value, exists := settingsMap["maxtries"]; exists {
		maxTries, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, &InvalidArgumentError{
				message: "invalid MaxTries setting",
				wrapped: err,
			}
		}
		opt.MaxTries = maxTries
	}

	if value, exists := settingsMap["maxtotaltime"]; exists {
		maxTotalTime, err := duration.Parse(value)
		if err != nil {
			return nil, &InvalidArgumentError{
				message: "invalid MaxTotalTime setting",
				wrapped: err,
			}
		}
		opt.MaxTotalTime = maxTotalTime.ToTimeDuration()
	}

	if value, exists := settingsMap["strategy"]; exists {
		strategy, err := strategyFromName(value)
		if err != nil {
			return nil, err
		}
		opt.Strategy = strategy
	}

	return opt, nil
}

// strategyFromName resolves the strategies expressible in settings. Custom
// strategies are functions and can only be set in code.
func strategyFromName(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "linear":
		return Linear{}, nil
	case "exponential":
		return Exponential{}, nil
	default:
		return nil, &InvalidArgumentError{
			message: fmt.Sprintf("unknown retry strategy %q", name),
		}
	}
}
