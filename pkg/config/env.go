package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes the environment variables read by ApplyEnv.
const EnvPrefix = "DOCRENDER_"

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields of c from DOCRENDER_* variables, for
// example DOCRENDER_MODE or DOCRENDER_ONLY_RETURN_FAILURES. A nil
// lookup reads the process environment. Empty values are ignored.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("MODE"); ok {
		c.Mode = v
	}
	if v, ok := get("TITLE"); ok {
		c.Title = v
	}
	if v, ok := get("ONLY_RETURN_FAILURES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sONLY_RETURN_FAILURES: %w", EnvPrefix, err)
		}
		c.OnlyReturnFailures = b
	}
	if v, ok := get("FILTER"); ok {
		c.Filter = v
	}
	if v, ok := get("PARALLELISM"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPARALLELISM: %w", EnvPrefix, err)
		}
		c.Parallelism = n
	}
	if v, ok := get("FORMAT"); ok {
		c.Format = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.LogFormat = v
	}
	if v, ok := get("LOG_FILE"); ok {
		c.LogFile = v
	}
	return nil
}
