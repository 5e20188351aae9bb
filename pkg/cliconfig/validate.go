package cliconfig

import (
	"fmt"
	"net/url"

	"github.com/getmockd/storeadmin/pkg/logging"
)

// Validate checks the resolved configuration.
func (c *CLIConfig) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("apiUrl %q is invalid: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("apiUrl %q must use http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("apiUrl %q has no host", c.APIURL)
	}

	if c.Timeout <= 0 || c.Timeout > MaxTimeout {
		return fmt.Errorf("timeout %s is out of range (valid: 1ns-%s)", c.Timeout, MaxTimeout)
	}

	if c.Output != OutputTable && c.Output != OutputJSON {
		return fmt.Errorf("output %q is invalid (valid: %s, %s)", c.Output, OutputTable, OutputJSON)
	}

	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("logLevel %q is invalid (valid: debug, info, warn, error)", c.LogLevel)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("logFormat %q is invalid (valid: text, json)", c.LogFormat)
	}

	return nil
}
