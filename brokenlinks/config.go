// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package brokenlinks

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"git.sr.ht/~shulhan/brokenlink/internal"
)

// config define the format of configuration file.
type config struct {
	Headers      map[string]string `yaml:"headers"`
	Url          string            `yaml:"url"`
	Exclude      []string          `yaml:"exclude"`
	RetryStatus  []int             `yaml:"retry_status"`
	Depth        *int              `yaml:"depth"`
	Threads      int               `yaml:"threads"`
	Retry        *int              `yaml:"retry"`
	Timeout      internal.Duration `yaml:"timeout"`
	RetryBackoff internal.Duration `yaml:"retry_backoff"`
	Rate         float64           `yaml:"rate"`
	MaxBodyBytes int64             `yaml:"max_body_bytes"`
	Verbose      bool              `yaml:"verbose"`
	Insecure     bool              `yaml:"insecure"`
	Head         bool              `yaml:"head"`
}

// LoadOptions read the Options from YAML file.
// Field that is not set in the file use the default value.
// For example,
//
//	url: https://example.com
//	depth: 2
//	threads: 10
//	timeout: 10s
//	exclude:
//	  - facebook.com
//	headers:
//	  Authorization: Bearer token
func LoadOptions(path string) (opts Options, err error) {
	var logp = `LoadOptions`
	var file *os.File

	file, err = os.Open(path)
	if err != nil {
		return opts, fmt.Errorf(`%s: %w`, logp, err)
	}
	defer file.Close()

	opts, err = ReadOptions(file)
	if err != nil {
		return opts, fmt.Errorf(`%s: %s: %w`, logp, path, err)
	}
	return opts, nil
}

// ReadOptions read the Options in YAML format from reader.
// Unknown field is an error.
func ReadOptions(reader io.Reader) (opts Options, err error) {
	var (
		dec = yaml.NewDecoder(reader)
		cfg config
	)
	dec.KnownFields(true)

	err = dec.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return opts, err
	}

	opts = Options{
		Url:            cfg.Url,
		Headers:        cfg.Headers,
		ExcludeDomains: cfg.Exclude,
		RetryStatus:    cfg.RetryStatus,
		MaxDepth:       DefaultMaxDepth,
		Concurrency:    cfg.Threads,
		Timeout:        cfg.Timeout.Duration,
		RetryBackoff:   cfg.RetryBackoff.Duration,
		RateLimit:      cfg.Rate,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		IsVerbose:      cfg.Verbose,
		Insecure:       cfg.Insecure,
		Head:           cfg.Head,
	}
	if cfg.Depth != nil {
		if *cfg.Depth < 0 {
			return opts, fmt.Errorf(`invalid depth %d`, *cfg.Depth)
		}
		opts.MaxDepth = *cfg.Depth
	}
	if cfg.Retry != nil {
		opts.MaxRetry = *cfg.Retry
		if opts.MaxRetry == 0 {
			// Zero in Options means default.
			opts.MaxRetry = -1
		}
	}
	if opts.Concurrency < 0 {
		return opts, fmt.Errorf(`invalid threads %d`, opts.Concurrency)
	}
	return opts, nil
}
