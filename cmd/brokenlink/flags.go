// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"git.sr.ht/~shulhan/brokenlink/brokenlinks"
	"git.sr.ht/~shulhan/brokenlink/internal"
)

// flags contains the value of command line options.
type flags struct {
	config   string
	exclude  string
	headers  string
	output   string
	depth    int
	retry    int
	threads  int
	timeout  time.Duration
	rate     float64
	head     bool
	insecure bool
	verbose  bool
}

func newFlags(fset *flag.FlagSet) (cliFlags *flags) {
	cliFlags = &flags{}

	fset.StringVar(&cliFlags.config, `config`, ``,
		`Read the options from YAML file.`)

	fset.IntVar(&cliFlags.depth, `depth`, brokenlinks.DefaultMaxDepth,
		`Depth of crawling for links.`)

	fset.StringVar(&cliFlags.exclude, `exclude`, ``,
		`Comma separated list of domains to exclude.`)

	fset.BoolVar(&cliFlags.head, `head`, false,
		`Check the links using HTTP method HEAD.`)

	fset.StringVar(&cliFlags.headers, `headers`, `{}`,
		`Custom headers to send with the requests, in JSON format.`)

	fset.BoolVar(&cliFlags.insecure, `insecure`, false,
		`Do not report as error on server with invalid certificates.`)

	fset.StringVar(&cliFlags.output, `output`, ``,
		`Output file path (supports .txt, .json, .html, .csv, .xlsx).`)

	fset.Float64Var(&cliFlags.rate, `rate`, 0,
		`Maximum number of request per second for each host.`)

	fset.IntVar(&cliFlags.retry, `retry`, brokenlinks.DefaultMaxRetry,
		`Number of retry on server error.`)

	fset.IntVar(&cliFlags.threads, `threads`, brokenlinks.DefaultConcurrency,
		`Number of links checked at the same time.`)

	fset.DurationVar(&cliFlags.timeout, `timeout`, brokenlinks.DefaultTimeout,
		`Timeout for each request.`)

	fset.BoolVar(&cliFlags.verbose, `verbose`, false,
		`Print additional information while running.`)

	return cliFlags
}

// options return the brokenlinks.Options from configuration file, if its
// exist, overridden by the options explicitly set in command line.
func (cliFlags *flags) options(fset *flag.FlagSet) (
	opts brokenlinks.Options, err error,
) {
	var logp = `options`

	opts, err = cliFlags.loadConfig()
	if err != nil {
		return opts, fmt.Errorf(`%s: %w`, logp, err)
	}

	var isSet = map[string]bool{}
	fset.Visit(func(f *flag.Flag) {
		isSet[f.Name] = true
	})

	if isSet[`depth`] {
		if cliFlags.depth < 0 {
			return opts, fmt.Errorf(`%s: invalid depth %d`, logp,
				cliFlags.depth)
		}
		opts.MaxDepth = cliFlags.depth
	}
	if isSet[`exclude`] {
		opts.ExcludeDomains = brokenlinks.ParseExcludeDomains(cliFlags.exclude)
	}
	if isSet[`headers`] {
		opts.Headers, err = brokenlinks.ParseHeaders(cliFlags.headers)
		if err != nil {
			return opts, fmt.Errorf(`%s: %w`, logp, err)
		}
	}
	if isSet[`head`] {
		opts.Head = cliFlags.head
	}
	if isSet[`insecure`] {
		opts.Insecure = cliFlags.insecure
	}
	if isSet[`rate`] {
		opts.RateLimit = cliFlags.rate
	}
	if isSet[`retry`] {
		opts.MaxRetry = cliFlags.retry
		if opts.MaxRetry == 0 {
			// Zero in Options means default.
			opts.MaxRetry = -1
		}
	}
	if isSet[`threads`] {
		if cliFlags.threads < 1 {
			return opts, fmt.Errorf(`%s: invalid threads %d`, logp,
				cliFlags.threads)
		}
		opts.Concurrency = cliFlags.threads
	}
	if isSet[`timeout`] {
		opts.Timeout = cliFlags.timeout
	}
	if isSet[`verbose`] {
		opts.IsVerbose = cliFlags.verbose
	}
	return opts, nil
}

// scanArgs return the URL argument of command "scan".
// The options after the URL are not parsed by the flag package, so any
// argument after the URL is an error.
func scanArgs(fset *flag.FlagSet) (scanUrl string, err error) {
	var args = fset.Args()
	if len(args) > 2 {
		return ``, fmt.Errorf(`scan: unknown arguments %q, options must be set before the command`,
			args[2:])
	}
	if len(args) == 2 {
		scanUrl = args[1]
	}
	return scanUrl, nil
}

// loadConfig load the options from file set in "-config" or from
// [internal.ConfigFile].
// The default configuration file is optional.
func (cliFlags *flags) loadConfig() (opts brokenlinks.Options, err error) {
	if cliFlags.config != `` {
		return brokenlinks.LoadOptions(cliFlags.config)
	}

	opts = brokenlinks.Options{
		MaxDepth: brokenlinks.DefaultMaxDepth,
	}

	var path string
	path, err = internal.ConfigFile()
	if err != nil {
		return opts, nil
	}

	var fileOpts brokenlinks.Options
	fileOpts, err = brokenlinks.LoadOptions(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return opts, nil
		}
		return opts, err
	}
	return fileOpts, nil
}
