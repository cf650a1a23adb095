// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"git.sr.ht/~shulhan/brokenlink"
	"git.sr.ht/~shulhan/brokenlink/brokenlinks"
	"git.sr.ht/~shulhan/brokenlink/report"
)

func main() {
	log.SetFlags(0)

	var cliFlags = newFlags(flag.CommandLine)

	flag.Parse()

	var cmd = flag.Arg(0)
	cmd = strings.ToLower(cmd)
	switch cmd {
	case `scan`:
		var (
			opts brokenlinks.Options
			err  error
		)
		opts, err = cliFlags.options(flag.CommandLine)
		if err != nil {
			log.Fatal(err.Error())
		}

		var scanUrl string
		scanUrl, err = scanArgs(flag.CommandLine)
		if err != nil {
			log.Printf(`%s`, err)
			goto invalid_command
		}
		if scanUrl != `` {
			opts.Url = scanUrl
		}
		if opts.Url == `` {
			log.Printf(`Missing argument URL to be scanned.`)
			goto invalid_command
		}

		var output string
		output, err = report.OutputPath(cliFlags.output, opts.Url)
		if err != nil {
			log.Fatal(err.Error())
		}

		opts.Logger = logrus.New()
		opts.Logger.SetOutput(os.Stderr)
		if opts.IsVerbose {
			opts.Logger.SetLevel(logrus.DebugLevel)
		}

		var ctx, stop = signal.NotifyContext(context.Background(),
			os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Checking broken links on %s ...\n\n", opts.Url)

		var result *brokenlinks.Result
		result, err = brokenlinks.ScanContext(ctx, opts)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Printf(`Scan canceled.`)
				os.Exit(1)
			}
			log.Fatal(err.Error())
		}

		fmt.Println()
		report.PrintSummary(os.Stdout, result)

		err = report.WriteFile(output, result.Links)
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Printf("\nResults saved to %s\n", output)
		return

	case `help`:
		log.Println(brokenlink.GoEmbedReadme)
		return

	case `version`:
		log.Println(brokenlink.Version)
		return

	default:
		log.Printf(`Missing or invalid command %q`, cmd)
	}

invalid_command:
	log.Printf(`Run "brokenlink help" for usage.`)
	os.Exit(1)
}
