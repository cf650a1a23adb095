// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package internal

import (
	"testing"
	"time"

	"git.sr.ht/~shulhan/pakakeh.go/lib/test"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalYAML(t *testing.T) {
	type testCase struct {
		in       string
		expError string
		exp      time.Duration
	}

	listCase := []testCase{{
		in:  `timeout: 10s`,
		exp: 10 * time.Second,
	}, {
		in:  `timeout: 1m30s`,
		exp: 90 * time.Second,
	}, {
		in:  `timeout: 3`,
		exp: 3 * time.Second,
	}, {
		in:  `timeout: 0.5`,
		exp: 500 * time.Millisecond,
	}, {
		in:  `timeout: ""`,
		exp: 0,
	}, {
		in:       `timeout: ten`,
		expError: `line 1: invalid duration "ten"`,
	}, {
		in:       `timeout: [1, 2]`,
		expError: `line 1: invalid duration`,
	}}

	type config struct {
		Timeout Duration `yaml:"timeout"`
	}

	for _, tcase := range listCase {
		var got config
		var err = yaml.Unmarshal([]byte(tcase.in), &got)
		if err != nil {
			test.Assert(t, tcase.in+` error`, tcase.expError, err.Error())
			continue
		}
		test.Assert(t, tcase.in, tcase.exp, got.Timeout.Duration)
	}
}

func TestDuration_MarshalText(t *testing.T) {
	var dur = Duration{Duration: 1500 * time.Millisecond}
	var got, _ = dur.MarshalText()
	test.Assert(t, `MarshalText`, `1.5s`, string(got))
}
