// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package internal

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wrap [time.Duration] so it can be written in configuration file
// as string, for example "10s", or as number of seconds.
type Duration struct {
	time.Duration
}

// MarshalText return the duration as string, for example "1m30s".
func (dur Duration) MarshalText() ([]byte, error) {
	return []byte(dur.Duration.String()), nil
}

// UnmarshalText parse the text using [time.ParseDuration].
// Empty text set the duration to zero.
func (dur *Duration) UnmarshalText(text []byte) (err error) {
	if len(text) == 0 {
		dur.Duration = 0
		return nil
	}
	dur.Duration, err = time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf(`invalid duration %q`, text)
	}
	return nil
}

// UnmarshalYAML accept either a string duration or numeric seconds.
func (dur *Duration) UnmarshalYAML(node *yaml.Node) (err error) {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf(`line %d: invalid duration`, node.Line)
	}
	switch node.Tag {
	case `!!int`, `!!float`:
		var secs float64
		secs, err = strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return fmt.Errorf(`line %d: invalid duration %q`,
				node.Line, node.Value)
		}
		dur.Duration = time.Duration(secs * float64(time.Second))
		return nil
	}
	err = dur.UnmarshalText([]byte(node.Value))
	if err != nil {
		return fmt.Errorf(`line %d: %w`, node.Line, err)
	}
	return nil
}
