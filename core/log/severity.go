// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Severity defines the severity of a logging message.
type Severity int32

const (
	// Verbose indicates extremely verbose level messages.
	Verbose Severity = 0
	// Debug indicates debug-level messages.
	Debug Severity = 1
	// Info indicates minor informational messages that should generally be ignored.
	Info Severity = 2
	// Warning indicates issues that might affect performance or compatibility, but could be ignored.
	Warning Severity = 3
	// Error indicates non terminal failure conditions that may have an effect on results.
	Error Severity = 4
	// Fatal indicates a fatal error.
	Fatal Severity = 5
)

var severities = []Severity{Verbose, Debug, Info, Warning, Error, Fatal}

// Short returns the single character summary of the severity.
func (s Severity) Short() string {
	switch s {
	case Verbose:
		return "V"
	case Debug:
		return "D"
	case Info:
		return "I"
	case Warning:
		return "W"
	case Error:
		return "E"
	case Fatal:
		return "F"
	default:
		return "?"
	}
}

// String returns the full name of the severity.
func (s Severity) String() string {
	switch s {
	case Verbose:
		return "Verbose"
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Severity<%d>", int(s))
	}
}

// color returns the terminal color used to print the severity label.
func (s Severity) color() *color.Color {
	switch {
	case s >= Error:
		return color.New(color.FgRed, color.Bold)
	case s == Warning:
		return color.New(color.FgYellow)
	case s == Info:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Faint)
	}
}

// SeverityNames returns the lower case names of all severities, least severe
// first.
func SeverityNames() []string {
	out := make([]string, len(severities))
	for i, s := range severities {
		out[i] = strings.ToLower(s.String())
	}
	return out
}

// ParseSeverity returns the severity with the given name, ignoring case.
func ParseSeverity(name string) (Severity, error) {
	for _, s := range severities {
		if strings.EqualFold(s.String(), name) || s.Short() == strings.ToUpper(name) {
			return s, nil
		}
	}
	return Info, fmt.Errorf("Unknown log severity %q", name)
}
