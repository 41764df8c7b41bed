// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package envflag provides a wrapper around the standard flag package, allowing
// flags to be overridden by environment variables.
package envflag

import (
	"flag"
	"strconv"
)

// Type is a constraint that permits only types supported by envflag package.
type Type interface {
	int | bool | string
}

// Value sets up a flag with the given name, default value, and usage
// information.
//
// If the environment variable specified by envName is set, it overrides the
// flag's default value. A value passed on the command line overrides both.
func Value[T Type](
	name, envName string, value T, usage string,
	fs *flag.FlagSet, getenv func(string) string,
) *T {
	result := value

	if envValue := getenv(envName); envValue != "" {
		// Try to parse the environment variable into the appropriate type,
		// keeping the default on failure.
		switch any(value).(type) {
		case int:
			if parsed, err := strconv.Atoi(envValue); err == nil {
				result = any(parsed).(T)
			}
		case bool:
			if parsed, err := strconv.ParseBool(envValue); err == nil {
				result = any(parsed).(T)
			}
		case string:
			result = any(envValue).(T)
		}
	}

	usage += " Can be overridden by " + envName + " environment variable."

	fs.Var(newFlagValue(result, &result), name, usage)
	return &result
}

type flagValue[T any] struct {
	value *T
}

func newFlagValue[T any](defaultValue T, value *T) *flagValue[T] {
	*value = defaultValue
	return &flagValue[T]{value: value}
}

func (f *flagValue[T]) String() string {
	if f.value == nil {
		return ""
	}
	return toString(*f.value)
}

func (f *flagValue[T]) Set(s string) error {
	switch any(f.value).(type) {
	case *int:
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*f.value = any(v).(T)
	case *bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		*f.value = any(v).(T)
	case *string:
		*f.value = any(s).(T)
	default:
		return nil
	}
	return nil
}

// IsBoolFlag reports whether the flag holds a boolean value, letting the flag
// package accept it without an explicit value on the command line.
func (f *flagValue[T]) IsBoolFlag() bool {
	_, ok := any(f.value).(*bool)
	return ok
}

func toString[T any](value T) string {
	switch v := any(value).(type) {
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	default:
		return ""
	}
}
