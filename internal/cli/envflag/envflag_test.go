// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package envflag

import (
	"flag"
	"testing"
)

func getenv(env map[string]string) func(string) string {
	return func(name string) string { return env[name] }
}

func TestValueDefault(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	v := Value("verbose", "TEST_VERBOSE", false, "Be verbose.", fs, getenv(nil))

	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if *v {
		t.Fatal("default must be false")
	}
}

func TestValueFromEnv(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		env  map[string]string
		want bool
	}{
		"set to true":    {env: map[string]string{"TEST_VERBOSE": "true"}, want: true},
		"set to 1":       {env: map[string]string{"TEST_VERBOSE": "1"}, want: true},
		"unset":          {env: nil, want: false},
		"unparseable":    {env: map[string]string{"TEST_VERBOSE": "yes please"}, want: false},
		"explicit false": {env: map[string]string{"TEST_VERBOSE": "false"}, want: false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			v := Value("verbose", "TEST_VERBOSE", false, "Be verbose.", fs, getenv(tc.env))

			if err := fs.Parse(nil); err != nil {
				t.Fatal(err)
			}
			if *v != tc.want {
				t.Fatalf("got %v, want %v", *v, tc.want)
			}
		})
	}
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	env := map[string]string{"TEST_COMMAND": "from env"}
	v := Value("command", "TEST_COMMAND", "", "Command to run.", fs, getenv(env))

	if err := fs.Parse([]string{"-command", "from flag"}); err != nil {
		t.Fatal(err)
	}
	if *v != "from flag" {
		t.Fatalf("got %q, want %q", *v, "from flag")
	}
}

func TestBoolFlagNeedsNoValue(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	v := Value("verbose", "TEST_VERBOSE", false, "Be verbose.", fs, getenv(nil))

	if err := fs.Parse([]string{"-verbose"}); err != nil {
		t.Fatal(err)
	}
	if !*v {
		t.Fatal("-verbose without a value must set the flag")
	}
}

func TestIntValue(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	env := map[string]string{"TEST_NUM": "42"}
	v := Value("num", "TEST_NUM", 7, "A number.", fs, getenv(env))

	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if *v != 42 {
		t.Fatalf("got %d, want 42", *v)
	}
}
