// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"strings"
	"testing"
)

func testEnv(args ...string) (*Env, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Env{
		Args:   args,
		Getenv: func(string) string { return "" },
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

func TestRunPassesArgs(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv("-whatever", "a", "b")

	var got []string
	app := struct {
		AppFunc
		flagsFunc
	}{
		AppFunc: func(ctx context.Context) error {
			got = append(got, GetEnv(ctx).Args...)
			return nil
		},
		flagsFunc: func(fs *flag.FlagSet, _ *Env) {
			fs.Bool("whatever", false, "Test flag.")
		},
	}

	if err := Run(WithEnv(context.Background(), env), app); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("positional args = %q, want [a b]", got)
	}
}

type flagsFunc func(*flag.FlagSet, *Env)

func (f flagsFunc) Flags(fs *flag.FlagSet, env *Env) { f(fs, env) }

func TestRunHelp(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv("-h")
	err := Run(WithEnv(context.Background(), env), AppFunc(func(context.Context) error {
		t.Fatal("app must not run when help is requested")
		return nil
	}))

	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("got error %v, want flag.ErrHelp", err)
	}
	if isPrintableError(err) {
		t.Error("help error must not be printable")
	}
	if !strings.Contains(stderr.String(), "Available flags") {
		t.Errorf("stderr must contain usage, got: %q", stderr.String())
	}
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv("-version")
	err := Run(WithEnv(context.Background(), env), AppFunc(func(context.Context) error {
		t.Fatal("app must not run when version is requested")
		return nil
	}))

	if !errors.Is(err, ErrExitVersion) {
		t.Fatalf("got error %v, want ErrExitVersion", err)
	}
	if isPrintableError(err) {
		t.Error("version error must not be printable")
	}
	if stderr.String() == "" {
		t.Error("version info must be written to stderr")
	}
}

func TestRunUnknownFlag(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv("-nonexistent")
	err := Run(WithEnv(context.Background(), env), AppFunc(func(context.Context) error {
		t.Fatal("app must not run when flag parsing fails")
		return nil
	}))

	if err == nil {
		t.Fatal("must fail on an unknown flag")
	}
	// The flag package has already reported the error.
	if isPrintableError(err) {
		t.Error("flag parse error must not be printable")
	}
	if !strings.Contains(stderr.String(), "nonexistent") {
		t.Errorf("stderr must mention the unknown flag, got: %q", stderr.String())
	}
}

func TestRunAppError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("app failed")
	env, _, _ := testEnv()
	err := Run(WithEnv(context.Background(), env), AppFunc(func(context.Context) error {
		return wantErr
	}))

	if !errors.Is(err, wantErr) {
		t.Fatalf("got error %v, want %v", err, wantErr)
	}
	if !isPrintableError(err) {
		t.Error("app error must be printable")
	}
}

func TestGetEnvFallback(t *testing.T) {
	t.Parallel()

	if GetEnv(context.Background()) == nil {
		t.Fatal("GetEnv must fall back to the OS environment")
	}
}

func TestEnvLogf(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv()
	env.Logf("hello, %s", "world")
	if got := stderr.String(); got != "hello, world\n" {
		t.Fatalf("stderr = %q, want %q", got, "hello, world\n")
	}
}
