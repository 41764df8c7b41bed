// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.astrophena.name/kwrename/internal/cli"
	"go.astrophena.name/kwrename/internal/cli/envflag"
	"go.astrophena.name/kwrename/internal/cli/restrict"

	"github.com/landlock-lsm/go-landlock/landlock"
)

func main() { cli.Main(new(app)) }

type app struct {
	keyword string
	newName string
	command *string
	verbose *bool
}

func (a *app) Flags(fs *flag.FlagSet, env *cli.Env) {
	fs.StringVar(&a.keyword, "keyword", "", "`Keyword` to look for in directory names.")
	fs.StringVar(&a.newName, "newname", "", "`Name` to give the matched directory.")
	a.command = envflag.Value("command", "KWRENAME_COMMAND", "", "Shell `command` to run after a successful rename.", fs, env.Getenv)
	a.verbose = envflag.Value("verbose", "KWRENAME_VERBOSE", false, "Print progress information.", fs, env.Getenv)

	alias(fs, "keyword", "k")
	alias(fs, "newname", "n")
	alias(fs, "command", "c")
	alias(fs, "verbose", "v")
}

// alias registers short as an additional name for an already defined flag.
func alias(fs *flag.FlagSet, name, short string) {
	fs.Var(fs.Lookup(name).Value, short, "Shorthand for -"+name+".")
}

var (
	errAmbiguous     = errors.New("multiple matching directories")
	errTargetExists  = errors.New("target already exists")
	errCommandFailed = errors.New("command failed")
)

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if a.keyword == "" || a.newName == "" {
		return fmt.Errorf("%w: both -keyword and -newname are required", cli.ErrInvalidArgs)
	}
	if len(env.Args) > 1 {
		return fmt.Errorf("%w: at most one directory argument is allowed", cli.ErrInvalidArgs)
	}
	dir := "."
	if len(env.Args) == 1 {
		dir = env.Args[0]
	}
	if realdir, err := filepath.EvalSymlinks(dir); err == nil {
		dir = realdir
	}

	// The follow-up command may need paths outside dir, so sandbox only
	// when there is none to run.
	if *a.command == "" {
		restrict.DoUnlessTesting(ctx, landlock.RWDirs(dir))
	}

	var logf cli.Logf
	if *a.verbose {
		logf = env.Logf
	}

	if logf != nil {
		logf("Looking for directories containing %q in %s.", a.keyword, dir)
	}

	matches, err := scan(dir, a.keyword, logf)
	if err != nil {
		return err
	}

	switch len(matches) {
	case 0:
		fmt.Fprintf(env.Stdout, "No directory in %s contains %q.\n", dir, a.keyword)
		return nil
	case 1:
	default:
		return fmt.Errorf("%w: %d directories in %s contain %q, use a more specific keyword", errAmbiguous, len(matches), dir, a.keyword)
	}

	oldpath := filepath.Join(dir, matches[0])
	newpath := filepath.Join(dir, a.newName)

	// Lstat instead of Stat: a dangling symlink at the target still
	// counts as a collision.
	if _, err := os.Lstat(newpath); err == nil {
		return fmt.Errorf("%w: %s", errTargetExists, newpath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.Rename(oldpath, newpath); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "Renamed %s to %s.\n", matches[0], a.newName)

	if *a.command != "" {
		return runCommand(ctx, env, *a.command, logf)
	}
	return nil
}

// scan returns the names of immediate sub-directories of dir whose name
// contains keyword. If logf is not nil, each match is reported as found.
func scan(dir, keyword string, logf cli.Logf) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if !containsKeyword(e.Name(), keyword) {
			continue
		}
		if logf != nil {
			logf("Found matching directory: %s", e.Name())
		}
		matches = append(matches, e.Name())
	}
	return matches, nil
}

// containsKeyword reports whether name contains keyword, ignoring case in the
// ASCII range. Non-ASCII characters are compared as is.
func containsKeyword(name, keyword string) bool {
	return strings.Contains(lowerASCII(name), lowerASCII(keyword))
}

func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// runCommand runs command through the platform shell, wired to the
// environment's stdio, and waits for it to finish.
func runCommand(ctx context.Context, env *cli.Env, command string, logf cli.Logf) error {
	if logf != nil {
		logf("Running command: %s", command)
	}

	shell, dashc := "/bin/sh", "-c"
	if runtime.GOOS == "windows" {
		shell, dashc = "cmd", "/c"
	}

	cmd := exec.CommandContext(ctx, shell, dashc, command)
	cmd.Stdin = env.Stdin
	cmd.Stdout = env.Stdout
	cmd.Stderr = env.Stderr
	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return fmt.Errorf("%w: exit code %d", errCommandFailed, ee.ExitCode())
		}
		return fmt.Errorf("%w: %v", errCommandFailed, err)
	}

	if logf != nil {
		logf("Command succeeded.")
	}
	return nil
}
