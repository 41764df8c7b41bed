// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Kwrename renames a directory whose name contains a keyword.

It looks at the immediate entries of a directory (the current one by
default) and collects sub-directories whose name contains the keyword,
compared case-insensitively in the ASCII range. If exactly one matches, it
is renamed to the new name; zero matches is a no-op and more than one is an
error. The rename is refused if the new name already exists.

After a successful rename an optional shell command can be run; its
non-zero exit status makes kwrename fail too, but the rename stays in
effect.

# Usage

	$ kwrename -k <keyword> -n <newname> [flags...] [dir]

For example:

	$ kwrename -k temp -n final
	$ kwrename -k old -n new -c "make sync" -v
*/
package main

import (
	_ "embed"

	"go.astrophena.name/kwrename/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
