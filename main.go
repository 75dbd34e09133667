// SPDX-License-Identifier: MPL-2.0

// buildenv reports the build environment: platform identity, special
// folders, working directory and process environment.
package main

import cmd "github.com/invowk/buildenv/cmd/buildenv"

func main() {
	cmd.Execute()
}
