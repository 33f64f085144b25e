// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/Neylz/rechiseled-buildersdelight/cmd/rbd"

func main() {
	cmd.Execute()
}
