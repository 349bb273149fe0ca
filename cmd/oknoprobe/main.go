// SPDX-License-Identifier: Unlicense OR MIT

// Command oknoprobe exercises the window core from the command line:
// it drives activation scenarios against a backend and inspects
// installer state hives.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
