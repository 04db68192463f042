// Command keybind manages a local identity, its verified exchange-key
// bindings and its shared groups.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗")+" "+err.Error())
		os.Exit(1)
	}
}
