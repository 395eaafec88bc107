// Command critterc compiles a SRC program read from standard input into
// a TGT rule program written to standard output.
package main

import (
	"os"

	"github.com/creaturelang/critterc/cmd/critterc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
