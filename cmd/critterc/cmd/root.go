package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/creaturelang/critterc/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "critterc",
	Short: "Compile SRC programs into creature-world TGT rule scripts",
	Long: `critterc lowers a small statically typed imperative language into the
flat condition/action rule language of a simulated creature world.

It reads a whole SRC program from standard input, runs it through type
checking, inlining, constant folding, if/else hoisting, and block
flattening, and writes the resulting TGT program to standard output.`,
	Version: Version,
	Args:    cobra.NoArgs,
	RunE:    runCompile,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

func runCompile(_ *cobra.Command, _ []string) error {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read standard input: %w", err)
	}

	result := pipeline.Compile(string(source), pipeline.DefaultInlineDepth)

	if len(result.Errors) > 0 {
		fmt.Println("Errors:")
		for _, e := range result.Errors {
			fmt.Println(e)
		}
		return nil
	}

	fmt.Print(result.Output)
	return nil
}
