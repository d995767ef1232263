package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Pecco-314/pecco-lang/internal/compiler"
	"github.com/Pecco-314/pecco-lang/internal/ir"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Build a Pecco file and hand its IR to the external backend",
	Long: `Run the full compilation pipeline and print the resulting IR module.

Pecco's compiler never executes code itself (the object-file emitter
and linker are external collaborators); 'run' exists so the CLI
surface mirrors a typical build/run workflow, printing the IR a
backend would otherwise consume.`,
	Args: cobra.ExactArgs(1),
	RunE: runSource,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runSource(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	res := compiler.CompileWithConfig(path, string(source), cfg.Optimize)
	if err := reportDiagnostics(res.Diagnostics.Items(), string(source)); err != nil {
		return err
	}
	if !res.Succeeded() {
		return fmt.Errorf("compilation failed in the %s stage", res.FailedStage)
	}

	if err := ir.Verify(res.Module); err != nil {
		return fmt.Errorf("internal error: %w", err)
	}

	fmt.Print(ir.Print(res.Module))
	fmt.Fprintln(os.Stderr, "note: peccoc has no built-in backend; hand the IR above to an external object-file emitter to produce a running binary")
	return nil
}
