// Command avm checks, runs and formats register-machine programs.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"avm/exec"
	"avm/lang"
	"avm/parser"
	"avm/program"
	"avm/value"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "avm",
	Short:         "typed register-machine program checker and evaluator",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "parse a program and report whether it is well-formed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, diags, err := loadProgram(args[0])
		if err != nil {
			return err
		}
		printDiagnostics(cmd, diags)
		cmd.Printf("%s: well-formed, %d declarations\n", args[0], len(p.Identifiers()))
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run <file> <function> [input...]",
	Short: "evaluate a function over the given inputs",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, diags, err := loadProgram(args[0])
		if err != nil {
			return err
		}
		printDiagnostics(cmd, diags)

		inputs := make([]value.RegisterValue, 0, len(args)-2)
		for _, text := range args[2:] {
			rv, err := parser.ParseValueText(text)
			if err != nil {
				return fmt.Errorf("input %q: %w", text, err)
			}
			inputs = append(inputs, rv)
		}

		outputs, err := exec.NewEvaluator(p).Evaluate(lang.Identifier(args[1]), inputs)
		if err != nil {
			return err
		}
		for _, out := range outputs {
			cmd.Println(out)
		}
		return nil
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "print a program's canonical text form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := loadProgram(args[0])
		if err != nil {
			return err
		}
		cmd.Println(p)
		return nil
	},
}

func loadProgram(path string) (*program.Program, []program.Diagnostic, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return parser.Parse(string(source))
}

func printDiagnostics(cmd *cobra.Command, diags []program.Diagnostic) {
	for _, d := range diags {
		cmd.PrintErrf("warning: %s: %s\n", d.Register, d.Message)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(checkCmd, runCmd, fmtCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
