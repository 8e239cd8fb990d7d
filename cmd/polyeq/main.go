// cmd/polyeq/main.go — Command-line front-end for polyeq
//
// Usage:
//   polyeq                          interactive shell
//   polyeq check "x+y" "y+x"        one equivalence check
//   polyeq analyze "(x+1)^2"        tokens, AST and normal form
//   polyeq batch cases.json         run a JSON case file
package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v1"

	polyeq "github.com/polyeq/polyeq"
)

func main() {
	app := cli.NewApp()
	app.Name = "polyeq"
	app.Usage = "decide whether two mathematical expressions are equivalent"
	app.Version = "1.0.0"
	app.Commands = []cli.Command{
		{
			Name:      "check",
			Usage:     "Check two expressions for equivalence",
			ArgsUsage: "<expr-a> <expr-b>",
			Action:    checkCommand,
		},
		{
			Name:      "analyze",
			Usage:     "Show tokens, AST and canonical form of one expression",
			ArgsUsage: "<expr>",
			Action:    analyzeCommand,
		},
		{
			Name:      "batch",
			Usage:     "Run equivalence and analysis cases from a JSON file",
			ArgsUsage: "<file>",
			Action:    batchCommand,
		},
	}
	app.Action = shellCommand

	sort.Sort(cli.CommandsByName(app.Commands))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func checkCommand(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.NewExitError("check needs exactly two expressions", 1)
	}
	verdict, err := checkPair(ctx.Args().Get(0), ctx.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	printVerdict(os.Stdout, verdict)
	return nil
}

func analyzeCommand(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("analyze needs exactly one expression", 1)
	}
	return analyze(os.Stdout, ctx.Args().First())
}

// checkPair parses both sides and runs the equivalence check.
func checkPair(a, b string) (bool, error) {
	ta, err := polyeq.Parse(a)
	if err != nil {
		return false, fmt.Errorf("left: %w", err)
	}
	tb, err := polyeq.Parse(b)
	if err != nil {
		return false, fmt.Errorf("right: %w", err)
	}
	return polyeq.AreEquivalent(ta, tb)
}
