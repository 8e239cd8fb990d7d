package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	polyeq "github.com/polyeq/polyeq"
)

var (
	equivalentColor    = color.New(color.FgGreen, color.Bold)
	notEquivalentColor = color.New(color.FgRed, color.Bold)
	errorColor         = color.New(color.FgYellow)
)

func printVerdict(w io.Writer, equivalent bool) {
	if equivalent {
		equivalentColor.Fprintln(w, "EQUIVALENT")
	} else {
		notEquivalentColor.Fprintln(w, "NOT EQUIVALENT")
	}
}

// analyze prints the token stream, the AST and the canonical polynomial of
// one expression.
func analyze(w io.Writer, src string) error {
	tokens, err := polyeq.Tokenize(src)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Fprintln(w, "Tokens:")
	for _, tok := range tokens {
		if tok.Kind == polyeq.TokenEOF {
			continue
		}
		fmt.Fprintf(w, "  %-18s %q\n", tok.Kind, tok.Text)
	}

	tree, err := polyeq.Parse(src)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Fprintln(w, "AST:")
	for _, line := range strings.Split(strings.TrimRight(polyeq.PrintAST(tree), "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}

	poly, err := polyeq.NormalizeExpression(tree)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Fprintf(w, "Canonical form: %s\n", poly)
	fmt.Fprintf(w, "Expandable:     %v\n", polyeq.IsExpandable(tree))
	return nil
}

const shellHelp = `Commands:
  <a> == <b>      check two expressions for equivalence
  ast <expr>      show the parse tree
  norm <expr>     show the canonical polynomial form
  help            show this help
  exit            leave the shell`

// shellCommand is the default action: an interactive line-editing shell
// with persistent history.
func shellCommand(ctx *cli.Context) error {
	if ctx.NArg() > 0 {
		return cli.NewExitError(fmt.Sprintf("unknown command: %s", ctx.Args().First()), 1)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := filepath.Join(os.TempDir(), ".polyeq_history")
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println("polyeq shell — type 'help' for commands, 'exit' to quit")
	for {
		input, err := line.Prompt("polyeq> ")
		if err != nil {
			// Ctrl-C aborts the current line, Ctrl-D ends the session.
			if err == liner.ErrPromptAborted {
				continue
			}
			fmt.Println()
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch {
		case input == "exit" || input == "quit":
			return nil
		case input == "help":
			fmt.Println(shellHelp)
		case strings.HasPrefix(input, "ast "):
			runShellAST(strings.TrimSpace(input[4:]))
		case strings.HasPrefix(input, "norm "):
			runShellNorm(strings.TrimSpace(input[5:]))
		case strings.Contains(input, "=="):
			runShellCheck(input)
		default:
			runShellNorm(input)
		}
	}
}

func runShellCheck(input string) {
	parts := strings.SplitN(input, "==", 2)
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		errorColor.Println("usage: <a> == <b>")
		return
	}
	verdict, err := checkPair(a, b)
	if err != nil {
		errorColor.Println(err)
		return
	}
	printVerdict(os.Stdout, verdict)
}

func runShellAST(src string) {
	tree, err := polyeq.Parse(src)
	if err != nil {
		errorColor.Println(err)
		return
	}
	fmt.Print(polyeq.PrintAST(tree))
}

func runShellNorm(src string) {
	tree, err := polyeq.Parse(src)
	if err != nil {
		errorColor.Println(err)
		return
	}
	poly, err := polyeq.NormalizeExpression(tree)
	if err != nil {
		errorColor.Println(err)
		return
	}
	fmt.Println(poly)
}
