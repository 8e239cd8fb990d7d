package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	polyeq "github.com/polyeq/polyeq"
)

// batchFile is the on-disk case format: named equivalence pairs with their
// expected verdict, plus expressions to normalize and display.
type batchFile struct {
	Equivalence []equivalenceCase `json:"equivalence"`
	Analysis    []analysisCase    `json:"analysis"`
}

type equivalenceCase struct {
	Name string `json:"name"`
	A    string `json:"a"`
	B    string `json:"b"`
	Want bool   `json:"want"`
}

type analysisCase struct {
	Name string `json:"name"`
	Expr string `json:"expr"`
}

func batchCommand(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("batch needs a JSON case file", 1)
	}
	data, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	var cases batchFile
	if err := json.Unmarshal(data, &cases); err != nil {
		return cli.NewExitError(fmt.Sprintf("parse case file: %v", err), 1)
	}

	failed := 0
	if len(cases.Equivalence) > 0 {
		failed = runEquivalenceCases(cases.Equivalence)
	}
	if len(cases.Analysis) > 0 {
		runAnalysisCases(cases.Analysis)
	}
	if failed > 0 {
		return cli.NewExitError(fmt.Sprintf("%d case(s) failed", failed), 1)
	}
	return nil
}

func runEquivalenceCases(cases []equivalenceCase) int {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "A", "B", "Want", "Got", "Status"})
	failed := 0
	for _, c := range cases {
		got, err := checkPair(c.A, c.B)
		var gotText, status string
		switch {
		case err != nil:
			gotText = "error: " + err.Error()
			status = "FAIL"
		case got == c.Want:
			gotText = verdictText(got)
			status = "PASS"
		default:
			gotText = verdictText(got)
			status = "FAIL"
		}
		if status == "FAIL" {
			failed++
		}
		table.Append([]string{c.Name, c.A, c.B, verdictText(c.Want), gotText, status})
	}
	table.Render()
	fmt.Printf("%d/%d equivalence cases passed\n", len(cases)-failed, len(cases))
	return failed
}

func runAnalysisCases(cases []analysisCase) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Expression", "Canonical Form"})
	for _, c := range cases {
		canonical := ""
		tree, err := polyeq.Parse(c.Expr)
		if err == nil {
			var poly polyeq.Polynomial
			if poly, err = polyeq.NormalizeExpression(tree); err == nil {
				canonical = poly.String()
			}
		}
		if err != nil {
			canonical = "error: " + err.Error()
		}
		table.Append([]string{c.Name, c.Expr, canonical})
	}
	table.Render()
}

func verdictText(equivalent bool) string {
	if equivalent {
		return "equivalent"
	}
	return "not equivalent"
}
