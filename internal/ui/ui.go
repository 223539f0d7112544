// Package ui contains shared terminal output helpers.
package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

func PrintTable(data [][]string, writer io.Writer) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to output table: %s", err.Error())
		return
	}

	fmt.Fprintln(writer, str)
}

func Green(a any) string {
	return pterm.Green(a)
}

func Yellow(a any) string {
	return pterm.Yellow(a)
}

func Blue(a any) string {
	return pterm.Blue(a)
}

func Red(a any) string {
	return pterm.Red(a)
}

func Highlight(a any) string {
	return pterm.LightWhite(a)
}
