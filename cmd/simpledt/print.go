// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/olekukonko/tablewriter"

	"github.com/magpierre/simpledt/datatable"
)

var (
	printCommand = app.Command("print", "Print a table to the terminal.")
	printSource  = printCommand.Arg("source", "Configured source name, file path or URL.").
			Required().String()
	printMaxRows = printCommand.Flag("max-rows", "Print at most this many rows (0 prints all).").
			Default("0").Int()
)

func doPrint(ctx context.Context) {
	adapter, err := openSource(ctx, sources, *printSource, cliOptions())
	kingpin.FatalIfError(err, "Unable to load %s", *printSource)

	kingpin.FatalIfError(printTable(os.Stdout, adapter.DataTable, *printMaxRows), "print")
}

// printTable writes rt as a bordered text table. maxRows <= 0 writes every row.
func printTable(w io.Writer, rt *datatable.RenderedTable, maxRows int) error {
	rows := rt.Strings()
	truncated := 0
	if maxRows > 0 && len(rows) > maxRows {
		truncated = len(rows) - maxRows
		rows = rows[:maxRows]
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(rt.ColumnNames())
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()

	if truncated > 0 {
		if _, err := fmt.Fprintf(w, "... %d more rows\n", truncated); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	commandHandlers = append(commandHandlers, func(ctx context.Context, command string) bool {
		switch command {
		case printCommand.FullCommand():
			doPrint(ctx)
		default:
			return false
		}
		return true
	})
}
