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

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"github.com/magpierre/simpledt/internal/logging"
	"github.com/magpierre/simpledt/windows"
)

var (
	viewCommand = app.Command("view", "Open sources in the table viewer.").Default()
	viewSources = viewCommand.Arg("source", "Configured source names, file paths or URLs.").Strings()
)

func doView(ctx context.Context) {
	mw := windows.NewMainWindow(fyneapp.NewWithID("simpledt"))
	mw.Options = cliOptions()

	for _, name := range *viewSources {
		adapter, err := openSource(ctx, sources, name, mw.Options)
		if err == nil {
			err = mw.ShowTable(name, adapter)
		}
		if err != nil {
			logging.WithComponent("main").WithError(err).WithField("source", name).Error("failed to open source")
			dialog.ShowError(err, mw.Window())
		}
	}

	mw.ShowAndRun()
}

func init() {
	commandHandlers = append(commandHandlers, func(ctx context.Context, command string) bool {
		switch command {
		case viewCommand.FullCommand():
			doView(ctx)
		default:
			return false
		}
		return true
	})
}
