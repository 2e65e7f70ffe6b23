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

// Package windows is the table viewer application window.
package windows

import (
	"context"
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/magpierre/simpledt/adapters/generic"
	"github.com/magpierre/simpledt/datatable"
	"github.com/magpierre/simpledt/internal/logging"
	dtwidget "github.com/magpierre/simpledt/widget"
)

// openExtensions are offered by the Open dialog.
var openExtensions = []string{
	".csv", ".tsv", ".txt", ".json", ".jsonl", ".ndjson",
	".xlsx", ".xlsm", ".parquet", ".pq",
}

// tableTab is the content of one doc tab.
type tableTab struct {
	name    string
	adapter *datatable.Adapter
	view    *dtwidget.DataTable
}

// MainWindow shows each opened table in its own tab.
type MainWindow struct {
	a         fyne.App
	w         fyne.Window
	docTabs   *container.DocTabs
	statusBar *widget.Label
	tabs      map[*container.TabItem]*tableTab

	// Options are passed to the generic adapter for files opened from the toolbar.
	Options datatable.Options
}

// NewMainWindow builds the viewer window on a.
func NewMainWindow(a fyne.App) *MainWindow {
	t := &MainWindow{
		a:    a,
		tabs: make(map[*container.TabItem]*tableTab),
	}
	t.a.Settings().SetTheme(&ViewerTheme{})
	t.w = t.a.NewWindow("simpledt")
	t.w.Resize(fyne.NewSize(900, 600))

	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}

	t.docTabs = container.NewDocTabs()
	t.docTabs.CloseIntercept = func(ti *container.TabItem) {
		delete(t.tabs, ti)
		t.docTabs.Remove(ti)
		t.updateStatusForTab(t.docTabs.Selected())
	}
	t.docTabs.OnSelected = t.updateStatusForTab

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), t.OpenFile),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), t.ExportSelected),
		widget.NewToolbarSeparator(),
		widget.NewToolbarSpacer(),
	)

	t.w.SetContent(container.NewBorder(toolbar, container.NewHBox(t.statusBar), nil, nil, t.docTabs))
	return t
}

// Window returns the application window.
func (t *MainWindow) Window() fyne.Window {
	return t.w
}

// ShowAndRun shows the window and runs the application loop.
func (t *MainWindow) ShowAndRun() {
	t.w.ShowAndRun()
}

// SetStatus updates the status bar message
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

// Status returns the status bar message.
func (t *MainWindow) Status() string {
	return t.statusBar.Text
}

// ShowTable displays a rendered adapter in a tab named name. A tab with
// the same name is replaced.
func (t *MainWindow) ShowTable(name string, adapter *datatable.Adapter) error {
	if !adapter.Rendered() {
		return fmt.Errorf("%s: %w", name, datatable.ErrNoDataSource)
	}

	view := dtwidget.NewDataTable(adapter.DataTable)
	view.OnCellSelected(func(row, col int) {
		text, _ := view.CellText(row, col)
		t.SetStatus(fmt.Sprintf("%s [%d, %s]: %s", name, row+1, adapter.DataColumns[col].Name, text))
	})
	tab := &tableTab{name: name, adapter: adapter, view: view}

	for _, item := range t.docTabs.Items {
		if item.Text == name {
			item.Content = view
			t.tabs[item] = tab
			t.docTabs.Select(item)
			t.docTabs.Refresh()
			t.updateStatusForTab(item)
			return nil
		}
	}

	item := container.NewTabItem(name, view)
	t.tabs[item] = tab
	t.docTabs.Append(item)
	t.docTabs.Select(item)
	t.updateStatusForTab(item)
	return nil
}

// TabNames returns the names of the open tabs in order.
func (t *MainWindow) TabNames() []string {
	names := make([]string, len(t.docTabs.Items))
	for i, item := range t.docTabs.Items {
		names[i] = item.Text
	}
	return names
}

// updateStatusForTab updates the status bar with information about the given tab.
func (t *MainWindow) updateStatusForTab(ti *container.TabItem) {
	tab, ok := t.tabs[ti]
	if ti == nil || !ok {
		t.SetStatus("Ready")
		return
	}
	t.SetStatus(fmt.Sprintf("Table %s (%d columns x %d rows)",
		tab.name, len(tab.adapter.DataColumns), len(tab.adapter.DataRows)))
}

// OpenFile asks for a file and loads it in the background.
func (t *MainWindow) OpenFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if reader == nil {
			return
		}
		name := reader.URI().Name()
		t.SetStatus("Loading " + name + "...")
		go func() {
			defer reader.Close()
			err := t.LoadReader(context.Background(), name, reader)
			if err != nil {
				fyne.Do(func() {
					t.SetStatus("Error loading file: " + err.Error())
					dialog.ShowError(err, t.w)
				})
			}
		}()
	}, t.w)
	fd.SetFilter(storage.NewExtensionFileFilter(openExtensions))
	fd.Resize(fyne.NewSize(800, 600))
	fd.Show()
}

// LoadReader renders an open file through the generic adapter and shows
// it. name supplies the extension used for format detection.
func (t *MainWindow) LoadReader(ctx context.Context, name string, r io.Reader) error {
	log := logging.WithComponent("windows").WithField("file", name)

	adapter, err := generic.New(ctx, namedReader{Reader: r, name: name}, t.Options)
	if err != nil {
		log.WithError(err).Warn("failed to load file")
		return err
	}
	log.WithFields(logrus.Fields{
		"columns": len(adapter.DataColumns),
		"rows":    len(adapter.DataRows),
	}).Debug("loaded file")

	var showErr error
	fyne.DoAndWait(func() {
		showErr = t.ShowTable(name, adapter)
	})
	return showErr
}

// ExportSelected saves the selected tab as CSV or JSON.
func (t *MainWindow) ExportSelected() {
	tab, ok := t.tabs[t.docTabs.Selected()]
	if !ok {
		dialog.ShowInformation("Export", "Open a table first", t.w)
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		name := writer.URI().Name()
		if err := Export(tab.adapter.DataTable, writer, ExportFormatFor(name)); err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		t.SetStatus("Exported " + tab.name + " to " + name)
	}, t.w)
	fd.SetFileName(tab.name + ".csv")
	fd.Show()
}

// namedReader carries a file name for format detection.
type namedReader struct {
	io.Reader
	name string
}

func (r namedReader) Name() string {
	return r.name
}
