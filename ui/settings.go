package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"elroy/session"
)

// ShowSettingsDialog opens the behavior settings dialog. Applied values
// replace the session settings wholesale and take effect on the next
// send; an in-flight request keeps the settings it started with.
func ShowSettingsDialog(app *App) {
	current := app.session.Settings()

	toneSelect := widget.NewSelect(stringsOf(session.Tones()), nil)
	toneSelect.SetSelected(string(current.Tone))

	depthSelect := widget.NewSelect(stringsOf(session.Depths()), nil)
	depthSelect.SetSelected(string(current.Depth))

	citationSelect := widget.NewSelect(stringsOf(session.CitationModes()), nil)
	citationSelect.SetSelected(string(current.CitationMode))

	tablesCheck := widget.NewCheck("Extract tables from documents", nil)
	tablesCheck.SetChecked(current.ExtractTables)

	imagesCheck := widget.NewCheck("Describe attached images", nil)
	imagesCheck.SetChecked(current.DescribeImages)

	promptEntry := widget.NewMultiLineEntry()
	promptEntry.SetText(current.SystemPrompt)
	promptEntry.Wrapping = fyne.TextWrapWord
	promptEntry.SetMinRowsVisible(4)

	form := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Tone", toneSelect),
			widget.NewFormItem("Depth", depthSelect),
			widget.NewFormItem("Citations", citationSelect),
		),
		tablesCheck,
		imagesCheck,
		widget.NewLabel("System prompt"),
		promptEntry,
	)

	d := dialog.NewCustomConfirm("Settings", "Apply", "Cancel", form, func(apply bool) {
		if !apply {
			return
		}
		app.session.UpdateSettings(session.Settings{
			Tone:           session.Tone(toneSelect.Selected),
			Depth:          session.Depth(depthSelect.Selected),
			CitationMode:   session.CitationMode(citationSelect.Selected),
			ExtractTables:  tablesCheck.Checked,
			DescribeImages: imagesCheck.Checked,
			SystemPrompt:   promptEntry.Text,
		})
		app.logger.Info("Settings updated")
	}, app.window)
	d.Resize(fyne.NewSize(480, 420))
	d.Show()
}

// stringsOf converts a slice of string-backed values for a Select widget.
func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
