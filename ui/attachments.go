package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"elroy/session"
	"elroy/utils"
)

// AttachmentWidget displays one pending attachment with a remove button
type AttachmentWidget struct {
	widget.BaseWidget
	attachment session.Attachment
	onRemove   func()
	container  *fyne.Container
}

// NewAttachmentWidget creates a new attachment widget
func NewAttachmentWidget(att session.Attachment, onRemove func()) *AttachmentWidget {
	w := &AttachmentWidget{
		attachment: att,
		onRemove:   onRemove,
	}
	w.ExtendBaseWidget(w)
	return w
}

// CreateRenderer creates the renderer for the attachment widget
func (w *AttachmentWidget) CreateRenderer() fyne.WidgetRenderer {
	var icon fyne.CanvasObject
	if w.attachment.Kind == session.KindImage && len(w.attachment.Data) > 0 {
		img := canvas.NewImageFromResource(fyne.NewStaticResource(
			w.attachment.Name,
			w.attachment.Data,
		))
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(48, 48))
		icon = img
	} else {
		icon = widget.NewIcon(theme.FileIcon())
	}

	fileInfo := widget.NewLabel(fmt.Sprintf("%s (%s)",
		w.attachment.Name,
		utils.FormatFileSize(w.attachment.Size),
	))
	fileInfo.Wrapping = fyne.TextWrapWord

	removeBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if w.onRemove != nil {
			w.onRemove()
		}
	})
	removeBtn.Importance = widget.LowImportance

	content := container.NewBorder(
		nil,
		nil,
		icon,
		removeBtn,
		fileInfo,
	)

	bg := canvas.NewRectangle(color.NRGBA{R: 200, G: 200, B: 200, A: 50})
	bg.CornerRadius = 5

	w.container = container.NewStack(bg, content)

	return widget.NewSimpleRenderer(w.container)
}

// AttachmentBar shows the pending attachment list above the input entry,
// backed by the session's pending list.
type AttachmentBar struct {
	widget.BaseWidget
	app       *App
	container *fyne.Container
}

// NewAttachmentBar creates a new attachment bar
func NewAttachmentBar(app *App) *AttachmentBar {
	bar := &AttachmentBar{app: app}
	bar.ExtendBaseWidget(bar)
	return bar
}

// CreateRenderer creates the renderer for the attachment bar
func (b *AttachmentBar) CreateRenderer() fyne.WidgetRenderer {
	attachBtn := widget.NewButtonWithIcon("Attach files", theme.FileIcon(), func() {
		b.showFilePicker()
	})

	list := container.NewVBox()
	b.updateList(list)

	b.container = container.NewVBox(
		attachBtn,
		list,
	)

	return widget.NewSimpleRenderer(b.container)
}

// showFilePicker shows a file picker dialog
func (b *AttachmentBar) showFilePicker() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			b.app.showError("Failed to open file: " + err.Error())
			return
		}
		if reader == nil {
			return
		}

		path := reader.URI().Path()
		reader.Close()

		utils.SafeGo(b.app.logger, "attach file", func() {
			att, acceptErr := b.app.handler.AcceptFile(path)
			if acceptErr != nil {
				// Unsupported files are dropped, not errored at the user.
				b.app.logger.Warn("File rejected: %v", acceptErr)
				return
			}

			fyne.Do(func() {
				b.app.session.AddAttachment(att)
				b.Refresh()
				b.app.logger.Info("Attachment added: %s (%s)", att.Name, att.MediaType)
			})
		})
	}, b.app.window)
}

// updateList rebuilds the attachment widgets from the session.
func (b *AttachmentBar) updateList(list *fyne.Container) {
	list.Objects = nil

	for i, att := range b.app.session.Attachments() {
		index := i // Capture for closure
		list.Add(NewAttachmentWidget(att, func() {
			b.app.session.RemoveAttachment(index)
			b.Refresh()
		}))
	}
}

// Refresh refreshes the widget
func (b *AttachmentBar) Refresh() {
	if b.container != nil && len(b.container.Objects) > 1 {
		list := b.container.Objects[1].(*fyne.Container)
		b.updateList(list)
		b.container.Refresh()
	}
	b.BaseWidget.Refresh()
}
