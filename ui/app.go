package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"elroy/attach"
	"elroy/llm"
	"elroy/session"
	"elroy/utils"
)

// App represents the main application
type App struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     *utils.Config
	configPath string
	logger     *utils.Logger

	session *session.Session
	client  *llm.Client
	handler *attach.Handler

	chatView *ChatView
}

// NewApp creates a new application instance
func NewApp(config *utils.Config, configPath string, logger *utils.Logger) *App {
	fyneApp := app.NewWithID("elroy")
	window := fyneApp.NewWindow("Elroy")

	window.Resize(fyne.NewSize(
		float32(config.UI.WindowWidth),
		float32(config.UI.WindowHeight),
	))

	application := &App{
		fyneApp:    fyneApp,
		window:     window,
		config:     config,
		configPath: configPath,
		logger:     logger,
		session:    session.New(config.Behavior.Settings()),
		client:     llm.NewClient(llm.Config{}),
		handler:    attach.NewHandler(),
	}

	// Save window size when closing
	window.SetOnClosed(func() {
		size := window.Canvas().Size()
		application.config.UI.WindowWidth = int(size.Width)
		application.config.UI.WindowHeight = int(size.Height)
		if err := utils.SaveConfig(application.configPath, application.config); err != nil {
			application.logger.Error("Failed to save window size: %v", err)
		}
	})

	application.applyThemeFromConfig()
	application.buildUI()
	application.setupDragAndDrop()

	return application
}

// buildUI builds the single-page chat UI
func (a *App) buildUI() {
	a.chatView = NewChatView(a)

	newChatButton := widget.NewButton("New chat", func() {
		a.clearConversation()
	})
	newChatButton.Importance = widget.LowImportance

	exportButton := widget.NewButton("Export", func() {
		a.exportTranscript()
	})
	exportButton.Importance = widget.LowImportance

	settingsButton := widget.NewButton("Settings", func() {
		ShowSettingsDialog(a)
	})
	settingsButton.Importance = widget.LowImportance

	title := widget.NewLabel("Elroy")
	title.TextStyle = fyne.TextStyle{Bold: true}

	topBar := container.NewBorder(
		nil,
		widget.NewSeparator(),
		title,
		container.NewHBox(newChatButton, exportButton, settingsButton),
	)

	a.window.SetContent(container.NewBorder(
		topBar,
		nil,
		nil,
		nil,
		a.chatView.Build(),
	))
}

// setupDragAndDrop accepts files dropped anywhere on the window through
// the same acceptance path as the file picker.
func (a *App) setupDragAndDrop() {
	a.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		for _, uri := range uris {
			path := uri.Path()
			utils.SafeGo(a.logger, "dropped file", func() {
				att, err := a.handler.AcceptFile(path)
				if err != nil {
					// Unsupported files are dropped, not errored at the user.
					a.logger.Warn("Dropped file rejected: %v", err)
					return
				}
				fyne.Do(func() {
					a.session.AddAttachment(att)
					a.chatView.attachmentBar.Refresh()
					a.logger.Info("Attachment added: %s (%s)", att.Name, att.MediaType)
				})
			})
		}
	})
}

// clearConversation empties the transcript. Settings and pending
// attachments stay as they are.
func (a *App) clearConversation() {
	a.session.Clear()
	a.chatView.ReloadMessages()
	a.logger.Info("Conversation cleared")
}

// exportTranscript saves the transcript as a JSON download.
func (a *App) exportTranscript() {
	messages := a.session.Messages()
	if len(messages) == 0 {
		a.showError("Nothing to export yet")
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError("Export failed: " + err.Error())
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		data, err := utils.MarshalTranscript(messages)
		if err != nil {
			a.showError("Export failed: " + err.Error())
			return
		}
		if _, err := writer.Write(data); err != nil {
			a.showError("Export failed: " + err.Error())
			return
		}
		a.logger.Info("Transcript exported: %s", writer.URI().Name())
	}, a.window)
	d.SetFileName(utils.ExportFilename(time.Now()))
	d.Show()
}

// showError displays an error message dialog
func (a *App) showError(message string) {
	var popup *widget.PopUp
	popup = widget.NewModalPopUp(
		container.NewVBox(
			widget.NewLabel("Error"),
			widget.NewLabel(message),
			widget.NewButton("OK", func() {
				popup.Hide()
			}),
		),
		a.window.Canvas(),
	)
	popup.Show()
}

// applyThemeFromConfig applies the configured theme and font size
func (a *App) applyThemeFromConfig() {
	isDark := a.config.UI.Theme == "dark"
	fontSize := a.config.UI.FontSize
	if fontSize < 10 {
		fontSize = 14
	}

	a.fyneApp.Settings().SetTheme(newCustomTheme(fontSize, isDark))
}

// Run shows the main window and runs the event loop.
func (a *App) Run() {
	a.window.ShowAndRun()
}

// Cleanup releases resources on shutdown.
func (a *App) Cleanup() {
	if a.logger != nil {
		a.logger.Close()
	}
}
