package ui

import (
	"context"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"elroy/llm"
	"elroy/session"
	"elroy/utils"
)

// chatEntry extends Entry to send on Ctrl+Enter
type chatEntry struct {
	widget.Entry
	onCtrlEnter func()
}

// TypedShortcut handles keyboard shortcuts
func (e *chatEntry) TypedShortcut(shortcut fyne.Shortcut) {
	if ks, ok := shortcut.(*desktop.CustomShortcut); ok {
		if (ks.KeyName == fyne.KeyReturn || ks.KeyName == fyne.KeyEnter) &&
			ks.Modifier == desktop.ControlModifier {
			if e.onCtrlEnter != nil {
				e.onCtrlEnter()
				return
			}
		}
	}
	e.Entry.TypedShortcut(shortcut)
}

// ChatView is the single chat page: transcript, attachment bar and input.
type ChatView struct {
	app *App

	messagesContainer *fyne.Container
	messagesScroll    *container.Scroll
	inputEntry        *chatEntry
	sendButton        *widget.Button
	attachmentBar     *AttachmentBar
}

// NewChatView creates the chat view
func NewChatView(app *App) *ChatView {
	return &ChatView{app: app}
}

// Build builds the chat view UI
func (cv *ChatView) Build() fyne.CanvasObject {
	cv.messagesContainer = container.NewVBox()
	cv.messagesScroll = container.NewScroll(cv.messagesContainer)
	cv.messagesScroll.SetMinSize(fyne.NewSize(600, 400))

	cv.attachmentBar = NewAttachmentBar(cv.app)

	cv.inputEntry = &chatEntry{}
	cv.inputEntry.MultiLine = true
	cv.inputEntry.Wrapping = fyne.TextWrapBreak
	cv.inputEntry.SetPlaceHolder("Ask about your documents... (Ctrl+Enter to send)")
	cv.inputEntry.SetMinRowsVisible(3)
	cv.inputEntry.onCtrlEnter = func() {
		cv.sendMessage()
	}
	cv.inputEntry.ExtendBaseWidget(cv.inputEntry)

	cv.sendButton = widget.NewButton("Send", func() {
		cv.sendMessage()
	})

	inputWithFiles := container.NewBorder(
		cv.attachmentBar,
		nil,
		nil,
		nil,
		cv.inputEntry,
	)

	inputContainer := container.NewBorder(
		nil,
		nil,
		nil,
		cv.sendButton,
		inputWithFiles,
	)

	return container.NewBorder(
		nil,
		inputContainer,
		nil,
		nil,
		cv.messagesScroll,
	)
}

// sendMessage runs one send: show the user's turn immediately, build the
// payload off the UI thread, call the assistant endpoint once, and append
// either the reply or a failure message. The pending attachment list is
// cleared whatever the outcome.
func (cv *ChatView) sendMessage() {
	input := strings.TrimSpace(cv.inputEntry.Text)
	attachments := cv.app.session.Attachments()
	if input == "" && len(attachments) == 0 {
		return
	}
	if !cv.app.session.BeginSend() {
		return
	}
	cv.sendButton.Disable()

	// Prior turns only; the current turn travels as input + attachments.
	history := cv.app.session.Messages()
	settings := cv.app.session.Settings()

	userMsg := session.NewMessage(session.RoleUser, displayText(input, attachments))
	cv.app.session.Append(userMsg)
	cv.appendMessageUI(userMsg)
	cv.inputEntry.SetText("")

	replyText := widget.NewRichTextFromMarkdown("*Thinking...*")
	replyText.Wrapping = fyne.TextWrapBreak
	roleLabel := widget.NewLabel("Elroy")
	roleLabel.TextStyle = fyne.TextStyle{Bold: true}
	cv.messagesContainer.Add(container.NewVBox(
		roleLabel,
		container.NewPadded(replyText),
		widget.NewSeparator(),
	))
	cv.messagesScroll.ScrollToBottom()

	utils.SafeGo(cv.app.logger, "sendMessage", func() {
		messages := llm.BuildMessages(settings, history, input, attachments)
		reply, err := cv.app.client.Complete(context.Background(), messages)
		if err != nil {
			cv.app.logger.Error("Chat request failed: %v", err)
		}

		assistantMsg := session.NewMessage(session.RoleAssistant, llm.ReplyOrFailure(reply, err))
		cv.app.session.Append(assistantMsg)
		cv.app.session.EndSend()

		fyne.Do(func() {
			replyText.ParseMarkdown(assistantMsg.Text)
			cv.attachmentBar.Refresh()
			cv.sendButton.Enable()
			cv.messagesScroll.ScrollToBottom()
		})
	})
}

// displayText is the user-visible form of the current turn: the typed
// text plus the names of the files going with it.
func displayText(input string, attachments []session.Attachment) string {
	if len(attachments) == 0 {
		return input
	}
	names := make([]string, 0, len(attachments))
	for _, att := range attachments {
		names = append(names, att.Name)
	}
	suffix := "[attached: " + strings.Join(names, ", ") + "]"
	if input == "" {
		return suffix
	}
	return input + "\n\n" + suffix
}

// appendMessageUI adds one transcript entry to the messages container.
func (cv *ChatView) appendMessageUI(msg session.Message) {
	roleName := "You"
	if msg.Role == session.RoleAssistant {
		roleName = "Elroy"
	}
	roleLabel := widget.NewLabel(roleName)
	roleLabel.TextStyle = fyne.TextStyle{Bold: true}

	var body fyne.CanvasObject
	if msg.Role == session.RoleAssistant {
		richText := widget.NewRichTextFromMarkdown(msg.Text)
		richText.Wrapping = fyne.TextWrapBreak
		body = richText
	} else {
		label := widget.NewLabel(msg.Text)
		label.Wrapping = fyne.TextWrapWord
		body = label
	}

	cv.messagesContainer.Add(container.NewVBox(
		roleLabel,
		container.NewPadded(body),
		widget.NewSeparator(),
	))
	cv.messagesScroll.ScrollToBottom()
}

// ReloadMessages rebuilds the transcript display from the session.
func (cv *ChatView) ReloadMessages() {
	cv.messagesContainer.Objects = nil
	for _, msg := range cv.app.session.Messages() {
		cv.appendMessageUI(msg)
	}
	cv.messagesContainer.Refresh()
}
