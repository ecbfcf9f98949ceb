package dashboard

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

// Transcript roles.
const (
	roleUser = iota
	roleAssistant
)

// Fixed transcript copy. The offline line replaces a pending reply on any
// transport failure; it is never an exception.
const (
	chatPendingText = "Processing..."
	chatOfflineText = "Error: cannot reach the server."
	analystGreeting = "Hello! I'm your campaign analyst. Ask me anything about your prospecting data."
	salesGreeting   = "Hi! I see you don't have any active campaigns yet. I'm your sales assistant — questions about which plan to pick?"
)

// chatEntry is one transcript line. Text is stored verbatim as delivered;
// newline expansion happens at render time only.
type chatEntry struct {
	role    int
	text    string
	pending bool
}

// chatState manages the assistant transcript and input line. It does not
// know which assistant it is talking to: the endpoint is chosen per send
// from the lifecycle stage, so a stage change redirects the very next
// message.
type chatState struct {
	entries  []chatEntry
	input    textinput.Model
	viewport viewport.Model
	width    int
}

// newChatState creates a transcript holding the analyst greeting.
func newChatState() chatState {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = "> "
	return chatState{
		entries:  []chatEntry{{role: roleAssistant, text: analystGreeting}},
		input:    ti,
		viewport: viewport.New(0, 0),
	}
}

// sendChat returns a tea.Cmd that posts one message to the given endpoint
// path and wraps the reply in a ChatReplyMsg for transcript entry index.
func sendChat(sender ChatSender, path, message string, index int) tea.Cmd {
	return func() tea.Msg {
		reply, err := sender.Chat(context.Background(), path, message)
		return ChatReplyMsg{Index: index, Reply: reply, Err: err}
	}
}

// send appends the user's message and a pending placeholder, clears the
// input, and returns the placeholder index for the reply to land in.
// Returns -1 when there is nothing to send.
func (cs chatState) send() (chatState, string, int) {
	text := strings.TrimSpace(cs.input.Value())
	if text == "" {
		return cs, "", -1
	}
	cs.entries = append(cs.entries,
		chatEntry{role: roleUser, text: text},
		chatEntry{role: roleAssistant, text: chatPendingText, pending: true},
	)
	cs.input.Reset()
	cs = cs.syncViewport()
	return cs, text, len(cs.entries) - 1
}

// applyReply resolves the pending entry at index. Failures become the
// fixed offline line; successful replies are stored verbatim.
func (cs chatState) applyReply(msg ChatReplyMsg) chatState {
	if msg.Index < 0 || msg.Index >= len(cs.entries) {
		return cs
	}
	cs.entries[msg.Index].pending = false
	if msg.Err != nil {
		cs.entries[msg.Index].text = chatOfflineText
	} else {
		cs.entries[msg.Index].text = msg.Reply
	}
	return cs.syncViewport()
}

// setSalesGreeting swaps the opening assistant message for the sales
// pitch shown to users with no campaigns yet.
func (cs chatState) setSalesGreeting() chatState {
	if len(cs.entries) > 0 && cs.entries[0].role == roleAssistant {
		cs.entries[0].text = salesGreeting
		return cs.syncViewport()
	}
	return cs
}

// handleKey routes keystrokes to the input line. Send and quit are
// intercepted by the root model.
func (cs chatState) handleKey(msg tea.KeyMsg) (chatState, tea.Cmd) {
	var cmd tea.Cmd
	cs.input, cmd = cs.input.Update(msg)
	return cs, cmd
}

// setSize resizes the transcript viewport and input line.
func (cs chatState) setSize(width, height int) chatState {
	cs.width = width
	cs.viewport.Width = width
	vh := height - 2 // input line + spacing
	if vh < 1 {
		vh = 1
	}
	cs.viewport.Height = vh
	cs.input.Width = width - 4
	return cs.syncViewport()
}

// syncViewport re-renders the transcript into the viewport and scrolls to
// the newest message.
func (cs chatState) syncViewport() chatState {
	cs.viewport.SetContent(cs.renderTranscript())
	cs.viewport.GotoBottom()
	return cs
}

// renderTranscript formats all entries for display.
func (cs chatState) renderTranscript() string {
	width := cs.width
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	for i, e := range cs.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch e.role {
		case roleUser:
			b.WriteString(userMsgStyle.Render("You"))
		default:
			b.WriteString(assistantMsgStyle.Render("Assistant"))
		}
		b.WriteByte('\n')
		text := e.text
		if e.pending {
			text = mutedText.Render(text)
		}
		b.WriteString(wordwrap.String(displayText(text), width))
	}
	return b.String()
}

// displayText expands each newline in a reply into a paragraph break.
// The transcript keeps the verbatim text; this is display-only.
func displayText(s string) string {
	return strings.ReplaceAll(s, "\n", "\n\n")
}

// View renders the chat section.
func (cs chatState) View() string {
	return cs.viewport.View() + "\n\n" + cs.input.View()
}
