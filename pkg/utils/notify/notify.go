// Package notify provides formatted CLI notifications.
//
// Messages are styled by type: success (✔), error (✗), warning (⚠), info (ℹ),
// activity (►), generate (✚), and emoji-prefixed titles. Success messages can
// carry a timer to print a timing block after the message.
package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"

	"github.com/geostack-dev/geostack/pkg/utils/timer"
)

// MessageType defines the type of notification message.
type MessageType int

// Message type constants. Each type determines the message styling (color and symbol).
const (
	// ErrorType represents an error message (red, ✗).
	ErrorType MessageType = iota
	// WarningType represents a warning message (yellow, ⚠).
	WarningType
	// ActivityType represents an activity/progress message (►).
	ActivityType
	// GenerateType represents a file generation message (✚).
	GenerateType
	// SuccessType represents a success message (green, ✔).
	SuccessType
	// InfoType represents an informational message (blue, ℹ).
	InfoType
	// TitleType represents a title message (bold, emoji prefix).
	TitleType
)

// Message represents a notification to be displayed to the user.
type Message struct {
	// Type determines the message styling.
	Type MessageType
	// Content is the message text, optionally with format specifiers.
	Content string
	// Args are format arguments for Content.
	Args []any
	// Emoji customizes the prefix of TitleType messages.
	Emoji string
	// Timer is optional; if set and Type is SuccessType, a timing block is
	// printed after the message.
	Timer timer.Timer
	// Writer is the output destination. Defaults to os.Stdout.
	Writer io.Writer
}

// WriteMessage writes a formatted message based on the message configuration.
//
// For simple cases prefer the convenience functions Errorf, Warningf, Activityf,
// Generatef, Successf, Infof, and Titlef.
func WriteMessage(msg Message) {
	if msg.Writer == nil {
		msg.Writer = os.Stdout
	}

	content := msg.Content
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Content, msg.Args...)
	}

	style := styleFor(msg.Type)
	content = indentContinuationLines(content, style.symbol)

	if msg.Type == TitleType {
		emoji := msg.Emoji
		if emoji == "" {
			emoji = "ℹ️"
		}

		reportWriteError(style.color.Fprintf(msg.Writer, "%s %s\n", emoji, content))

		return
	}

	reportWriteError(style.color.Fprintf(msg.Writer, "%s%s\n", style.symbol, content))

	if msg.Type == SuccessType && msg.Timer != nil {
		total, stage := msg.Timer.GetTiming()

		reportWriteError(style.color.Fprintf(msg.Writer, "⏲ stage: %s\n", stage.String()))
		reportWriteError(style.color.Fprintf(msg.Writer, "  total: %s\n", total.String()))
	}
}

// Errorf writes an error message to the writer.
func Errorf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ErrorType, Content: format, Args: args, Writer: writer})
}

// Warningf writes a warning message to the writer.
func Warningf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: WarningType, Content: format, Args: args, Writer: writer})
}

// Activityf writes an activity/progress message to the writer.
func Activityf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ActivityType, Content: format, Args: args, Writer: writer})
}

// Generatef writes a file generation message to the writer.
func Generatef(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: GenerateType, Content: format, Args: args, Writer: writer})
}

// Successf writes a success message to the writer.
func Successf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Writer: writer})
}

// SuccessWithTimerf writes a success message followed by a timing block.
func SuccessWithTimerf(writer io.Writer, tmr timer.Timer, format string, args ...any) {
	WriteMessage(Message{
		Type:    SuccessType,
		Content: format,
		Args:    args,
		Timer:   tmr,
		Writer:  writer,
	})
}

// Infof writes an informational message to the writer.
func Infof(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: InfoType, Content: format, Args: args, Writer: writer})
}

// Titlef writes a title message with an emoji prefix to the writer.
func Titlef(writer io.Writer, emoji, format string, args ...any) {
	WriteMessage(Message{
		Type:    TitleType,
		Content: fmt.Sprintf(format, args...),
		Emoji:   emoji,
		Writer:  writer,
	})
}

type messageStyle struct {
	symbol string
	color  *fcolor.Color
}

func styleFor(msgType MessageType) messageStyle {
	switch msgType {
	case ErrorType:
		return messageStyle{symbol: "✗ ", color: fcolor.New(fcolor.FgRed)}
	case WarningType:
		return messageStyle{symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)}
	case ActivityType:
		return messageStyle{symbol: "► ", color: fcolor.New(fcolor.Reset)}
	case GenerateType:
		return messageStyle{symbol: "✚ ", color: fcolor.New(fcolor.Reset)}
	case SuccessType:
		return messageStyle{symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)}
	case InfoType:
		return messageStyle{symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)}
	case TitleType:
		return messageStyle{symbol: "", color: fcolor.New(fcolor.Reset, fcolor.Bold)}
	default:
		return messageStyle{symbol: "", color: fcolor.New(fcolor.Reset)}
	}
}

// indentContinuationLines aligns continuation lines of multi-line content with
// the first line's symbol.
func indentContinuationLines(content, symbol string) string {
	if symbol == "" || !strings.Contains(content, "\n") {
		return content
	}

	indent := strings.Repeat(" ", len([]rune(symbol)))
	lines := strings.Split(content, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}

		lines[i] = indent + lines[i]
	}

	return strings.Join(lines, "\n")
}

// reportWriteError logs printing failures to stderr instead of returning them,
// so a broken pipe never masks the command's own error.
func reportWriteError(_ int, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}
