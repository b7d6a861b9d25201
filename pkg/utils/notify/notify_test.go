package notify_test

import (
	"bytes"
	"testing"
	"time"

	fcolor "github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/geostack-dev/geostack/pkg/utils/notify"
)

func TestMain(m *testing.M) {
	// Deterministic output regardless of the test terminal.
	fcolor.NoColor = true

	m.Run()
}

func TestWriteMessageSymbols(t *testing.T) {
	tests := []struct {
		name    string
		msgType notify.MessageType
		want    string
	}{
		{name: "error", msgType: notify.ErrorType, want: "✗ broken\n"},
		{name: "warning", msgType: notify.WarningType, want: "⚠ broken\n"},
		{name: "activity", msgType: notify.ActivityType, want: "► broken\n"},
		{name: "generate", msgType: notify.GenerateType, want: "✚ broken\n"},
		{name: "success", msgType: notify.SuccessType, want: "✔ broken\n"},
		{name: "info", msgType: notify.InfoType, want: "ℹ broken\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var out bytes.Buffer

			notify.WriteMessage(notify.Message{
				Type:    testCase.msgType,
				Content: "broken",
				Writer:  &out,
			})

			assert.Equal(t, testCase.want, out.String())
		})
	}
}

func TestTitlefUsesEmoji(t *testing.T) {
	var out bytes.Buffer

	notify.Titlef(&out, "🚀", "Deploy '%s'...", "demo")

	assert.Equal(t, "🚀 Deploy 'demo'...\n", out.String())
}

func TestWriteMessageDefaultTitleEmoji(t *testing.T) {
	var out bytes.Buffer

	notify.WriteMessage(notify.Message{Type: notify.TitleType, Content: "Status", Writer: &out})

	assert.Equal(t, "ℹ️ Status\n", out.String())
}

func TestWriteMessageFormatsArgs(t *testing.T) {
	var out bytes.Buffer

	notify.Activityf(&out, "waiting for %s (attempt %d/%d)", "db", 10, 30)

	assert.Equal(t, "► waiting for db (attempt 10/30)\n", out.String())
}

func TestWriteMessageIndentsMultilineContent(t *testing.T) {
	var out bytes.Buffer

	notify.Errorf(&out, "first line\nsecond line")

	assert.Equal(t, "✗ first line\n  second line\n", out.String())
}

type fixedTimer struct{}

func (fixedTimer) Start()    {}
func (fixedTimer) NewStage() {}
func (fixedTimer) GetTiming() (time.Duration, time.Duration) {
	return 3 * time.Second, time.Second
}

func TestSuccessWithTimerPrintsTimingBlock(t *testing.T) {
	var out bytes.Buffer

	notify.SuccessWithTimerf(&out, fixedTimer{}, "deployment complete")

	assert.Equal(t, "✔ deployment complete\n⏲ stage: 1s\n  total: 3s\n", out.String())
}
