package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterLines(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true)
	printer.Success("Document %s!", "inserted")
	printer.Info("matched=%d", 0)
	printer.Warn("careful")
	printer.Error("failed: %v", "boom")
	assert.Equal(t, "Document inserted!\nmatched=0\ncareful\nfailed: boom\n", buf.String())
}

func TestPrinterColor(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).Success("ok")
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "ok")
}

func TestPrinterJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		contains []string
	}{
		{"Document", []byte(`{"name":"Alice","age":30}`), []string{`"name"`, `"Alice"`, `30`}},
		{"Empty", nil, []string{"null"}},
		{"Invalid", []byte(`not json`), []string{"not json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf, true).JSON(tt.data)
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
			assert.NotContains(t, buf.String(), "\x1b[")
		})
	}
}

func TestNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, NoColor(nil))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false, true)
	logger.Debug("hidden")
	logger.Info("shown", "secret", "name")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "secret=name")

	buf.Reset()
	NewLogger(&buf, true, true).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
