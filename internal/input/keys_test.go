package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wesellis/WeatherStar-4000-Python/internal/engine"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		key  Key
		want engine.Command
	}{
		{KeyEscape, engine.Command{Kind: engine.CmdEscape}},
		{KeyQ, engine.Command{Kind: engine.CmdQuit}},
		{KeySpace, engine.Command{Kind: engine.CmdTogglePause}},
		{KeyRight, engine.Command{Kind: engine.CmdNext}},
		{KeyLeft, engine.Command{Kind: engine.CmdPrevious}},
		{KeyM, engine.Command{Kind: engine.CmdToggleMenu}},
		{KeyR, engine.Command{Kind: engine.CmdRefresh}},
		{Key1, engine.Command{Kind: engine.CmdDigit, Digit: 1}},
		{Key7, engine.Command{Kind: engine.CmdDigit, Digit: 7}},
		{Key9, engine.Command{Kind: engine.CmdDigit, Digit: 9}},
	}
	for _, tt := range tests {
		got, ok := Command(tt.key)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got)
	}

	_, ok := Command(Key(0))
	assert.False(t, ok)
	_, ok = Command(Key9 + 1)
	assert.False(t, ok)
}
