package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	var tests = map[string]struct {
		Level     string
		Expected  zapcore.Level
		ExpectErr bool
	}{
		"empty": {
			Level:    "",
			Expected: zapcore.InfoLevel,
		},
		"debug": {
			Level:    "debug",
			Expected: zapcore.DebugLevel,
		},
		"error": {
			Level:    "error",
			Expected: zapcore.ErrorLevel,
		},
		"invalid": {
			Level:     "verbose",
			Expected:  zapcore.InfoLevel,
			ExpectErr: true,
		},
	}

	for testname, tt := range tests {
		t.Run(testname, func(t *testing.T) {
			assert := assert.New(t)

			lvl, err := ParseLevel(tt.Level)

			assert.Equal(tt.Expected, lvl)
			if tt.ExpectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func TestLog_InvalidLevel(t *testing.T) {
	Conf.LogLevel = "verbose"
	t.Cleanup(func() { Conf.LogLevel = "" })

	core := Log().Sub.Core()

	// Falls back to info, errors are still printed
	assert.True(t, core.Enabled(zapcore.ErrorLevel))
	assert.True(t, core.Enabled(zapcore.InfoLevel))
	assert.False(t, core.Enabled(zapcore.DebugLevel))
}
