package log

import (
	"bytes"
	"testing"

	"github.com/go-kit/log/level"
	dslog "github.com/grafana/dskit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		testName  string
		level     string
		expectDbg bool
		expectErr bool
	}{
		{"Debug", "debug", true, true},
		{"Info", "info", false, true},
		{"Error", "error", false, true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.testName, func(t *testing.T) {
			var lvl dslog.Level
			require.NoError(t, lvl.Set(testCase.level))

			var buf bytes.Buffer
			logger := NewLogger(&buf, lvl)
			level.Debug(logger).Log("msg", "debug message")
			level.Error(logger).Log("msg", "error message")

			out := buf.String()
			assert.Equal(t, testCase.expectDbg, bytes.Contains(buf.Bytes(), []byte("debug message")), out)
			assert.Equal(t, testCase.expectErr, bytes.Contains(buf.Bytes(), []byte("error message")), out)
			assert.Contains(t, out, "caller=log_test.go:")
		})
	}
}

func TestLevel_Invalid(t *testing.T) {
	var lvl dslog.Level
	assert.Error(t, lvl.Set("verbose"))
}
