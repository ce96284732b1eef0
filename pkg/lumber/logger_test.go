package lumber

import (
	"os"
	"path/filepath"
	"testing"

	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		instance int
		config   LoggingConfig
		wantErr  error
	}{
		{name: "zap_console", instance: InstanceZapLogger, config: LoggingConfig{EnableConsole: true, ConsoleLevel: Info}},
		{name: "logrus_console", instance: InstanceLogrusLogger, config: LoggingConfig{EnableConsole: true, ConsoleLevel: Warn}},
		{name: "unknown_instance", instance: 42, wantErr: errs.ErrInvalidLoggerInstance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			logger, err := NewLogger(&cfg, false, tt.instance)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger.WithFields(Fields{"run_id": "abc"}))
		})
	}
}

func TestNewLoggerVerboseForcesDebug(t *testing.T) {
	cfg := LoggingConfig{EnableConsole: true, ConsoleLevel: Error}
	_, err := NewLogger(&cfg, true, InstanceZapLogger)
	require.NoError(t, err)
	assert.Equal(t, Debug, cfg.ConsoleLevel)
}

func TestLogrusInvalidLevel(t *testing.T) {
	cfg := LoggingConfig{EnableConsole: true, ConsoleLevel: "chatty"}
	_, err := NewLogger(&cfg, false, InstanceLogrusLogger)
	assert.Error(t, err)
}

func TestZapFileOutput(t *testing.T) {
	location := filepath.Join(t.TempDir(), "ci.log")
	cfg := LoggingConfig{EnableFile: true, FileJSONFormat: true, FileLevel: Debug, FileLocation: location}
	logger, err := NewLogger(&cfg, false, InstanceZapLogger)
	require.NoError(t, err)

	logger.WithFields(Fields{"collection": "a.b"}).Infof("planned %d targets", 3)

	content, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Contains(t, string(content), "planned 3 targets")
	assert.Contains(t, string(content), `"collection":"a.b"`)
}
