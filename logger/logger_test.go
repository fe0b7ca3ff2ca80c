package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		wantErr    bool
	}{
		{
			name:       "JSON output mode",
			jsonOutput: true,
			wantErr:    false,
		},
		{
			name:       "Console output mode",
			jsonOutput: false,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			err := Initialize(tt.jsonOutput)
			if (err != nil) != tt.wantErr {
				t.Errorf("Initialize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if Logger == nil {
				t.Error("Initialize() did not set global Logger")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}

			Cleanup()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{7, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(LevelName(tt.verbosity), func(t *testing.T) {
			if got := VerbosityToLevel(tt.verbosity); got != tt.want {
				t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
			}
		})
	}
}

func TestInitializeWithVerbosityEnablesDebug(t *testing.T) {
	defer func() {
		Verbosity = VerbosityUser
		_ = Initialize(false)
	}()

	if err := InitializeWithVerbosity(false, VerbosityDebug); err != nil {
		t.Fatalf("InitializeWithVerbosity() error = %v", err)
	}
	if !Logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled at -vv")
	}
	if TraceEnabled() {
		t.Error("expected type resolution tracing to need -vvv")
	}

	if err := InitializeWithVerbosity(false, VerbosityTrace); err != nil {
		t.Fatalf("InitializeWithVerbosity() error = %v", err)
	}
	if !TraceEnabled() {
		t.Error("expected tracing at -vvv")
	}

	if err := InitializeWithVerbosity(false, VerbosityUser); err != nil {
		t.Fatalf("InitializeWithVerbosity() error = %v", err)
	}
	if Logger.Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info level to be disabled without -v")
	}
}

func TestLoggingFunctionsWithNilLogger(t *testing.T) {
	Logger = nil
	defer func() { _ = Initialize(false) }()

	// Must not panic
	Infow("info", FieldClass, "Node")
	Infof("info %d", 1)
	Warnw("warn")
	Errorw("error")
	Debugw("debug")
	Cleanup()
}
