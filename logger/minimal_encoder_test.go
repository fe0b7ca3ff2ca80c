package logger

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

// The minimal encoder must never silently discard log fields.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Now(),
		LoggerName: "codegen",
		Message:    "Add engine class",
	}

	testFields := []struct {
		field    zapcore.Field
		mustFind string
	}{
		{zap.String(FieldClass, "Node3D"), "class=Node3D"},
		{zap.String(FieldGodotClass, "GLTFDocument"), "godot_class=GLTFDocument"},
		{zap.String(FieldEnum, "NodeNotification"), "enum=NodeNotification"},
		{zap.Bool(FieldOwned, false), "owned=false"},
		{zap.Int(FieldClasses, 912), "classes=912"},
		{zap.Int32("int32_field", 42), "int32_field=42"},
		{zap.Float64("ratio", 0.5), "ratio=0.5"},
		{zap.String("random_field_xyz", "important_data"), "random_field_xyz=important_data"},
		{zap.Error(nil), ""},
		{zap.String(FieldError, "duplicate inheritance insert"), "error=duplicate inheritance insert"},
	}

	var allFields []zapcore.Field
	for _, tf := range testFields {
		allFields = append(allFields, tf.field)
	}

	buf, err := encoder.EncodeEntry(entry, allFields)
	if err != nil {
		t.Fatalf("Failed to encode entry: %v", err)
	}

	cleanOutput := stripANSI(buf.String())
	for _, tf := range testFields {
		if tf.mustFind != "" && !strings.Contains(cleanOutput, tf.mustFind) {
			t.Errorf("field was discarded from log output: %s\noutput: %s", tf.mustFind, cleanOutput)
		}
	}
}

func TestMinimalEncoderLevels(t *testing.T) {
	encoder := newMinimalEncoder()

	tests := []struct {
		level    zapcore.Level
		mustFind string
	}{
		{zapcore.InfoLevel, ""},
		{zapcore.WarnLevel, "WARN"},
		{zapcore.ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			buf, err := encoder.EncodeEntry(zapcore.Entry{
				Level:   tt.level,
				Time:    time.Now(),
				Message: "msg",
			}, nil)
			if err != nil {
				t.Fatalf("Failed to encode entry: %v", err)
			}
			out := stripANSI(buf.String())
			if tt.mustFind == "" {
				if strings.Contains(out, "WARN") || strings.Contains(out, "ERROR") {
					t.Errorf("info entry should not carry a level label: %q", out)
				}
				return
			}
			if !strings.Contains(out, tt.mustFind) {
				t.Errorf("expected %q in %q", tt.mustFind, out)
			}
		})
	}
}

func TestAbbreviateName(t *testing.T) {
	tests := map[string]string{
		"codegen":    "codegen",
		"gen.golang": "g.golang",
		"a.b.c":      "a.b.c",
	}
	for in, want := range tests {
		if got := abbreviateName(in); got != want {
			t.Errorf("abbreviateName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("everforest")

	SetTheme("gruvbox")
	if colors() != gruvbox {
		t.Error("expected gruvbox palette")
	}

	SetTheme("solarized")
	if colors() != gruvbox {
		t.Error("unknown theme should be ignored")
	}

	SetTheme("everforest")
	if colors() != everforest {
		t.Error("expected everforest palette")
	}
}
