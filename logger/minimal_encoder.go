package logger

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the ANSI colors of one theme
type palette struct {
	fg        string
	time      string
	component string
	id        string
	number    string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

// Gruvbox Dark color palette (warm, muted, easy on eyes)
var gruvbox = palette{
	fg:        "\x1b[38;5;223m", // Soft cream (#ebdbb2)
	time:      "\x1b[38;5;108m", // Muted cyan-green (#8ec07c)
	component: "\x1b[38;5;208m", // Warm orange (#fe8019)
	id:        "\x1b[38;5;109m", // Soft blue (#83a598)
	number:    "\x1b[38;5;175m", // Muted purple (#d3869b)
	warn:      "\x1b[38;5;214m", // Soft yellow (#fabd2f)
	warnBg:    "\x1b[48;5;58m",  // Dark yellow background
	err:       "\x1b[38;5;167m", // Warm red (#fb4934)
	errBg:     "\x1b[48;5;88m",  // Dark red background
}

// Everforest Dark color palette (natural forest greens)
var everforest = palette{
	fg:        "\x1b[38;5;223m", // Soft beige (#d3c6aa)
	time:      "\x1b[38;5;107m", // Mid green (#83c092)
	component: "\x1b[38;5;108m", // Bright green (#a7c080)
	id:        "\x1b[38;5;109m", // Blue-green (#7fbbb3)
	number:    "\x1b[38;5;108m", // Bright green (#a7c080)
	warn:      "\x1b[38;5;179m", // Soft yellow (#dbbc7f)
	warnBg:    "\x1b[48;5;58m",  // Dark yellow background
	err:       "\x1b[38;5;167m", // Warm red (#e67e80)
	errBg:     "\x1b[48;5;52m",  // Dark red background
}

// Current active theme (set by Initialize from GDBIND_LOG_THEME or config)
var currentTheme = "everforest"

// SetTheme configures the color scheme for log output
func SetTheme(theme string) {
	if theme == "everforest" || theme == "gruvbox" {
		currentTheme = theme
	}
}

func colors() palette {
	if currentTheme == "gruvbox" {
		return gruvbox
	}
	return everforest
}

// minimalEncoder implements a calm, compact console encoder with theme support
// Format: "13:04:35  codegen  Add engine class  Node3D"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := buffer.NewPool().Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for WARN/ERROR with bold + background
	if lvl := levelColorString(ent.Level); lvl != "" {
		final.AppendString("  ")
		final.AppendString(lvl)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(c.component)
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(c.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if values := extractFieldValues(fields); values != "" {
		final.AppendString("  ")
		final.AppendString(values)
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	c := colors()
	switch level {
	case zapcore.WarnLevel:
		return colorBold + c.warnBg + c.warn + "WARN" + colorReset
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + c.errBg + c.err + level.CapitalString() + colorReset
	default:
		return ""
	}
}

// abbreviateName shortens component names: gen.golang -> g.golang
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// getFieldValue extracts the value from a zap field, handling different field types
func getFieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.BoolType:
		return fmt.Sprintf("%t", field.Integer == 1)
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.Float64Type:
		return strconv.FormatFloat(math.Float64frombits(uint64(field.Integer)), 'g', -1, 64)
	case zapcore.Float32Type:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(field.Integer))), 'g', -1, 32)
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error()
		}
	}

	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}
	return ""
}

// extractFieldValues renders every field as "key=value", with identifiers
// and numbers colored by theme. No field is ever dropped.
func extractFieldValues(fields []zapcore.Field) string {
	c := colors()
	var values []string

	for _, field := range fields {
		val := getFieldValue(field)
		if val == "" {
			continue
		}

		color := c.fg
		switch field.Key {
		case FieldClass, FieldGodotClass, FieldBase, FieldEnum, FieldType, FieldGoType:
			color = c.id
		case FieldCount, FieldClasses, FieldOwnEnums, FieldSharedEnum, FieldDurationMS:
			color = c.number
		case FieldError:
			color = c.err
		}

		values = append(values, field.Key+"="+color+val+colorReset)
	}

	return strings.Join(values, " ")
}
