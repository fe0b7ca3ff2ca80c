package display

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommand() (*cobra.Command, *cobra.Command) {
	root := &cobra.Command{Use: "gdbind"}
	root.PersistentFlags().Bool("json", false, "")
	child := &cobra.Command{Use: "inspect", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(child)
	return root, child
}

func TestShouldOutputJSON(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  string
		want bool
	}{
		{"default", []string{"inspect"}, "", false},
		{"global flag", []string{"inspect", "--json"}, "", true},
		{"explicit false wins over env", []string{"inspect", "--json=false"}, "1", false},
		{"env", []string{"inspect"}, "true", true},
		{"env not a bool", []string{"inspect"}, "yes please", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(JSONEnv, tt.env)
			root, child := newCommand()
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			assert.Equal(t, tt.want, ShouldOutputJSON(child))
		})
	}

	t.Run("nil command", func(t *testing.T) {
		t.Setenv(JSONEnv, "1")
		assert.True(t, ShouldOutputJSON(nil))
	})
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, map[string]int{"classes": 3}))
	assert.Equal(t, "{\n  \"classes\": 3\n}\n", buf.String())

	t.Setenv(CompactEnv, "1")
	buf.Reset()
	require.NoError(t, OutputJSON(&buf, map[string]int{"classes": 3}))
	assert.Equal(t, "{\"classes\":3}\n", buf.String())
}
