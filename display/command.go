// Package display renders command results for humans or as JSON.
package display

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/teranos/gdbind/errors"
)

// JSONEnv forces JSON output when set to a true value
const JSONEnv = "GDBIND_JSON"

// ShouldOutputJSON determines if a command should output JSON based on flags and environment
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd != nil {
		if cmd.Flags().Changed("json") {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			return jsonFlag
		}
		if globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json"); globalFlag {
			return true
		}
	}

	enabled, _ := strconv.ParseBool(os.Getenv(JSONEnv))
	return enabled
}

// OutputJSON marshals v with MarshalJSON and writes it to w
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
