// Package options defines shared flag helpers for CLI commands.
package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/client"
	"tableflip.dev/daybook/pkg/entry"
)

// OutputOptions
type OutputOptions struct {
	JSON    bool
	Verbose bool
}

func AddOutputArgs(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.PersistentFlags().BoolVarP(&po.Verbose, "verbose", "v", false,
		"Log requests and state changes to stderr.")
}

// HandleError prints err as {"error": ..., "field"|"status": ...} in JSON mode
// and swallows it so the document is the only output.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]any{
			"error": err.Error(),
		}
		var ve *entry.ValidationError
		if errors.As(err, &ve) {
			out["field"] = ve.Field
		}
		if status := client.StatusCode(err); status != 0 {
			out["status"] = status
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
