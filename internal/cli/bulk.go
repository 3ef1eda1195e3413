package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/artpar/kvdraft/internal/bulktext"
	"github.com/artpar/kvdraft/internal/core"
	"github.com/spf13/cobra"
)

// NewBulkCommand creates the bulk command converting between JSON objects
// and bulk text.
func NewBulkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Convert between JSON objects and bulk key/value text",
	}
	cmd.AddCommand(newBulkEncodeCommand())
	cmd.AddCommand(newBulkDecodeCommand())
	return cmd
}

func newBulkEncodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encode",
		Short: "Read a JSON object of strings from stdin and print it as bulk text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			m := core.NewMapping()
			if err := json.Unmarshal(data, m); err != nil {
				return fmt.Errorf("invalid JSON object: %w", err)
			}
			text := bulktext.Encode(m)
			if text == "" {
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newBulkDecodeCommand() *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Read bulk text from stdin and print it as a JSON object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			m := bulktext.Decode(string(data))

			var out []byte
			if compact {
				out, err = json.Marshal(m)
			} else {
				out, err = json.MarshalIndent(m, "", "  ")
			}
			if err != nil {
				return fmt.Errorf("failed to encode JSON: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Print the object on one line")
	return cmd
}
