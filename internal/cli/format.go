package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/artpar/kvdraft/internal/core"
	"github.com/spf13/cobra"
)

// NewFormatJSONCommand creates the format-json command. Input that is not
// JSON is printed unchanged.
func NewFormatJSONCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format-json",
		Short: "Pretty print JSON read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), core.FormatJSON(string(data)))
			return err
		},
	}
}

// NewFormatErrorCommand creates the format-error command rendering a backend
// error message for display.
func NewFormatErrorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format-error [MESSAGE...]",
		Short: "Format a backend error message for display",
		Long:  "Format a backend error message for display. Without arguments the message is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				message = strings.TrimRight(string(data), "\n")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), core.FormatBackendError(message))
			return err
		},
	}
}
