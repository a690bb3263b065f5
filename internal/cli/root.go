package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BonEvil/DPSessionManager/version"
)

const appName = "dpsession"

// NewRootCommand builds the dpsession command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Declarative HTTP session dispatcher",
		Long: `dpsession dispatches HTTP calls described by a descriptor: method, URL,
request format, expected response format, parameters and headers. Responses
are checked against the expected content type before they are parsed.

Get started:
  dpsession call --url https://api.example.com/items --accept json
  dpsession call --file login.yaml --p12 client.p12 --p12-password secret
  dpsession echo --addr 127.0.0.1:8080`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newCallCommand())
	root.AddCommand(newEchoCommand())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
