// Package cli holds the hospital-admin commands.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const serviceName = "hospital-admin"

// NewRootCmd builds the command tree. open is used by the commands that only
// need the database.
func NewRootCmd(open OpenDB) *cobra.Command {
	var envLoaded bool
	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Hospital administration web application",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			envLoaded = godotenv.Load() == nil
		},
	}

	root.AddCommand(serveCmd(func() bool { return envLoaded }))
	root.AddCommand(accessCodeCmd(open))
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd(openFromEnv).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
