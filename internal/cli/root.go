// Package cli implements the mdlite command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	mdlite "github.com/riverfjs/mdlite-go"
	"github.com/riverfjs/mdlite-go/internal/config"
)

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var (
		cfgPath string
		role    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "mdlite",
		Short:         "mdlite: lightweight rich text rendering and QA training data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			if role != "" {
				v.Set("role", role)
			}
			if err := config.CheckConfigValidity(v); err != nil {
				return err
			}
			app, err := BuildApp(v, cmd.ErrOrStderr(), verbose)
			if err != nil {
				return err
			}
			mdlite.SetLogger(app.Log)
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, app))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (toml|yaml|json)")
	cmd.PersistentFlags().StringVar(&role, "role", "", "act as role: admin, developer or user")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newDocCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newComposeCmd())
	cmd.AddCommand(newConfigCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }
	return cmd
}
