package cmd

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/haldor-security/log4scan/interp"
	"github.com/haldor-security/log4scan/interp/report"
)

var (
	rootCmd = &cobra.Command{
		Use:          "log4scan <string>",
		Short:        "log4scan",
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		Long: `log4scan interprets a string the way a vulnerable log4j message template
would, without performing any of the resulting lookups, and reports whether
expansion reached a JNDI, environment, or main-argument lookup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("expected exactly one argument: the string to scan")
			}

			substituted, findings, err := interp.ParseText(args[0], interp.MaxRecursion)
			if err != nil {
				var decodeErr interp.DecodeError
				if errors.As(err, &decodeErr) {
					return decodeErr
				}
				return err
			}

			result := report.NewResult(substituted, findings)
			if debug {
				fmt.Fprintln(cmd.OutOrStdout(), result.Debug())
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Plain())
			return nil
		},
	}

	debug     bool
	directory string
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print a repr-formatted debug dump of findings instead of the plain form")
	rootCmd.PersistentFlags().StringVarP(&directory, "directory", "d", ".", "directory containing scanconfig.yaml, for the batch subcommand")
	return rootCmd.Execute()
}

func logger() logrus.FieldLogger {
	return logrus.StandardLogger()
}
