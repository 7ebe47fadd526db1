package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/haldor-security/log4scan/interp"
	"github.com/haldor-security/log4scan/interp/report"
	"github.com/haldor-security/log4scan/scanconfig"
)

// scanLine is one scanned line's result, carried from a worker goroutine to
// the single printing goroutine.
type scanLine struct {
	result  report.Result
	sawJndi bool
}

var (
	batchCmd = &cobra.Command{
		Use:   "batch",
		Short: "Scans every file matched by scanconfig.yaml, one line at a time",
		Long: `batch reads scanconfig.yaml from --directory, expands its globs into a file
list, and scans every line of every matched file concurrently. One JSON
result line is printed per scanned line whose expansion is valid UTF-8;
other lines are logged as warnings and produce no result line. Exit status
is non-zero if any scanned line tripped a JNDI finding.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := scanconfig.LoadConfig(directory)
			if err != nil {
				return err
			}

			files, err := cfg.Files()
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files matched scanconfig.yaml's globs in %s", directory)
			}

			g := new(errgroup.Group)
			g.SetLimit(cfg.EffectiveWorkers())

			results := make(chan scanLine)
			printDone := make(chan struct{})
			var anyJndi bool
			var printErr error

			go func() {
				defer close(printDone)
				for lr := range results {
					line, err := lr.result.JSONLine()
					if err != nil {
						printErr = fmt.Errorf("encoding result: %w", err)
						continue
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
					if lr.sawJndi {
						anyJndi = true
					}
				}
			}()

			for _, path := range files {
				path := path
				g.Go(func() error {
					return scanFile(path, cfg.EffectiveRecursionLimit(), results)
				})
			}

			scanErr := g.Wait()
			close(results)
			<-printDone

			if scanErr != nil {
				return fmt.Errorf("batch scan: %w", scanErr)
			}
			if printErr != nil {
				return printErr
			}
			if anyJndi {
				os.Exit(1)
			}
			return nil
		},
	}
)

func scanFile(path string, recursionLimit uint64, out chan<- scanLine) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		substituted, findings, err := interp.ParseText(scanner.Text(), recursionLimit)
		if err != nil {
			logger().WithField("file", path).Warn(err.Error())
			continue
		}
		result := report.NewResult(substituted, findings)
		out <- scanLine{result: result, sawJndi: findings.SawJndi}
	}
	return scanner.Err()
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
