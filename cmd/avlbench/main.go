// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Command avlbench times bulk insertion into an AVL tree against a B-tree
// reference map and reports the resulting tree height.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func traceLevel(name string) (tracing.TraceLevel, error) {
	switch name {
	case "debug":
		return tracing.LevelDebug, nil
	case "info":
		return tracing.LevelInfo, nil
	case "error":
		return tracing.LevelError, nil
	}
	return tracing.LevelError, fmt.Errorf("unknown trace level %q", name)
}

func main() {
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)

	run := defaultRun

	var cmdRun = &cobra.Command{
		Use:   "run",
		Short: "Time bulk insertion into an AVL tree and a reference B-tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := traceLevel(cmd.Flag("trace").Value.String())
			if err != nil {
				return err
			}
			gtrace.CoreTracer.SetTraceLevel(level)

			runs := []RunConfig{run}
			if path := cmd.Flag("config").Value.String(); path != "" {
				config, err := LoadConfig(path)
				if err != nil {
					return err
				}
				runs = config.Runs
			} else if err := run.validate(); err != nil {
				return err
			}

			quiet, _ := cmd.Flags().GetBool("quiet")
			for _, rc := range runs {
				var progress io.Writer = os.Stderr
				if quiet {
					progress = nil
				}
				res, err := runBenchmark(rc, progress)
				if err != nil {
					return err
				}
				report(cmd.OutOrStdout(), res)
			}
			return nil
		},
	}
	cmdRun.Flags().IntVar(&run.Size, "size", defaultRun.Size, "number of keys to insert")
	cmdRun.Flags().StringVar(&run.Order, "order", defaultRun.Order, "key order: shuffled, ascending or descending")
	cmdRun.Flags().Int64Var(&run.Seed, "seed", defaultRun.Seed, "seed for shuffled key order")
	cmdRun.Flags().IntVar(&run.DeleteEvery, "delete-every", 0, "delete one earlier key after every n inserts")
	cmdRun.Flags().BoolVar(&run.Verify, "verify", defaultRun.Verify, "check tree invariants and contents after the run")
	cmdRun.Flags().String("config", "", "YAML run file, overrides the run flags")
	cmdRun.Flags().String("trace", "error", "trace level: debug, info or error")
	cmdRun.Flags().Bool("quiet", false, "do not show a progress bar")

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print avlbench version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:          "avlbench",
		Version:      version,
		Short:        "Benchmark driver for the avl package",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(cmdRun, cmdVersion)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
