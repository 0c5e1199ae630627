package main

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/containerd/log"
	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	ar "github.com/please-build/ardump"
	"github.com/please-build/ardump/internal/mapfile"
)

type options struct {
	scan      ar.Options
	debug     bool
	logFormat string
}

func (o *options) installFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&o.scan.Verbose, "verbose", "v", false, "Print every member header and raw symbol index offsets")
	flags.BoolVar(&o.scan.Align, "align", false, "Skip the padding byte after odd-sized members")
	flags.BoolVarP(&o.debug, "debug", "D", false, "Enable debug logging")
	flags.StringVar(&o.logFormat, "log-format", string(log.TextFormat), `Log format ("text"|"json")`)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: expected args == %d, got %d", errdefs.ErrInvalidArgument, n, len(args))
		}
		return nil
	}
}

func newRootCommand(ctx context.Context) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "ardump [OPTIONS] ARCHIVE",
		Short:         "Dump the table of contents of a BSD ar archive",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configureLogging(opts); err != nil {
				return err
			}
			return dump(ctx, cmd, args[0], opts.scan)
		},
	}
	cmd.SetContext(ctx)
	opts.installFlags(cmd.Flags())
	return cmd
}

func configureLogging(opts options) error {
	if err := log.SetFormat(log.OutputFormat(opts.logFormat)); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrInvalidArgument, err)
	}
	if opts.debug {
		return log.SetLevel("debug")
	}
	return nil
}

func dump(ctx context.Context, cmd *cobra.Command, path string, opts ar.Options) error {
	f, err := mapfile.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	data := f.Bytes()
	logger := log.G(ctx).WithFields(log.Fields{
		"archive": path,
		"size":    units.HumanSize(float64(len(data))),
		"verbose": opts.Verbose,
	})
	logger.Debug("scanning archive")

	tr := ar.NewTextReporter(cmd.OutOrStdout(), opts.Verbose)
	if err := ar.Scan(data, tr, opts); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := tr.Err(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Debug("scan complete")
	return nil
}
