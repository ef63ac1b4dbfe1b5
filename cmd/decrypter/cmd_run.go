package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chronos-tachyon/decrypter/pipeline"
)

var errPipelineIncomplete = errors.New("pipeline did not complete")

func (a *app) newRunCmd() *cobra.Command {
	var (
		input   string
		key     string
		strict  bool
		workers int
		archive string
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full recovery pipeline and print the report",
		Long: `Runs every stage in order:
  1. read        reveal the bits of the code file
  2. correct     repair single-bit errors in each 7-bit group
  3. reduce      drop the three check bits of each group
  4. assemble    pack the data bits into characters
  5. decipher    undo the rotation cipher
  6. encipher    re-encipher with a random key
  7. compress    Huffman-encode the ciphertext
  8. decompress  decode it again and compare`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("input") {
				a.cfg.Input = input
			}
			if flags.Changed("key") {
				a.cfg.Key = key
			}
			if flags.Changed("strict") {
				a.cfg.Strict = strict
			}
			if flags.Changed("workers") {
				a.cfg.Workers = workers
			}
			if flags.Changed("archive") {
				a.cfg.Archive = archive
			}
			if flags.Changed("seed") {
				a.cfg.Seed = seed
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := pipeline.Options{
				Input:   a.cfg.Input,
				Key:     a.cfg.Key,
				Strict:  a.cfg.Strict,
				Workers: a.cfg.Workers,
				Archive: a.cfg.Archive,
				Logger:  a.logger,
			}
			if a.cfg.Seed != 0 {
				opts.Rand = rand.New(rand.NewSource(a.cfg.Seed))
			}

			report := pipeline.New(opts).Run(ctx)
			if _, err := report.WriteTo(cmd.OutOrStdout()); err != nil {
				return err
			}
			if !report.OK() {
				a.logger.Error("Pipeline incomplete",
					zap.String("run_id", report.RunID),
					zap.Int("errors", len(report.Errors())))
				return errPipelineIncomplete
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input, "input", "i", "", "Code file to read (default from config)")
	flags.StringVarP(&key, "key", "k", "", "Cipher key (default from config)")
	flags.BoolVar(&strict, "strict", false, "Reject a trailing partial 7-bit group")
	flags.IntVarP(&workers, "workers", "w", 1, "Correct groups with this many goroutines")
	flags.StringVarP(&archive, "archive", "a", "", "Also write the compressed output to this file")
	flags.Int64Var(&seed, "seed", 0, "Seed for the re-encipher key (0 = clock)")
	return cmd
}
