package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chronos-tachyon/decrypter/pipeline"
)

func (a *app) newEncodeCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "encode <text-file> <code-file>",
		Short: "Produce a code file from plain text",
		Long: `Enciphers the text, protects every 4 data bits with 3 check bits, and
writes the result as obfuscated bit characters.  The output is what the run
command expects as input.

Example:
  decrypter encode --key python message.txt code.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("key") {
				key = a.cfg.Key
			}

			plain, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			code, err := pipeline.EncodeMessage(string(plain), key)
			if err != nil {
				return fmt.Errorf("encode %s: %w", args[0], err)
			}
			if err := os.WriteFile(args[1], code, 0644); err != nil {
				return err
			}

			a.logger.Info("Code file written",
				zap.String("path", args[1]),
				zap.Int("bits", len(code)))
			a.printer.Fprintf(cmd.OutOrStdout(), "%d characters encoded as %d bits\n", len([]rune(string(plain))), len(code))
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Cipher key (default from config)")
	return cmd
}
