package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chronos-tachyon/decrypter/archive"
	"github.com/chronos-tachyon/decrypter/huffman"
)

func (a *app) newCompressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compress <in> <out>",
		Short: "Huffman-compress a UTF-8 text file into an archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			bitstring, table, err := huffman.Compress(string(text))
			if err != nil {
				return err
			}
			data, err := archive.Marshal(bitstring, table)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0644); err != nil {
				return err
			}

			a.logger.Debug("Archive written",
				zap.String("path", args[1]),
				zap.Int("symbols", table.Len()),
				zap.Int("bits", len(bitstring)))
			a.printer.Fprintf(cmd.OutOrStdout(), "%d bytes -> %d bits (%d symbols), archive is %d bytes\n",
				len(text), len(bitstring), table.Len(), len(data))
			return nil
		},
	}
}

func (a *app) newDecompressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decompress <in> <out>",
		Short: "Restore a text file from an archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			bitstring, table, err := archive.Unmarshal(data)
			if err != nil {
				return err
			}
			text, err := huffman.Decompress(bitstring, table)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], []byte(text), 0644); err != nil {
				return err
			}

			a.logger.Debug("Archive restored", zap.String("path", args[1]))
			a.printer.Fprintf(cmd.OutOrStdout(), "%d bits -> %d bytes\n", len(bitstring), len(text))
			return nil
		},
	}
}
