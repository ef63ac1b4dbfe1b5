// Command decrypter recovers a message from a parity-protected code file and
// exercises the Huffman compressor on it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chronos-tachyon/decrypter/internal/config"
	"github.com/chronos-tachyon/decrypter/internal/logging"
)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	verbose    bool

	cfg     *config.Config
	logger  *zap.Logger
	printer *message.Printer
}

func newRootCmd() *cobra.Command {
	a := &app{printer: message.NewPrinter(language.English)}

	root := &cobra.Command{
		Use:   "decrypter",
		Short: "Recover and compress a parity-protected message",
		Long: `decrypter reads a code file of obfuscated bits, repairs single-bit errors
in each 7-bit group, strips the check bits, and deciphers the resulting text.
The recovered message is then re-enciphered with a random key and run
through a Huffman compressor and decompressor.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.verbose {
				cfg.Logging.Level = "debug"
			}
			a.cfg = cfg

			logger, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(a.newRunCmd())
	root.AddCommand(a.newEncodeCmd())
	root.AddCommand(a.newCompressCmd())
	root.AddCommand(a.newDecompressCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
