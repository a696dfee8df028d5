package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/service/identicon"
	"github.com/traPtitech/caleidenticon/utils/storage"
)

// generateCommand 単一のidenticonを生成するコマンド
func generateCommand() *cobra.Command {
	var (
		output string
		format string
		store  bool
	)

	cmd := cobra.Command{
		Use:   "generate <input>",
		Short: "Generate an identicon",
		Long:  "Generate an identicon for <input> and write it to stdout, a file (-o) or the configured storage (--store)",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			logger := getCLILogger()
			defer logger.Sync()

			input := args[0]
			opts := c.identiconOptions(logger.Named("identicon"))
			if len(format) > 0 {
				opts.Format = identicon.Format(format)
			}
			if len(opts.Format) == 0 {
				opts.Format = identicon.FormatPNG
			}

			switch {
			case store:
				fs, err := c.getFileStorage()
				if err != nil {
					logger.Fatal("failed to setup file storage", zap.Error(err))
				}
				key, err := storeIdenticon(fs, output, input, opts)
				if err != nil {
					printFail("%s", err)
					logger.Fatal("failed to store identicon", zap.String("key", key), zap.Error(err))
				}
				printSuccess("stored %s %s", key, dim("("+c.Storage.Type+")"))
			case len(output) > 0:
				if !identicon.CreateAndSave(input, output, opts) {
					printFail("%s", output)
					logger.Fatal("failed to create identicon", zap.String("path", output))
				}
				printSuccess("wrote %s", output)
			default:
				blob, err := identicon.CreateBlob(input, opts)
				if err != nil {
					logger.Fatal("failed to create identicon", zap.Error(err))
				}
				if _, err := os.Stdout.Write(blob); err != nil {
					logger.Fatal("failed to write identicon", zap.Error(err))
				}
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file path (storage key with --store, defaults to the server key)")
	flags.StringVarP(&format, "format", "f", "", "output format (png, gif, tiff)")
	flags.BoolVar(&store, "store", false, "save to the configured storage")

	return &cmd
}

var errNoStorage = errors.New("storage.type is none")

// storeIdenticon inputのidenticonをfsに保存し、使ったキーを返します
//
// keyが空の場合はサーバーと同じキーを使います。
func storeIdenticon(fs storage.FileStorage, key, input string, opts identicon.Options) (string, error) {
	if fs == nil {
		return key, errNoStorage
	}
	if len(key) == 0 {
		prefix, err := identicon.KeyPrefix(opts)
		if err != nil {
			return "", err
		}
		key = identicon.StorageKey(prefix, input, opts.Format)
	}
	return key, identicon.Save(fs, key, input, opts)
}
