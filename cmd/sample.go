package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/traPtitech/caleidenticon/logging"
	"github.com/traPtitech/caleidenticon/service/identicon"
	"github.com/traPtitech/caleidenticon/utils/random"
)

// sampleCommand ランダムな入力でidenticonを一括生成するコマンド
func sampleCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "sample",
		Short: "Generate identicons for random inputs",
		Run: func(_ *cobra.Command, _ []string) {
			// 各ステップを確認できるよう常にデバッグログを出力する
			logger := mustLogger(logging.Config{Dev: true, Debug: true})
			defer logger.Sync()

			start := time.Now()
			dir := filepath.Join(c.Sample.Dir, fmt.Sprintf("caleidenticon_test_%d", start.Unix()))
			if err := os.MkdirAll(dir, 0o755); err != nil {
				logger.Fatal("failed to create output directory", zap.String("dir", dir), zap.Error(err))
			}

			n, failed, err := runSample(dir, c.Sample.Iterations, c.Sample.Concurrency, c.identiconOptions(logger.Named("identicon")))
			if err != nil {
				logger.Fatal("failed to run sample", zap.Error(err))
			}
			elapsed := time.Since(start)
			logger.Info("sample finished",
				zap.String("dir", dir),
				zap.Int("iterations", n),
				zap.Int64("failed", failed),
				zap.Duration("elapsed", elapsed),
			)

			printInfo("%s", dir)
			if failed > 0 {
				printFail("%d of %d identicons failed", failed, n)
			}
			printSuccess("%d identicons in %s", int64(n)-failed, elapsed)
		},
	}

	flags := cmd.Flags()
	flags.Int("iterations", 20, "number of identicons")
	bindFlagTo(flags, "iterations", "sample.iterations")
	flags.String("dir", ".", "parent directory of the output directory")
	bindFlagTo(flags, "dir", "sample.dir")
	flags.Int("concurrency", 0, "number of concurrent generations")
	bindFlagTo(flags, "concurrency", "sample.concurrency")

	return &cmd
}

// runSample dirにiterations個のidenticonを書き出し、失敗数を返します
func runSample(dir string, iterations, concurrency int, opts identicon.Options) (int, int64, error) {
	if iterations < 0 {
		return 0, 0, fmt.Errorf("invalid iterations: %d", iterations)
	}
	format := opts.Format
	if len(format) == 0 {
		format = identicon.FormatPNG
	}

	var failed atomic.Int64
	eg := new(errgroup.Group)
	eg.SetLimit(max(concurrency, 1))
	for range iterations {
		input := random.Upper(8)
		path := filepath.Join(dir, input+format.Extension())
		eg.Go(func() error {
			if !identicon.CreateAndSave(input, path, opts) {
				failed.Add(1)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return iterations, failed.Load(), err
	}
	return iterations, failed.Load(), nil
}
