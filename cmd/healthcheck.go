package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/router/consts"
)

var errUnexpectedStatus = errors.New("unexpected status")

// healthcheckCommand ヘルスチェックコマンド
func healthcheckCommand() *cobra.Command {
	var timeout time.Duration

	cmd := cobra.Command{
		Use:   "healthcheck",
		Short: "Check that the local server answers ping",
		Run: func(_ *cobra.Command, _ []string) {
			logger := getCLILogger()
			defer logger.Sync()

			url := pingURL("localhost", c.Port)
			if err := healthcheck(&http.Client{Timeout: timeout}, url); err != nil {
				logger.Fatal("healthcheck failed", zap.String("url", url), zap.Duration("timeout", timeout), zap.Error(err))
			}
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")

	return &cmd
}

func pingURL(host string, port int) string {
	return fmt.Sprintf("http://%s:%d%s%s", host, port, consts.PathAPI, consts.PathPing)
}

// healthcheck urlが200を返すか確認します
func healthcheck(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}
	return nil
}
