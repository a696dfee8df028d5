package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/logging"
)

var (
	Version  string
	Revision string
)

var (
	// configFile 設定ファイルyamlのパス
	configFile string
	// c 設定
	c Config
)

// rootコマンドはダミー。コマンドとしては使用しない
var rootCommand = &cobra.Command{
	Use:   "caleidenticon",
	Short: "Kaleidoscopic identicon generator",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCommand.AddCommand(
		serveCommand(),
		generateCommand(),
		sampleCommand(),
		healthcheckCommand(),
		confCommand(),
		versionCommand(),
	)

	flags := rootCommand.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file path")

	flags.Bool("dev", false, "development mode")
	bindPFlag(flags, "dev")
	flags.Bool("debug", false, "debug logging")
	bindPFlag(flags, "debug")
}

func initConfig() {
	if len(configFile) > 0 {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("CALEIDENTICON")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("failed to read config file: %v", err)
		}
	}
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatal(err)
	}
}

// Execute コマンドを実行します
func Execute() error {
	return rootCommand.Execute()
}

func serviceVersion() string {
	return fmt.Sprintf("%s.%s", Version, Revision)
}

func getLogger() *zap.Logger {
	return mustLogger(logging.Config{Dev: c.DevMode, Debug: c.Debug})
}

// getCLILogger 対話的なコマンド用のロガー
func getCLILogger() *zap.Logger {
	return mustLogger(logging.Config{Dev: true, Debug: c.Debug})
}

func mustLogger(cfg logging.Config) *zap.Logger {
	logger, err := logging.CreateNewLogger(cfg, "caleidenticon", serviceVersion())
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func bindPFlag(flags *pflag.FlagSet, key string) {
	if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
		panic(err)
	}
}

func bindFlagTo(flags *pflag.FlagSet, name, key string) {
	if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(err)
	}
}
