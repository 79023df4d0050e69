package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFileName = "config"

var (
	home, _ = os.UserHomeDir()
	cfg     *Config
)

var rootCmd = &cobra.Command{
	Use:           "tusc",
	Short:         "Resumable uploads client",
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		var err error
		cfg, err = parseConfig(
			viper.GetString("endpoint"),
			viper.GetString("chunk_size"),
			viper.GetString("checksum"),
			viper.GetBool("verbose"),
		)
		if err != nil {
			return err
		}
		setupLogger(cfg.Verbose)
		cmd.SilenceUsage = true
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file")
	rootCmd.PersistentFlags().StringP("endpoint", "e", "", "upload creation endpoint, e.g. https://tus.example.com/files/")
	rootCmd.PersistentFlags().String("chunk-size", "5MiB", "size of data sent in one request")
	rootCmd.PersistentFlags().String("checksum", "", "send checksum of every chunk using this algorithm")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")

	rootCmd.AddCommand(infoCmd, serverCmd, createCmd, uploadCmd, deleteCmd)
}

func main() {
	setupLogger(false)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("tusc failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))
}

func loadConfig(cmd *cobra.Command) error {
	if cmd.Flag("config").Changed {
		configFilePath, _ := cmd.Flags().GetString("config")
		viper.SetConfigFile(configFilePath)
	} else {
		viper.AddConfigPath(filepath.Join(home, ".config/tusc"))
		viper.AddConfigPath(filepath.Join(home, ".tusc"))
		viper.SetConfigName(configFileName)
		viper.SetConfigType("json")
	}

	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, ok := err.(viper.ConfigFileNotFoundError)
		if !enoent && !ok {
			return fmt.Errorf("config read '%s': %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.BindPFlag("endpoint", cmd.Flags().Lookup("endpoint"))
	viper.BindPFlag("chunk_size", cmd.Flags().Lookup("chunk-size"))
	viper.BindPFlag("checksum", cmd.Flags().Lookup("checksum"))
	viper.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))

	viper.SetEnvPrefix("TUSC")
	viper.AutomaticEnv()
	return nil
}
