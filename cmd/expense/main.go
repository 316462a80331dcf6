package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// app carries state shared by the commands of one root command.
type app struct {
	viper   *viper.Viper
	config  *config.Config
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{viper: viper.New()}
	defaults := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "expense",
		Short: "💰 Personal expense tracker",
		Long: `expense: records, updates, deletes, lists and summarizes your expenses.

Expenses are kept in a local JSON file (expense_tracker.json by default).`,
		PersistentPreRunE: a.initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/expense/config.yaml)")
	flags.StringP("file", "f", defaults.StoragePath, "expenses file")
	flags.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	flags.String("log-format", defaults.LogFormat, "log format (console, json)")

	// Bind flags to viper
	_ = a.viper.BindPFlag(config.KeyStoragePath, flags.Lookup("file"))
	_ = a.viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	rootCmd.AddCommand(addCmd(a))
	rootCmd.AddCommand(updateCmd(a))
	rootCmd.AddCommand(deleteCmd(a))
	rootCmd.AddCommand(listCmd(a))
	rootCmd.AddCommand(summaryCmd(a))
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(importOFXCmd(a))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage renders err for the terminal. Input the user can correct is
// shown as is; anything else gets an "Error: " prefix.
func errorMessage(err error) string {
	var userErr *common.UserError
	switch {
	case errors.As(err, &userErr):
		return cli.FormatError(userErr.UserMessage)
	case common.IsUserFacing(err):
		return cli.FormatError(err.Error())
	default:
		return cli.FormatError("Error: " + err.Error())
	}
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine.
	_ = godotenv.Load()

	if a.cfgFile != "" {
		a.viper.SetConfigFile(config.ExpandPath(a.cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		a.viper.AddConfigPath(fmt.Sprintf("%s/.config/expense", home))
		a.viper.AddConfigPath(".")
		a.viper.SetConfigName("config")
		a.viper.SetConfigType("yaml")
	}

	config.SetDefaults(a.viper)
	config.BindEnv(a.viper)

	if err := a.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(a.viper)
	if err != nil {
		return err
	}

	if err := common.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	a.config = cfg
	slog.Debug("Loaded configuration", "file", a.viper.ConfigFileUsed(), "storage", cfg.StoragePath)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "expense version %s\n", version)
		},
	}
}
