package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tripwizard/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	v   = config.New()
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tripwizard",
	Short: "TripWizard plans trips from a short interactive form",
	Long: `TripWizard shows an animated preloader, asks where, when and how you want to
travel, and builds a day-by-day itinerary with a cost estimate.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd, v)
	},
}

// loadConfig merges .env, environment, the optional config file and the
// command flags into cfg.
func loadConfig(cmd *cobra.Command, v *viper.Viper) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	file, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(v, file)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded into the environment when present")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("steps-file", "", "YAML file with the preloader steps")
}
