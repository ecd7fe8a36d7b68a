package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/cmd/seed/internal/seeder"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Loads demo categories, dishes and couriers through the API gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewWithWriter(os.Stderr, "seed", viper.GetString("log-level"))
		s := seeder.New(&http.Client{Timeout: viper.GetDuration("timeout")}, seeder.Options{
			Gateway:    viper.GetString("gateway"),
			Categories: viper.GetStringSlice("categories"),
			Dishes:     viper.GetInt("dishes"),
			Couriers:   viper.GetInt("couriers"),
			Seed:       viper.GetInt64("seed"),
			Progress:   os.Stderr,
		}, log)

		res, err := s.Run(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d categories, %d dishes, %d couriers\n",
			res.RunID, res.Categories, res.Dishes, res.Couriers)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./seed.yaml)")

	rootCmd.Flags().String("gateway", "http://localhost:8080", "API gateway base URL")
	rootCmd.Flags().StringSlice("categories", seeder.DefaultCategories, "Category names to create")
	rootCmd.Flags().Int("dishes", 24, "Number of dishes to create")
	rootCmd.Flags().Int("couriers", 5, "Number of couriers to create")
	rootCmd.Flags().Int64("seed", 42, "Random seed for generated data")
	rootCmd.Flags().Duration("timeout", 10*time.Second, "Per-request timeout")
	rootCmd.Flags().String("log-level", "info", "Log level")

	viper.BindPFlags(rootCmd.Flags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("seed")
	}

	viper.SetEnvPrefix("SEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
