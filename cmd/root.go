package cmd

import (
	"log"

	"github.com/yashogale30/rfp-responder/internal/tender"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "rfp-responder"
)

type Config struct {
	Source      *tender.SourceParams `mapstructure:"source"`
	CatalogFile string               `mapstructure:"catalog-file"`
	ExcludeFile string               `mapstructure:"exclude-file"`
	HistoryFile string               `mapstructure:"history-file"`
	UserAgent   string               `mapstructure:"user-agent"`
	TokenFile   string               `mapstructure:"token-file"`
	Respond     *struct {
		Exclude *struct {
			Issuers []string
		}
	}
	Matching *MatchingConfig `mapstructure:"matching"`
	Pricing  *PricingConfig  `mapstructure:"pricing"`
}

type MatchingConfig struct {
	MinScore   float64 `mapstructure:"min-score"`
	MaxResults int     `mapstructure:"max-results"`
}

type PricingConfig struct {
	// Seed fixes the margin perturbation for reproducible quotes.
	// Zero means a time-based seed.
	Seed               int64   `mapstructure:"seed"`
	QuantityMultiplier float64 `mapstructure:"quantity-multiplier"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "rfp-responder is a simple cli for scanning procurement tenders and preparing priced, scored responses",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "RFP_TOKEN_FILE"); err != nil {
		log.Fatalf("binding RFP_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is rfp-responder.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
