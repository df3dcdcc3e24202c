package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
)

// rootCmd is the base command; detection lives in the detect subcommand
var rootCmd = &cobra.Command{
	Use:   "recurrence",
	Short: "Recurring payment detection tool",
	Long: `Recurrence finds recurring periodic payments inside a history of
personal-finance transactions. Merchant descriptions are normalized,
payment-processor markers and city/state suffixes are stripped, near
duplicates are clustered with a weighted similarity ensemble, and each
cluster is tested for a consistent payment interval and amount.

Run "recurrence detect --help" for the detection flags. All flags can also
be set in a config file (--config) or as RECURRENCE_* environment
variables, e.g. RECURRENCE_MATCH_THRESHOLD=4.`,
	Version: version,
}

// Execute runs the CLI; called once from main
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig layers the optional config file and RECURRENCE_* environment
// variables underneath the command-line flags
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
			os.Exit(1)
		}

		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}

	viper.SetEnvPrefix("RECURRENCE")
	// Dashed flag keys map to RECURRENCE_MATCH_THRESHOLD style variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// SetVersion records the release version stamped in by the linker
func SetVersion(v string) {
	if v != "" {
		version = v
		rootCmd.Version = v
	}
}
