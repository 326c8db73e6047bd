package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"deconfliction-service/internal/config"
	"deconfliction-service/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app carries the per-invocation configuration shared by subcommands.
type app struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "deconflict",
		Short: "Strategic deconfliction for drone missions",
		Long: `deconflict checks a primary drone mission against scheduled flights.

A mission file (YAML or JSON) lists waypoints and the t_start/t_end window.
Flights come from the mission file, the --flights file, or the configured
database when --store is set.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := logging.New(logging.Config{
				Level:  a.v.GetString("log-level"),
				Format: "text",
			})
			return err
		},
	}

	a.initConfig()
	a.addPersistentFlags(root)

	root.AddCommand(a.checkCmd())
	root.AddCommand(a.resolveCmd())
	root.AddCommand(a.trajectoriesCmd())
	return root
}

func (a *app) initConfig() {
	a.v.SetEnvPrefix("DECONFLICT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
}

func (a *app) addPersistentFlags(root *cobra.Command) {
	defaults := config.Params()

	pf := root.PersistentFlags()
	pf.StringP("mission", "m", "", "mission file (yaml or json)")
	pf.String("flights", "data/seeds/flights.json", "flight schedule file (yaml or json)")
	pf.Bool("store", false, "read flights from DATABASE_URL / DB_PATH instead of --flights")
	pf.Float64("safety-radius", defaults.SafetyRadius, "minimum separation distance")
	pf.Float64("dt", defaults.Dt, "sampling interval in seconds")
	pf.Int("workers", defaults.Workers, "flights checked concurrently")
	pf.String("tz", config.Get("TIME_ZONE", "UTC"), "time zone for timestamps without an offset")
	pf.Bool("json", false, "output JSON")
	pf.Int("limit", 5, "conflict rows to print (0 for all)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")

	for _, name := range []string{
		"mission", "flights", "store", "safety-radius", "dt", "workers",
		"tz", "json", "limit", "log-level",
	} {
		_ = a.v.BindPFlag(name, pf.Lookup(name))
	}
}
