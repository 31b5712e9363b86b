package a11yscan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagThreads int
	flagNoColor bool
	flagDebug   bool
	flagTimeout int

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the a11yscan CLI.
var rootCmd = &cobra.Command{
	Use:           "a11yscan",
	Short:         "Scan web pages for accessibility violations",
	Long:          "a11yscan checks pages against WCAG and Section 508 rules using a static markup pass and a rendered browser pass, and reports de-duplicated, severity-ranked findings.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the a11yscan CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "parallel urls (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "verbose logging")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 30, "per-url fetch/render timeout in seconds")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Println("a11yscan", version)
		},
	})
}
