package a11yscan

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/a11yscan/a11yscan/internal/api"
	"github.com/a11yscan/a11yscan/internal/engine"
	"github.com/a11yscan/a11yscan/internal/logging"
	"github.com/a11yscan/a11yscan/internal/store"
	"github.com/a11yscan/a11yscan/internal/types"
)

var (
	flagListenAddr string
	flagServeFile  string
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve [urls...]",
		Short: "Scan urls, then serve the findings over a query API",
		Long:  "Runs one batch scan and exposes the reconciled findings at /api/findings with paging, filtering and sorting query parameters.",
		RunE:  runServe,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagListenAddr, "listen", ":8080", "listen address")
	cmd.Flags().StringVarP(&flagServeFile, "file", "f", "", "read urls from file, one per line")
}

func runServe(cmd *cobra.Command, args []string) error {
	urls := append([]string(nil), args...)
	if flagServeFile != "" {
		fromFile, err := readURLFile(flagServeFile)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no urls given; pass them as arguments or via --file")
	}

	log, err := logging.New(flagDebug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	batch, err := engine.Run(context.Background(), urls, engine.Config{
		Options: types.DefaultOptions(),
		Threads: flagThreads,
		Timeout: time.Duration(flagTimeout) * time.Second,
		Log:     log,
	})
	if err != nil {
		return err
	}

	st := store.New()
	st.Replace(batch)
	log.Infow("scan complete", "findings", batch.Summary.Total, "urls", batch.Summary.URLsAnalyzed)

	srv := &http.Server{
		Addr:              flagListenAddr,
		Handler:           api.New(st, log).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	fmt.Printf("serving findings on %s\n", flagListenAddr)
	return srv.ListenAndServe()
}
