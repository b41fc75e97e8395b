// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pdiddy/file-converter/internal/convert"
	"github.com/pdiddy/file-converter/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser upload form",
	Long: `Serve starts a local web page where a file can be uploaded, a target format
picked from a dropdown, and the result downloaded. Every result is also
saved to the output directory. Stop the server with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
			appLog.SetLevel(log.InfoLevel)
		}

		srv, err := web.New(convert.New(cfg), cfg.Web, appLog)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: 127.0.0.1:8501)")

	rootCmd.AddCommand(serveCmd)
}
