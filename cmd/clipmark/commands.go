package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipmark/clipmark/internal/app"
	"github.com/clipmark/clipmark/internal/config"
	"github.com/clipmark/clipmark/internal/logger"
	"github.com/clipmark/clipmark/internal/notifier"
	"github.com/clipmark/clipmark/internal/redis"
	redisstore "github.com/clipmark/clipmark/internal/store/redis"
	"github.com/clipmark/clipmark/internal/transfer"
	"github.com/clipmark/clipmark/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "clipmark",
	Short: "Timestamp-bookmark store daemon",
	Long: `clipmark owns a shared collection of video timestamp bookmarks and
serves it to every client over HTTP, with change events so all views stay
in sync.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bookmark store daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New()
		if err != nil {
			return err
		}
		return a.Run()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all bookmarks to an export file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		f := transfer.Export(context.Background(), store)

		w := os.Stdout
		if out != "" && out != "-" {
			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer file.Close()
			w = file
		}
		if err := f.WriteTo(w); err != nil {
			return err
		}
		if w != os.Stdout {
			fmt.Fprintf(os.Stderr, "exported %d bookmarks to %s\n", len(f.Bookmarks), out)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge bookmarks from an export file (existing ids are skipped)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer file.Close()

		f, err := transfer.Read(file)
		if err != nil {
			return err
		}

		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		added, skipped, err := transfer.Import(context.Background(), store, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "imported %d bookmarks, skipped %d\n", added, skipped)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clipmark %s (commit=%s, built=%s, %s)\n",
			version.Version, version.Commit, version.BuildDate, version.GoVersion)
	},
}

// openStore wires up just enough of the stack for one-shot CLI commands.
func openStore() (*redisstore.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New("warn", true)

	client, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDialTimeout,
		ReadTimeout:    cfg.RedisReadTimeout,
		WriteTimeout:   cfg.RedisWriteTimeout,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, log)
	if err != nil {
		return nil, nil, err
	}

	store := redisstore.NewStore(client, notifier.New(client, log), log, redisstore.Options{
		QuotaBytes:     cfg.QuotaBytes,
		QuotaThreshold: cfg.QuotaThreshold,
		TrimLimit:      cfg.TrimLimit,
		RetryMax:       cfg.RetryMax,
		RetryBase:      cfg.RetryBase,
		RetryMaxWait:   cfg.RetryMaxWait,
	})
	cleanup := func() { _ = client.Close() }
	return store, cleanup, nil
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(serveCmd, exportCmd, importCmd, versionCmd)
}
