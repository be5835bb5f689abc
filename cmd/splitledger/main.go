// Command splitledger prints the balance report for a group: net
// per-user balances from the current expense and settlement set, and
// the suggested transfers that settle them. It stands in for the API
// layer that normally drives the engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitledger/splitledger/internal/config"
	"github.com/splitledger/splitledger/internal/service"
	"github.com/splitledger/splitledger/internal/storage/sqlite"
	"github.com/splitledger/splitledger/pkg/logging"
)

func main() {
	groupID := flag.String("group", "", "group id to report on")
	flag.Parse()

	cfg := config.Load()
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	if *groupID == "" {
		fmt.Fprintln(os.Stderr, "usage: splitledger -group <group-id>")
		os.Exit(2)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	svc := service.New(store)
	ctx := context.Background()

	balances, skipped, err := svc.ComputeBalances(ctx, *groupID)
	if err != nil {
		slog.Error("Failed to compute balances", "group_id", *groupID, "error", err)
		os.Exit(1)
	}

	users := make([]string, 0, len(balances))
	for user := range balances {
		users = append(users, user)
	}
	sort.Strings(users)

	fmt.Printf("Balances for group %s\n", *groupID)
	for _, user := range users {
		fmt.Printf("  %-20s %10s\n", user, balances[user].StringFixed(2))
	}
	if skipped > 0 {
		fmt.Printf("  (%d record(s) skipped due to integrity warnings)\n", skipped)
	}

	transfers := svc.SimplifyDebts(balances)
	if len(transfers) == 0 {
		fmt.Println("All settled up.")
		return
	}
	fmt.Println("Suggested transfers:")
	for _, tr := range transfers {
		fmt.Printf("  %s -> %s  %s\n", tr.FromUserID, tr.ToUserID, tr.Amount.StringFixed(2))
	}
}

// serveMetrics exposes the Prometheus endpoint for scraping while the
// report runs.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	slog.Info("Metrics listener starting", "address", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("Metrics listener failed", "error", err)
	}
}
