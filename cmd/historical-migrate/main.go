package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"bitbucket.org/jarzapp/woosync_backend/config"
	"bitbucket.org/jarzapp/woosync_backend/models"
	"bitbucket.org/jarzapp/woosync_backend/woosync"
)

// Bulk one-shot migration of settled past storefront orders. Run it again
// with a later -from-page to resume; orders already mapped are skipped, so
// overlapping pages are harmless.
func main() {
	fromPage := flag.Int("from-page", 1, "first storefront page to migrate")
	maxPages := flag.Int("max-pages", 50, "maximum pages to walk in this run")
	perPage := flag.Int("per-page", 100, "orders per page")
	statuses := flag.String("statuses", "completed,processing,cancelled,refunded", "comma-separated order statuses to include")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	}

	ctx := context.Background()
	cfg, err := woosync.LoadActiveSyncConfig(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	var statusList []string
	for _, s := range strings.Split(*statuses, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			statusList = append(statusList, s)
		}
	}

	summary, err := woosync.MigrateHistoricalOrders(ctx, cfg, woosync.HistoricalOptions{
		FromPage: *fromPage,
		MaxPages: *maxPages,
		PerPage:  *perPage,
		Statuses: statusList,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
	if summary.Errors > 0 {
		os.Exit(2)
	}
}
