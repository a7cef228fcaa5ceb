// zone-export prints a zone from a zonekeeper database as a BIND zone
// file, for piping into named-checkzone or a migration script.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jroosing/zonekeeper/internal/config"
	"github.com/jroosing/zonekeeper/internal/database"
	"github.com/jroosing/zonekeeper/internal/zones"
)

func main() {
	dbPath := flag.String("db", "zonekeeper.db", "Path to the SQLite database")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: zone-export [-db path] zone-name\n")
		os.Exit(2)
	}
	name := flag.Arg(0)

	db, err := database.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	zone, err := db.GetZoneByName(ctx, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to find zone %q: %v\n", name, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := zones.NewService(db, config.Default().DNS, logger)
	text, err := svc.Export(ctx, zone.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to export zone: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(text)
}
