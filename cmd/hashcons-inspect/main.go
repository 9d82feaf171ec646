// Command hashcons-inspect polls a long-running process embedding this
// library for its interning statistics and prints them either as pretty
// text or JSON. It expects the target process to expose:
//
//	GET /debug/hashcons/snapshot — a JSON object of per-table stats.
//
// The snapshot's shape isn't fixed here; it's decoded into a generic
// map[string]any so this CLI and the embedding library can evolve
// independently.
//
// © 2025 hashcons authors. MIT License.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type options struct {
	target   string
	watch    bool
	interval time.Duration
	json     bool
}

func parseFlags() *options {
	opts := &options{}
	flag.StringVar(&opts.target, "target", "http://localhost:6060", "base URL of the process to inspect")
	flag.BoolVar(&opts.watch, "watch", false, "poll repeatedly instead of a single snapshot")
	flag.DurationVar(&opts.interval, "interval", 2*time.Second, "polling interval when -watch is set")
	flag.BoolVar(&opts.json, "json", false, "print raw JSON instead of a formatted table")
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if opts.watch {
		ticker := time.NewTicker(opts.interval)
		defer ticker.Stop()
		for {
			if err := dumpOnce(ctx, opts); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			select {
			case <-ticker.C:
				continue
			case <-ctx.Done():
				return
			}
		}
	}

	if err := dumpOnce(ctx, opts); err != nil {
		fatal(err)
	}
}

func dumpOnce(ctx context.Context, opts *options) error {
	snap, err := fetchSnapshot(ctx, opts.target)
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return prettyPrint(snap)
}

func fetchSnapshot(ctx context.Context, base string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/debug/hashcons/snapshot", nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}
	var data map[string]any
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func prettyPrint(data map[string]any) error {
	tables, _ := data["tables"].([]any)
	if len(tables) == 0 {
		fmt.Println("no tables reported")
		return nil
	}
	for _, raw := range tables {
		t, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		fmt.Printf("%-20s live=%v hits=%v misses=%v inserts=%v decayed_reclaims=%v epoch=%v\n",
			t["name"], t["live_cells"], t["hits"], t["misses"], t["inserts"], t["decayed_reclaims"], t["insert_epoch"])
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "hashcons-inspect:", err)
	os.Exit(1)
}
