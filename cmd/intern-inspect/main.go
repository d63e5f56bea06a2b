// main.go implements the strpool inspector CLI: it fetches the diagnostic
// snapshot a running process exposes via intern.SnapshotHandler and prints
// it either as pretty text or JSON. It also supports a periodic watch mode
// and pprof snapshot download, the same shape the teacher cache's inspector
// CLI offers.
//
// The target Go service is expected to expose:
//   - GET /debug/intern/snapshot        – JSON payload, shaped like intern.Stats.
//   - GET /debug/pprof/{heap,goroutine} – standard pprof handlers (net/http/pprof).
//
// Build-time flag: `-ldflags "-X main.version=vX.Y.Z"` is set by GoReleaser.
// ---------------------------------------------------------------
// © 2025 strpool authors. MIT License.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var version = "dev"

type options struct {
	target           string
	json             bool
	watch            bool
	interval         time.Duration
	heapProfile      string
	goroutineProfile string
	version          bool
}

func parseFlags() *options {
	opts := &options{}
	flag.StringVar(&opts.target, "target", "http://localhost:6060", "base URL of the target process")
	flag.BoolVar(&opts.json, "json", false, "emit raw JSON instead of a pretty summary")
	flag.BoolVar(&opts.watch, "watch", false, "poll the snapshot endpoint at -interval until interrupted")
	flag.DurationVar(&opts.interval, "interval", 2*time.Second, "poll interval for -watch")
	flag.StringVar(&opts.heapProfile, "heap-profile", "", "download a heap profile to this path and exit")
	flag.StringVar(&opts.goroutineProfile, "goroutine-profile", "", "download a goroutine profile to this path and exit")
	flag.BoolVar(&opts.version, "version", false, "print the inspector version and exit")
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()

	if opts.version {
		fmt.Println(version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if opts.heapProfile != "" {
		if err := downloadProfile(ctx, opts.target, "heap", opts.heapProfile); err != nil {
			fatal(err)
		}
		return
	}
	if opts.goroutineProfile != "" {
		if err := downloadProfile(ctx, opts.target, "goroutine", opts.goroutineProfile); err != nil {
			fatal(err)
		}
		return
	}

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
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/debug/intern/snapshot", nil)
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
	fmt.Printf("Table entries:  %v\n", data["TableEntries"])
	fmt.Printf("Table capacity: %v\n", data["TableCapacity"])
	fmt.Printf("Load factor:    %.3f\n", toFloat(data["LoadFactor"]))
	fmt.Printf("Arena pages:    %v\n", data["ArenaPages"])
	fmt.Printf("Arena MB:       %.2f\n", toFloat(data["ArenaBytes"])/1_048_576)
	fmt.Printf("Registry size:  %v\n", data["RegistrySize"])
	return nil
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case json.Number:
		f, _ := t.Float64()
		return f
	default:
		return 0
	}
}

func downloadProfile(ctx context.Context, base, name, path string) error {
	url := fmt.Sprintf("%s/debug/pprof/%s", base, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", res.Status)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, res.Body); err != nil {
		return err
	}
	fmt.Printf("%s profile saved to %s\n", name, path)
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "intern-inspect:", err)
	os.Exit(1)
}
