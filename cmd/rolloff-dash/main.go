package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/RollOff/config"
	"github.com/BearBump/RollOff/internal/integrations/rolloffapi"
)

// Консольный дашборд: таблицы контейнеров, клиентов и журнала поверх REST API.
//
//	rolloff-dash [flags] containers [list|add|update|dump|delete] ...
//	rolloff-dash [flags] customers [list|search|add|update|delete] ...
//	rolloff-dash [flags] logs [list|container|customer|add] ...

var (
	baseURL  = flag.String("base-url", "", "RollOff API base url (default http://localhost:8000/api/v1)")
	operator = flag.String("operator", "", "name written to updated_by")
	timeout  = flag.Duration("timeout", 0, "request timeout (default 10s)")
	offline  = flag.Bool("offline", false, "use in-memory demo data instead of the API")
	noColor  = flag.Bool("no-color", false, "disable status colours")
	yes      = flag.Bool("yes", false, "answer yes to delete confirmations")
)

type dashOpts struct {
	baseURL  string
	operator string
	timeout  time.Duration
}

func main() {
	flag.Usage = usage
	flag.Parse()

	opts, err := loadDashOpts(os.Getenv("configPath"))
	if err != nil {
		slog.Error("ошибка парсинга конфига", "err", err)
		os.Exit(2)
	}

	var api rolloffapi.API
	if *offline {
		api = demoBackend()
	} else {
		api = rolloffapi.New(opts.baseURL, opts.operator, opts.timeout)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	d := newDash(api, os.Stdin, os.Stdout, os.Stderr)
	d.color = !*noColor
	d.assumeYes = *yes

	if err := d.run(ctx, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			usage()
			os.Exit(2)
		}
		if !d.notified {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// loadDashOpts берёт секцию dashboard из конфига, если он задан; флаги главнее.
func loadDashOpts(cfgPath string) (dashOpts, error) {
	opts := dashOpts{
		baseURL:  "http://localhost:8000/api/v1",
		operator: "dashboard",
		timeout:  10 * time.Second,
	}

	if cfgPath != "" {
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			return dashOpts{}, err
		}
		if cfg.Dashboard.BaseURL != "" {
			opts.baseURL = cfg.Dashboard.BaseURL
		}
		if cfg.Dashboard.Operator != "" {
			opts.operator = cfg.Dashboard.Operator
		}
		if cfg.Dashboard.TimeoutSeconds > 0 {
			opts.timeout = time.Duration(cfg.Dashboard.TimeoutSeconds) * time.Second
		}
	}

	if *baseURL != "" {
		opts.baseURL = *baseURL
	}
	if *operator != "" {
		opts.operator = *operator
	}
	if *timeout > 0 {
		opts.timeout = *timeout
	}
	return opts, nil
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <containers|customers|logs> [command] [args]\n\n", os.Args[0])
	fmt.Fprintln(out, "  containers [list] [-q text] [-status S] [-tab active|archived]")
	fmt.Fprintln(out, "  containers add|update -id CNT-1 -status S [-location L] [-contents C] [-customer N] [-dropped YYYY-MM-DD]")
	fmt.Fprintln(out, "  containers dump -id CNT-1 -weight 3.5 -date YYYY-MM-DD")
	fmt.Fprintln(out, "  containers delete -id CNT-1")
	fmt.Fprintln(out, "  customers [list] [-q text] | search NAME | add|update [-id N] -name N ... | delete -id N")
	fmt.Fprintln(out, "  logs [list] [-q text] [-action A] | container ID | customer N | add -container ID -customer N -action A [-notes T]")
	fmt.Fprintln(out)
	flag.PrintDefaults()
}
