package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/BearBump/RollOff/internal/integrations/rolloffapi"
	"github.com/BearBump/RollOff/internal/models"
	"github.com/BearBump/RollOff/internal/services/liststate"
)

var errUsage = errors.New("usage")

type dash struct {
	api    rolloffapi.API
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	color     bool
	assumeYes bool
	// notified выставляется, когда контроллер уже показал пользователю сообщение.
	notified bool
	today    func() civil.Date
}

func newDash(api rolloffapi.API, in io.Reader, out, errOut io.Writer) *dash {
	return &dash{
		api:    api,
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		today:  func() civil.Date { return civil.DateOf(time.Now()) },
	}
}

func (d *dash) Notify(n liststate.Notice) {
	d.notified = true
	fmt.Fprintln(d.errOut, "error:", n.Message)
}

func (d *dash) Confirm(_ context.Context, prompt string) bool {
	if d.assumeYes {
		return true
	}
	fmt.Fprintf(d.out, "%s [y/N]: ", prompt)
	line, err := d.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (d *dash) containers() *liststate.ContainerController {
	return liststate.NewContainerController(d.api, d, d)
}

func (d *dash) customers() *liststate.CustomerController {
	return liststate.NewCustomerController(d.api, d, d)
}

func (d *dash) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	rest := args[1:]
	switch args[0] {
	case "containers", "container", "c":
		return d.runContainers(ctx, rest)
	case "customers", "customer", "cu":
		return d.runCustomers(ctx, rest)
	case "logs", "log", "l":
		return d.runLogs(ctx, rest)
	}
	return fmt.Errorf("%w: unknown section %q", errUsage, args[0])
}

// subcommand отделяет имя команды от флагов; без имени выполняется list.
func subcommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "list", args
	}
	return args[0], args[1:]
}

func (d *dash) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(d.errOut)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// ---- containers ----

type containerFlags struct {
	id, status, location, contents string
	customer                       int64
	dropped                        string
}

func (f *containerFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&f.id, "id", "", "container number")
	fs.StringVar(&f.status, "status", "", "Available | In Use | Needs Picked Up")
	fs.StringVar(&f.location, "location", "", "location")
	fs.StringVar(&f.contents, "contents", "", "contents / notes")
	fs.Int64Var(&f.customer, "customer", 0, "current customer id, 0 to clear")
	fs.StringVar(&f.dropped, "dropped", "", "date dropped, YYYY-MM-DD")
}

// apply переносит в черновик только явно заданные флаги.
func (f *containerFlags) apply(draft *models.ContainerDraft, set map[string]bool) error {
	if set["id"] {
		draft.ID = f.id
	}
	if set["status"] {
		st, err := models.ParseStatus(f.status)
		if err != nil {
			return err
		}
		if st == models.StatusAll {
			return fmt.Errorf("status is required")
		}
		draft.Status = st
	}
	if set["location"] {
		draft.Location = f.location
	}
	if set["contents"] {
		draft.Contents = f.contents
	}
	if set["customer"] {
		draft.CurrentCustomerID = nil
		if f.customer > 0 {
			id := f.customer
			draft.CurrentCustomerID = &id
		}
	}
	if set["dropped"] {
		draft.DateDropped = nil
		if f.dropped != "" {
			dt, err := civil.ParseDate(f.dropped)
			if err != nil {
				return fmt.Errorf("bad -dropped: %w", err)
			}
			draft.DateDropped = &dt
		}
	}
	return nil
}

func (d *dash) runContainers(ctx context.Context, args []string) error {
	cmd, args := subcommand(args)
	ctrl := d.containers()
	defer ctrl.Close()

	switch cmd {
	case "list", "ls":
		fs := d.flagSet("containers list")
		q := fs.String("q", "", "filter by number, location or contents")
		status := fs.String("status", "All", "status filter")
		tab := fs.String("tab", string(liststate.TabActive), "active | archived")
		if err := parse(fs, args); err != nil {
			return err
		}
		st, err := models.ParseStatus(*status)
		if err != nil {
			return err
		}
		if err := ctrl.SetStatusFilter(st); err != nil {
			return err
		}
		if err := ctrl.SetTab(liststate.Tab(strings.ToLower(*tab))); err != nil {
			return err
		}
		ctrl.SetQuery(*q)
		if err := ctrl.Load(ctx); err != nil {
			return err
		}
		customers := d.customers()
		defer customers.Close()
		// имена клиентов — только подписи, без них таблица всё равно строится
		_ = customers.Load(ctx)
		renderContainers(d.out, ctrl.Snapshot(), customers, d.color)
		return nil

	case "add", "update":
		var f containerFlags
		fs := d.flagSet("containers " + cmd)
		f.bind(fs)
		if err := parse(fs, args); err != nil {
			return err
		}
		set := setFlags(fs)

		var draft models.ContainerDraft
		if cmd == "update" {
			if err := ctrl.Load(ctx); err != nil {
				return err
			}
			cur, ok := ctrl.Find(models.NormalizeContainerID(f.id))
			if !ok {
				return fmt.Errorf("container %s is not in the list", models.NormalizeContainerID(f.id))
			}
			draft = models.DraftOf(cur)
			delete(set, "id")
		}
		if err := f.apply(&draft, set); err != nil {
			return err
		}

		var (
			saved models.Container
			err   error
		)
		if cmd == "add" {
			saved, err = ctrl.Create(ctx, draft)
		} else {
			saved, err = ctrl.Update(ctx, draft)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "saved %s (%s)\n", saved.ID, statusLabel(saved.Status, d.color))
		return nil

	case "dump":
		fs := d.flagSet("containers dump")
		id := fs.String("id", "", "container number")
		weight := fs.Float64("weight", -1, "weight in tons, 0..50")
		date := fs.String("date", "", "date dumped, YYYY-MM-DD (default today)")
		if err := parse(fs, args); err != nil {
			return err
		}
		dumped := d.today()
		if *date != "" {
			dt, err := civil.ParseDate(*date)
			if err != nil {
				return fmt.Errorf("bad -date: %w", err)
			}
			dumped = dt
		}
		if err := ctrl.Load(ctx); err != nil {
			return err
		}
		cur, ok := ctrl.Find(models.NormalizeContainerID(*id))
		if !ok {
			return fmt.Errorf("container %s is not in the list", models.NormalizeContainerID(*id))
		}
		draft := models.DraftOf(cur)
		draft.Status = models.StatusDumped
		draft.Disposal = &models.Disposal{Weight: *weight, DateDumped: dumped}
		saved, err := ctrl.Update(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "dumped %s, moved to archive\n", saved.ID)
		return nil

	case "delete", "rm":
		fs := d.flagSet("containers delete")
		id := fs.String("id", "", "container number")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := ctrl.Load(ctx); err != nil {
			return err
		}
		ok, err := ctrl.Delete(ctx, *id)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(d.out, "cancelled")
			return nil
		}
		fmt.Fprintf(d.out, "deleted %s\n", models.NormalizeContainerID(*id))
		return nil
	}
	return fmt.Errorf("%w: unknown containers command %q", errUsage, cmd)
}

// ---- customers ----

type customerFlags struct {
	name, address, phone, site string
}

func (f *customerFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "customer name")
	fs.StringVar(&f.address, "address", "", "address")
	fs.StringVar(&f.phone, "phone", "", "phone")
	fs.StringVar(&f.site, "site", "", "job site info")
}

func (f *customerFlags) apply(draft *models.CustomerDraft, set map[string]bool) {
	if set["name"] {
		draft.Name = f.name
	}
	if set["address"] {
		draft.Address = f.address
	}
	if set["phone"] {
		draft.Phone = f.phone
	}
	if set["site"] {
		draft.JobSiteInfo = f.site
	}
}

func (d *dash) runCustomers(ctx context.Context, args []string) error {
	cmd, args := subcommand(args)
	ctrl := d.customers()
	defer ctrl.Close()

	switch cmd {
	case "list", "ls":
		fs := d.flagSet("customers list")
		q := fs.String("q", "", "filter by name, address or job site")
		if err := parse(fs, args); err != nil {
			return err
		}
		ctrl.SetQuery(*q)
		if err := ctrl.Load(ctx); err != nil {
			return err
		}
		renderCustomers(d.out, ctrl.Snapshot().View)
		return nil

	case "search":
		if err := ctrl.Search(ctx, strings.Join(args, " ")); err != nil {
			return err
		}
		renderCustomers(d.out, ctrl.Snapshot().View)
		return nil

	case "add", "update":
		var f customerFlags
		fs := d.flagSet("customers " + cmd)
		id := fs.Int64("id", 0, "customer id (update)")
		f.bind(fs)
		if err := parse(fs, args); err != nil {
			return err
		}

		var draft models.CustomerDraft
		if cmd == "update" {
			if err := ctrl.Load(ctx); err != nil {
				return err
			}
			cur, ok := ctrl.Find(*id)
			if !ok {
				return fmt.Errorf("customer %d is not in the list", *id)
			}
			draft = models.CustomerDraftOf(cur)
		}
		f.apply(&draft, setFlags(fs))

		var (
			saved models.Customer
			err   error
		)
		if cmd == "add" {
			saved, err = ctrl.Create(ctx, draft)
		} else {
			saved, err = ctrl.Update(ctx, *id, draft)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "saved customer %d %s\n", saved.ID, saved.Name)
		return nil

	case "delete", "rm":
		fs := d.flagSet("customers delete")
		id := fs.Int64("id", 0, "customer id")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := ctrl.Load(ctx); err != nil {
			return err
		}
		ok, err := ctrl.Delete(ctx, *id)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(d.out, "cancelled")
			return nil
		}
		fmt.Fprintf(d.out, "deleted customer %d\n", *id)
		return nil
	}
	return fmt.Errorf("%w: unknown customers command %q", errUsage, cmd)
}

// ---- log ----

func (d *dash) runLogs(ctx context.Context, args []string) error {
	cmd, args := subcommand(args)
	ctrl := liststate.NewLogEntryController(d.api, d)
	defer ctrl.Close()

	var load func() error
	switch cmd {
	case "list", "ls":
		fs := d.flagSet("logs list")
		q := fs.String("q", "", "filter by container number or notes")
		action := fs.String("action", "all", "dropoff | pickup | maintenance | all")
		if err := parse(fs, args); err != nil {
			return err
		}
		a, err := models.ParseAction(*action)
		if err != nil {
			return err
		}
		if err := ctrl.SetActionFilter(a); err != nil {
			return err
		}
		ctrl.SetQuery(*q)
		load = func() error { return ctrl.Load(ctx) }

	case "container":
		if len(args) != 1 {
			return fmt.Errorf("%w: logs container ID", errUsage)
		}
		load = func() error { return ctrl.LoadForContainer(ctx, args[0]) }

	case "customer":
		if len(args) != 1 {
			return fmt.Errorf("%w: logs customer ID", errUsage)
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("%w: bad customer id %q", errUsage, args[0])
		}
		load = func() error { return ctrl.LoadForCustomer(ctx, id) }

	case "add":
		fs := d.flagSet("logs add")
		var draft models.LogEntryDraft
		fs.StringVar(&draft.ContainerID, "container", "", "container number")
		fs.Int64Var(&draft.CustomerID, "customer", 0, "customer id")
		action := fs.String("action", "", "dropoff | pickup | maintenance")
		fs.StringVar(&draft.Notes, "notes", "", "notes")
		if err := parse(fs, args); err != nil {
			return err
		}
		draft.Action = models.Action(*action)
		created, err := ctrl.Create(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "logged #%d %s %s\n", created.ID, created.Action, created.ContainerID)
		return nil

	default:
		return fmt.Errorf("%w: unknown logs command %q", errUsage, cmd)
	}

	if err := load(); err != nil {
		return err
	}
	containers := d.containers()
	defer containers.Close()
	customers := d.customers()
	defer customers.Close()
	_ = containers.Load(ctx)
	_ = customers.Load(ctx)
	renderLog(d.out, ctrl.Rows(containers, customers))
	return nil
}
