// Command opsdeckctl is a small operator console for the Opsdeck Resource
// Service, driving the same collection stores and projections the dashboard
// views use.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/opsdeck/opsdeck/internal/console"
)

func main() {
	addr := flag.String("addr", "http://127.0.0.1:8080", "resource service base URL")
	user := flag.String("user", "", "login handle")
	pass := flag.String("pass", "", "login password")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client := console.NewClient(*addr, console.WithLogger(logger))
	ctx := context.Background()

	if *user != "" {
		res, err := client.Authenticate(ctx, *user, *pass)
		if err != nil {
			fatal(err)
		}
		if !res.IsAuthenticated {
			fatal(fmt.Errorf("login rejected for %q", *user))
		}
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	var err error
	switch args[0] {
	case "sales":
		err = runSales(ctx, client, args[1:])
	case "requests":
		err = runRequests(ctx, client, args[1:])
	case "users":
		err = runUsers(ctx, client, args[1:])
	default:
		usage()
	}
	if err != nil {
		fatal(err)
	}
}

func runSales(ctx context.Context, client *console.Client, args []string) error {
	if len(args) == 0 {
		usage()
	}
	store := console.Sales(client, slog.Default())
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("sales list", flag.ExitOnError)
		search := fs.String("search", "", "filter by product name")
		sortKey := fs.String("sort", "", "sort key: product, amount or date")
		page := fs.Int("page", 0, "page index")
		size := fs.Int("size", 5, "page size")
		_ = fs.Parse(args[1:])
		if err := store.Load(ctx); err != nil {
			return err
		}
		view := console.NewView(console.SaleProjector(), *size)
		view.SetQuery(*search)
		view.SetSort(console.SortKey(*sortKey))
		view.SetPage(*page)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPRODUCT\tAMOUNT\tDATE")
		for _, s := range view.Rows(store.Snapshot()) {
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\n", s.ID, s.Product, s.Amount, s.Date)
		}
		return w.Flush()
	case "add":
		fs := flag.NewFlagSet("sales add", flag.ExitOnError)
		product := fs.String("product", "", "product name")
		amount := fs.Float64("amount", 0, "sale amount")
		date := fs.String("date", "", "sale date (YYYY-MM-DD)")
		_ = fs.Parse(args[1:])
		dialog := saleDialog(store)
		dialog.OpenNew(console.SaleRecord{ID: console.NewRecordID(), Product: *product, Amount: *amount, Date: *date})
		return dialog.Submit(ctx)
	case "set":
		fs := flag.NewFlagSet("sales set", flag.ExitOnError)
		id := fs.Int64("id", 0, "sale id")
		product := fs.String("product", "", "product name")
		amount := fs.Float64("amount", 0, "sale amount")
		date := fs.String("date", "", "sale date (YYYY-MM-DD)")
		_ = fs.Parse(args[1:])
		dialog := saleDialog(store)
		dialog.OpenEdit(console.SaleRecord{ID: *id, Product: *product, Amount: *amount, Date: *date})
		return dialog.Submit(ctx)
	case "rm":
		fs := flag.NewFlagSet("sales rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "sale id")
		_ = fs.Parse(args[1:])
		return store.Delete(ctx, *id)
	}
	usage()
	return nil
}

func saleDialog(store *console.Collection[console.SaleRecord]) *console.Dialog[console.SaleRecord] {
	return console.NewDialog(console.ValidateSaleDraft,
		store.Create,
		func(ctx context.Context, s console.SaleRecord) error { return store.Update(ctx, s.ID, s) },
	)
}

func runRequests(ctx context.Context, client *console.Client, args []string) error {
	if len(args) == 0 {
		usage()
	}
	store := console.Requests(client, slog.Default())
	switch args[0] {
	case "list":
		if err := store.Load(ctx); err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tROLE\tREQUEST\tSTATUS")
		for _, r := range store.Snapshot() {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Role, r.Text, r.Status)
		}
		return w.Flush()
	case "add":
		fs := flag.NewFlagSet("requests add", flag.ExitOnError)
		role := fs.String("role", "", "requesting role")
		text := fs.String("text", "", "request body")
		_ = fs.Parse(args[1:])
		draft := console.RequestRecord{ID: console.NewRecordID(), Role: *role, Text: *text, Status: "Pending"}
		if err := console.ValidateRequestDraft(draft); err != nil {
			return err
		}
		return store.Create(ctx, draft)
	case "approve", "deny":
		fs := flag.NewFlagSet("requests decide", flag.ExitOnError)
		id := fs.Int64("id", 0, "request id")
		_ = fs.Parse(args[1:])
		status := "Approved"
		if args[0] == "deny" {
			status = "Denied"
		}
		return console.Decide(ctx, store, *id, status)
	}
	usage()
	return nil
}

func runUsers(ctx context.Context, client *console.Client, args []string) error {
	if len(args) == 0 {
		usage()
	}
	store := console.Users(client, slog.Default())
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("users list", flag.ExitOnError)
		search := fs.String("search", "", "filter by numeric id")
		_ = fs.Parse(args[1:])
		if err := store.Load(ctx); err != nil {
			return err
		}
		view := console.NewView(console.UserProjector(), 25)
		view.SetQuery(*search)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSER\tROLE\tSTATUS")
		for _, u := range view.Rows(store.Snapshot()) {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.UserID, u.Role, u.Status)
		}
		return w.Flush()
	case "register":
		fs := flag.NewFlagSet("users register", flag.ExitOnError)
		handle := fs.String("id", "", "login handle")
		password := fs.String("password", "", "password (6+ characters)")
		role := fs.String("role", "", "assigned role")
		_ = fs.Parse(args[1:])
		draft := console.RegistrationDraft{UserID: *handle, Password: *password, Role: *role}
		if err := console.ValidateRegistration(draft); err != nil {
			return err
		}
		return client.Register(ctx, draft.UserID, draft.Password, draft.Role)
	}
	usage()
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: opsdeckctl [-addr URL] [-user HANDLE -pass PASSWORD] <command>

commands:
  sales list|add|set|rm
  requests list|add|approve|deny
  users list|register`)
	os.Exit(2)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "opsdeckctl:", err)
	os.Exit(1)
}
