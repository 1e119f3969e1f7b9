package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"studio/internal/booking/form"
	"studio/internal/booking/submit"
	"studio/internal/gallery"
	"studio/pkg/client"
	"studio/pkg/config"
	"studio/pkg/model"

	"github.com/urfave/cli/v2"
)

func book(c *cli.Context) error {
	cfg, err := config.LoadClient(ClientName)
	if err != nil {
		return err
	}

	var route string
	controller, api, err := submit.NewFromConfig(cfg, submit.NavigatorFunc(func(r string) { route = r }))
	if err != nil {
		return err
	}
	defer controller.Close()
	defer api.CloseIdleConnections()

	for _, f := range form.Fields {
		if err := controller.Edit(f, c.String(flagNames[f])); err != nil {
			return err
		}
	}

	outcome, err := controller.Submit(c.Context)
	if err != nil && !errors.Is(err, submit.ErrInvalid) {
		return err
	}

	view := submit.Present(controller.Snapshot())
	if view.Redirect == "" {
		printRejection(os.Stderr, view)
		return cli.Exit("", 1)
	}

	fmt.Printf("Booking #%d submitted (%s). Opening %s\n", outcome.BookingID, outcome.Status, route)
	details, err := api.Contact(c.Context)
	if err != nil {
		cfg.Log.Warn("Failed to load contact details", "error", err)
		return nil
	}
	printContact(os.Stdout, details)
	return nil
}

func printRejection(w io.Writer, view submit.View) {
	if view.Alert != "" {
		fmt.Fprintln(w, view.Alert)
	}
	for _, f := range form.Fields {
		if msg, ok := view.FieldMessages[f]; ok {
			fmt.Fprintf(w, "  --%s: %s\n", flagNames[f], msg)
		}
	}
}

func portfolio(c *cli.Context) error {
	api, cfg, err := newAPI()
	if err != nil {
		return err
	}
	defer api.CloseIdleConnections()

	var category *int64
	if c.IsSet("category") {
		id := c.Int64("category")
		category = &id
	}

	page, err := api.Portfolio(c.Context, config.NormalizePage(c.Int("page")), category)
	if err != nil {
		return err
	}
	cfg.Log.Debug("Portfolio page loaded", "count", page.Count, "page", page.CurrentPage)

	items := gallery.FilterItems(page.Results, c.String("filter"))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tTYPE\tFILE")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", item.ID, item.Category.Name, item.FileType, item.File)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\npage %d of %d, filters: %s\n", page.CurrentPage, page.TotalPages, strings.Join(gallery.Filters(page.Results), ", "))
	return nil
}

func services(c *cli.Context) error {
	api, _, err := newAPI()
	if err != nil {
		return err
	}
	defer api.CloseIdleConnections()

	page, err := api.Services(c.Context, config.NormalizePage(c.Int("page")))
	if err != nil {
		return err
	}

	for _, card := range gallery.Cards(page.Results) {
		fmt.Printf("%s (from %s)\n", card.Name, card.StartingPrice)
		for _, feature := range card.Features {
			fmt.Printf("  - %s\n", feature)
		}
	}
	fmt.Printf("\npage %d of %d\n", page.CurrentPage, page.TotalPages)
	return nil
}

func contact(c *cli.Context) error {
	api, _, err := newAPI()
	if err != nil {
		return err
	}
	defer api.CloseIdleConnections()

	details, err := api.Contact(c.Context)
	if err != nil {
		return err
	}
	printContact(os.Stdout, details)
	return nil
}

func newAPI() (*client.StudioClient, *config.ClientConfig, error) {
	cfg, err := config.LoadClient(ClientName)
	if err != nil {
		return nil, nil, err
	}
	api, err := client.NewStudioClient(cfg.APIBaseURL, cfg.RequestTimeout, cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return api, cfg, nil
}

func printContact(w io.Writer, d *model.ContactData) {
	rows := map[string]string{
		"email":    d.Email,
		"phone":    d.PhoneNumber,
		"location": d.Location,
	}
	for name, link := range map[string]*string{"facebook": d.FacebookLink, "instagram": d.InstagramLink, "tiktok": d.TikTokLink} {
		if link != nil && *link != "" {
			rows[name] = *link
		}
	}

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, rows[k])
	}
	tw.Flush()
}
