package main

import (
	"fmt"
	"os"
	"strings"

	"studio/internal/booking/form"
	"studio/pkg/model"

	"github.com/urfave/cli/v2"
)

const ClientName = "studioctl"

func main() {
	app := &cli.App{
		Name:  ClientName,
		Usage: "browse the studio site and submit booking requests from the terminal",
		Commands: []*cli.Command{
			{
				Name:   "book",
				Usage:  "submit a booking request",
				Flags:  bookingFlags(),
				Action: book,
			},
			{
				Name:  "portfolio",
				Usage: "list portfolio items",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Value: 1, Usage: "1-based page number"},
					&cli.Int64Flag{Name: "category", Usage: "only items of this category id"},
					&cli.StringFlag{Name: "filter", Value: "all", Usage: "featured, all, or a category name"},
				},
				Action: portfolio,
			},
			{
				Name:   "services",
				Usage:  "list services with their features and starting price",
				Flags:  []cli.Flag{&cli.IntFlag{Name: "page", Value: 1, Usage: "1-based page number"}},
				Action: services,
			},
			{
				Name:   "contact",
				Usage:  "show the studio contact details",
				Action: contact,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flagNames maps each booking field to its command line flag.
var flagNames = map[form.Field]string{
	form.FieldName:          "name",
	form.FieldEmail:         "email",
	form.FieldPhone:         "phone",
	form.FieldSessionType:   "session-type",
	form.FieldPreferredDate: "date",
	form.FieldMessage:       "message",
}

func bookingFlags() []cli.Flag {
	usage := map[form.Field]string{
		form.FieldName:          "your full name",
		form.FieldEmail:         "contact email",
		form.FieldPhone:         "contact phone number",
		form.FieldSessionType:   "one of: " + strings.Join(model.SessionTypes, ", "),
		form.FieldPreferredDate: "preferred date as YYYY-MM-DD",
		form.FieldMessage:       "anything we should know about the session",
	}

	flags := make([]cli.Flag, 0, len(form.Fields))
	for _, f := range form.Fields {
		flags = append(flags, &cli.StringFlag{Name: flagNames[f], Usage: usage[f]})
	}
	return flags
}
