package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"order-processor/internal/config"
	"order-processor/internal/infra"
	"order-processor/internal/orderform"
)

const requestTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	client := infra.NewOrderClient(cfg.OrderFunctionURL, requestTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch args[0] {
	case "submit":
		return submit(ctx, client, args[1:], stdout, stderr)
	case "list":
		return list(ctx, client, stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: orderctl submit -name NAME -email EMAIL -phone PHONE -address ADDRESS [-quantity N]")
	fmt.Fprintln(w, "       orderctl list")
}

func submit(ctx context.Context, client infra.OrderClientInterface, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	address := fs.String("address", "", "shipping address")
	quantity := fs.String("quantity", "1", "number of upgrades")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	form := orderform.NewForm(client)
	form.SetInput(orderform.Input{
		Name:     *name,
		Email:    *email,
		Phone:    *phone,
		Address:  *address,
		Quantity: orderform.ParseQuantity(*quantity),
	})

	id, err := form.Submit(ctx)
	if err != nil {
		var fe orderform.FieldErrors
		if errors.As(err, &fe) {
			fields := make([]string, 0, len(fe))
			for field := range fe {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				fmt.Fprintf(stderr, "%s: %s\n", field, fe[field])
			}
			return 1
		}
		fmt.Fprintln(stderr, form.Message())
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "Order %s submitted\n", id)
	fmt.Fprintln(stdout, orderform.ConfirmationPath(id))
	return 0
}

func list(ctx context.Context, client infra.OrderClientInterface, stdout, stderr io.Writer) int {
	view, err := client.ListOrders(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
