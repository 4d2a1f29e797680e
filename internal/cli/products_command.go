package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"warroom/internal/api"
	"warroom/internal/config"
	"warroom/internal/model"
)

func runProducts(args []string) error {
	if len(args) == 0 {
		printProductsUsage()
		return nil
	}

	switch args[0] {
	case "list":
		return runProductsList(args[1:])
	case "add":
		return runProductsAdd(args[1:])
	case "update":
		return runProductsUpdate(args[1:])
	case "remove":
		return runProductsRemove(args[1:])
	case "search":
		return runProductsSearch(args[1:])
	case "help", "-h", "--help":
		printProductsUsage()
		return nil
	default:
		printProductsUsage()
		return fmt.Errorf("unknown products subcommand %q", args[0])
	}
}

func printProductsUsage() {
	fmt.Println("warroom products: manage the product catalog")
	fmt.Println()
	fmt.Println("Subcommands:")
	fmt.Println("  list    [--search q] [--sku sku] [--limit n] [--offset n] [--json]")
	fmt.Println("  add     --name n --sku s [--description d] [--price p] [--quantity q] [--json]")
	fmt.Println("  update  --id n [--name n] [--sku s] [--description d] [--price p] [--quantity q] [--json]")
	fmt.Println("  remove  --id n [--yes]")
	fmt.Println("  search  --q text [--limit n] [--json]")
}

func runProductsList(args []string) error {
	fs := flag.NewFlagSet("products list", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	search := fs.String("search", "", "filter by name/description substring")
	sku := fs.String("sku", "", "filter by exact SKU")
	limit := fs.Int("limit", 0, "page size")
	offset := fs.Int("offset", 0, "page offset")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, _, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}
	products, err := client.ListProducts(context.Background(), api.ProductQuery{
		Search: *search,
		SKU:    *sku,
		Limit:  *limit,
		Offset: *offset,
	})
	if err != nil {
		return err
	}

	if *asJSON {
		return printJSON(products)
	}
	if len(products) == 0 {
		fmt.Println("No products found.")
		return nil
	}
	fmt.Printf("%-5s %-28s %-12s %10s %5s  %s\n", "ID", "NAME", "SKU", "PRICE", "QTY", "STOCK")
	for _, p := range products {
		price := p.Price.String()
		if price == "" {
			price = "-"
		}
		fmt.Printf("%-5d %-28s %-12s %10s %5d  %s\n",
			p.ID, truncateRunes(p.Name, 28), truncateRunes(p.SKU, 12), price, p.Quantity, model.StockLevel(p.Quantity))
	}
	return nil
}

func runProductsAdd(args []string) error {
	fs := flag.NewFlagSet("products add", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	name := fs.String("name", "", "product name (required)")
	sku := fs.String("sku", "", "stock keeping unit (required)")
	description := fs.String("description", "", "optional description")
	price := fs.Float64("price", 0, "unit price")
	quantity := fs.Int("quantity", 0, "stock quantity")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := model.ProductInput{
		Name:     strings.TrimSpace(*name),
		SKU:      strings.TrimSpace(*sku),
		Price:    *price,
		Quantity: *quantity,
	}
	if desc := strings.TrimSpace(*description); desc != "" {
		in.Description = &desc
	}
	if err := in.Validate(); err != nil {
		return err
	}

	client, _, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}
	product, err := client.CreateProduct(context.Background(), in)
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(product)
	}
	fmt.Printf("Created product #%d: %s (%s)\n", product.ID, product.Name, product.SKU)
	return nil
}

func runProductsUpdate(args []string) error {
	fs := flag.NewFlagSet("products update", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	id := fs.Int("id", 0, "product id (required)")
	name := fs.String("name", "", "new name")
	sku := fs.String("sku", "", "new SKU")
	description := fs.String("description", "", "new description (empty string clears it)")
	price := fs.Float64("price", -1, "new price")
	quantity := fs.Int("quantity", -1, "new quantity")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("--id is required")
	}

	client, _, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}
	ctx := context.Background()

	// The gateway replaces the whole record, so start from the current one
	// and overlay only the flags that were set.
	current, err := client.GetProduct(ctx, *id)
	if err != nil {
		return err
	}
	in := model.ProductInput{
		Name:     current.Name,
		SKU:      current.SKU,
		Quantity: current.Quantity,
	}
	if v, ok := current.Price.Float(); ok {
		in.Price = v
	}
	if current.Description != "" {
		desc := current.Description
		in.Description = &desc
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			in.Name = strings.TrimSpace(*name)
		case "sku":
			in.SKU = strings.TrimSpace(*sku)
		case "description":
			if desc := strings.TrimSpace(*description); desc != "" {
				in.Description = &desc
			} else {
				in.Description = nil
			}
		case "price":
			in.Price = *price
		case "quantity":
			in.Quantity = *quantity
		}
	})
	if err := in.Validate(); err != nil {
		return err
	}

	product, err := client.UpdateProduct(ctx, *id, in)
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(product)
	}
	fmt.Printf("Updated product #%d: %s (%s)\n", product.ID, product.Name, product.SKU)
	return nil
}

func runProductsRemove(args []string) error {
	fs := flag.NewFlagSet("products remove", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	id := fs.Int("id", 0, "product id (required)")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("--id is required")
	}

	client, _, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if !*yes {
		product, err := client.GetProduct(ctx, *id)
		if err != nil {
			return err
		}
		ok, err := promptConfirm(fmt.Sprintf("Delete product '%s' (%s)? [y/N] ", product.Name, product.SKU))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := client.DeleteProduct(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Deleted product #%d\n", *id)
	return nil
}

func runProductsSearch(args []string) error {
	fs := flag.NewFlagSet("products search", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	q := fs.String("q", "", "search text (required)")
	limit := fs.Int("limit", 10, "max suggestions")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*q) == "" {
		return errors.New("--q is required")
	}

	client, _, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}
	suggestions, err := client.SearchProducts(context.Background(), *q, *limit)
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(suggestions)
	}
	if len(suggestions) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, s := range suggestions {
		fmt.Printf("%-5d %s\n", s.ID, s.Display)
	}
	return nil
}
