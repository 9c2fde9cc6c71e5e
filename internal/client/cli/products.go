package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"shopgate/internal/client/models"
	"shopgate/internal/client/session"
)

// Products lists the catalog.
func (a *App) Products(ctx context.Context) error {
	if !a.requireView(true) {
		return nil
	}

	list, err := a.api.Products(ctx, a.gate.Token())
	if err != nil {
		printlnFn("Could not load products:", err.Error())
		return nil
	}

	a.route = session.RouteProducts
	for _, p := range list {
		printlnFn(fmt.Sprintf("%s  %-24s %8.2f  stock %d", p.ID, p.Name, p.Price, p.Stock))
	}
	if len(list) == 0 {
		printlnFn("No products yet")
	}
	return nil
}

// AddProduct collects a product form and creates the entry. An image can
// be attached by uploading to a presigned URL fetched from the backend.
func (a *App) AddProduct(ctx context.Context) error {
	if !a.requireView(true) {
		return nil
	}
	a.route = session.RouteAddProduct

	name, err := getSimpleText(a.reader, "Product name", os.Stdout)
	if err != nil {
		return err
	}
	priceStr, err := getSimpleText(a.reader, "Price", os.Stdout)
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		printlnFn("Price must be a number")
		return nil
	}
	stockStr, err := getSimpleText(a.reader, "Stock", os.Stdout)
	if err != nil {
		return err
	}
	stock, err := strconv.Atoi(stockStr)
	if err != nil {
		printlnFn("Stock must be an integer")
		return nil
	}

	p := &models.Product{Name: name, Price: price, Stock: stock}

	wantImage, err := Confirm(a.reader, "Attach an image?", os.Stdout)
	if err != nil {
		return err
	}
	if wantImage {
		key, url, err := a.api.ImageUploadURL(ctx, a.gate.Token())
		if err != nil {
			printlnFn("Could not get upload URL:", err.Error())
		} else {
			p.ImageKey = key
			printlnFn("Upload your image with: curl -X PUT -T <file> '" + url + "'")
		}
	}

	created, err := a.api.CreateProduct(ctx, a.gate.Token(), p)
	if err != nil {
		printlnFn("Could not create product:", err.Error())
		return nil
	}
	printlnFn("Created product", created.ID)
	a.route = session.RouteProducts
	return nil
}
