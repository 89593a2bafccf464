// Seeds the catalog with a handful of sample products.
//
// Usage: DATABASE_URL=postgres://... go run ./scripts/seed
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
)

type sample struct {
	name        string
	price       float64
	category    string
	stock       int
	description string
}

var samples = []sample{
	{"Blue Shirt", 49.90, "Clothing", 25, "Camiseta azul de algodão premium."},
	{"Red Mug", 24.90, "Kitchenware", 12, "Caneca de cerâmica vermelha, 300ml."},
	{"Desk Lamp", 89.00, "Home Office", 8, "Luminária de mesa com braço articulado."},
	{"Notebook Sleeve", 59.90, "Accessories", 30, "Capa acolchoada para notebooks de até 15 polegadas."},
}

func main() {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not set")
		os.Exit(1)
	}

	ctx := context.Background()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	for _, s := range samples {
		var id int64
		err := conn.QueryRow(ctx,
			`INSERT INTO products (name, price, category, stock, description)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			s.name, s.price, s.category, s.stock, s.description,
		).Scan(&id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed %q: %v\n", s.name, err)
			os.Exit(1)
		}
		fmt.Printf("seeded product %q (id %d)\n", s.name, id)
	}
}
