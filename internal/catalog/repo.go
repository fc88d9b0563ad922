package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

type CreateParams struct {
	Name        string
	Description *string
	Image       *string
	Price       float64
	Quantity    int
}

// UpdateParams carries only the fields to change; nil means keep current.
type UpdateParams struct {
	Name        *string
	Description *string
	Image       *string
	Price       *float64
	Quantity    *int
}

type Repo struct{ DB *pgxpool.Pool }

const productCols = "id, name, description, image, price, quantity"

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.Price, &p.Quantity)
	return p, err
}

func (r *Repo) Create(ctx context.Context, p CreateParams) (Product, error) {
	return scanProduct(r.DB.QueryRow(ctx, `
		INSERT INTO products (name, description, image, price, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+productCols,
		p.Name, p.Description, p.Image, p.Price, p.Quantity))
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

// Update changes only the provided fields and returns the updated row.
func (r *Repo) Update(ctx context.Context, id int64, p UpdateParams) (Product, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Image != nil {
		add("image", *p.Image)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.Quantity != nil {
		add("quantity", *p.Quantity)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), productCols)

	prod, err := scanProduct(r.DB.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return prod, err
}

// Delete removes the product and returns the deleted row.
func (r *Repo) Delete(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx,
		`DELETE FROM products WHERE id = $1 RETURNING `+productCols, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}
