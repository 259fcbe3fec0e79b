package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// OrderRepositoryPG persists store products and orders.
type OrderRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepositoryPG.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepositoryPG {
	return &OrderRepositoryPG{pool: pool}
}

// ListProducts returns the product catalog.
func (r *OrderRepositoryPG) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, description, price, currency, image, category, stock
FROM products
ORDER BY name ASC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Currency, &p.Image, &p.Category, &p.Stock); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateOrder records a purchase and decrements stock in one transaction.
// Returns domain.ErrOutOfStock when the product has no remaining stock and
// domain.ErrNotFound when the product does not exist.
func (r *OrderRepositoryPG) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var (
		price float64
		stock int
	)
	row := tx.QueryRow(ctx, `SELECT price, stock FROM products WHERE id = $1 FOR UPDATE`, order.ProductID)
	if err := row.Scan(&price, &stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if stock <= 0 {
		return domain.ErrOutOfStock
	}

	if _, err := tx.Exec(ctx, `UPDATE products SET stock = stock - 1 WHERE id = $1`, order.ProductID); err != nil {
		return err
	}

	order.Total = price
	order.Status = domain.OrderStatusPending
	if _, err := tx.Exec(ctx, `
INSERT INTO orders (id, user_id, product_id, payment_method, status, total)
VALUES ($1, $2, $3, $4, $5, $6);
`, order.ID, order.UserID, order.ProductID, order.PaymentMethod, order.Status, order.Total); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdateOrderStatus moves an order to its terminal state.
func (r *OrderRepositoryPG) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, orderID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListOrdersByUser returns the user's orders, newest first.
func (r *OrderRepositoryPG) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, product_id, payment_method, status, total, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.ProductID, &o.PaymentMethod, &o.Status, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
