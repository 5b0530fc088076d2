package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/m3rciful/servicebot/internal/logger"
	"log/slog"
)

// SQLStore keeps the order snapshot in Postgres while honoring the same
// whole-snapshot contract as the file store: SaveAll replaces all rows in
// one transaction.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore returns a store backed by the given database handle.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

type orderRow struct {
	ID          int            `db:"id"`
	FullName    string         `db:"full_name"`
	Address     string         `db:"address"`
	PhoneNumber string         `db:"phone_number"`
	Reason      string         `db:"reason"`
	Status      string         `db:"status"`
	UserID      int64          `db:"user_id"`
	CreatedAt   time.Time      `db:"created_at"`
	History     types.JSONText `db:"history"`
	Feedback    types.JSONText `db:"feedback"`
}

// LoadAll reads the full snapshot ordered by id. Query failures follow the
// store recovery policy: warn and return an empty snapshot.
func (s *SQLStore) LoadAll(ctx context.Context) ([]Order, error) {
	var rows []orderRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, full_name, address, phone_number, reason, status, user_id, created_at, history, feedback
		   FROM orders ORDER BY id`)
	if err != nil {
		logger.Warn(ctx, "store", "load.query",
			slog.String("driver", "postgres"),
			slog.String("err", err.Error()),
		)
		return []Order{}, nil
	}

	list := make([]Order, 0, len(rows))
	for _, r := range rows {
		o, err := r.toOrder()
		if err != nil {
			logger.Warn(ctx, "store", "load.corrupt",
				slog.String("driver", "postgres"),
				slog.Int("order_id", r.ID),
				slog.String("err", err.Error()),
			)
			continue
		}
		list = append(list, o)
	}
	return list, nil
}

// SaveAll replaces all rows with the provided snapshot in one transaction.
func (s *SQLStore) SaveAll(ctx context.Context, list []Order) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders`); err != nil {
		return fmt.Errorf("clear orders: %w", err)
	}

	const insert = `
		INSERT INTO orders
			(id, full_name, address, phone_number, reason, status, user_id, created_at, history, feedback)
		VALUES
			(:id, :full_name, :address, :phone_number, :reason, :status, :user_id, :created_at, :history, :feedback)`

	for _, o := range list {
		row, err := toRow(o)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, insert, row); err != nil {
			return fmt.Errorf("insert order %d: %w", o.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	logger.Debug(ctx, "store", "save",
		slog.String("driver", "postgres"),
		slog.Int("count", len(list)),
	)
	return nil
}

func (r orderRow) toOrder() (Order, error) {
	o := Order{
		ID:          r.ID,
		FullName:    r.FullName,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
		Reason:      r.Reason,
		Status:      Status(r.Status),
		UserID:      r.UserID,
		CreatedAt:   r.CreatedAt,
	}
	if len(r.History) > 0 {
		if err := json.Unmarshal(r.History, &o.History); err != nil {
			return Order{}, fmt.Errorf("parse history: %w", err)
		}
	}
	if len(r.Feedback) > 0 {
		if err := json.Unmarshal(r.Feedback, &o.Feedback); err != nil {
			return Order{}, fmt.Errorf("parse feedback: %w", err)
		}
	}
	return o, nil
}

func toRow(o Order) (orderRow, error) {
	history, err := json.Marshal(o.History)
	if err != nil {
		return orderRow{}, fmt.Errorf("marshal history for order %d: %w", o.ID, err)
	}
	feedback, err := json.Marshal(o.Feedback)
	if err != nil {
		return orderRow{}, fmt.Errorf("marshal feedback for order %d: %w", o.ID, err)
	}
	return orderRow{
		ID:          o.ID,
		FullName:    o.FullName,
		Address:     o.Address,
		PhoneNumber: o.PhoneNumber,
		Reason:      o.Reason,
		Status:      string(o.Status),
		UserID:      o.UserID,
		CreatedAt:   o.CreatedAt,
		History:     types.JSONText(history),
		Feedback:    types.JSONText(feedback),
	}, nil
}
