package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
	"github.com/rocketscienceinc/workshop-backend/internal/entity"
)

type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	DeleteByID(ctx context.Context, id string) (*entity.Quote, error)
	Update(ctx context.Context, id, author, text string) (*entity.Quote, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Quote, error)
	Count(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

type quoteRepository struct {
	conn *sql.DB
}

func NewQuoteRepository(conn *sql.DB) QuoteRepository {
	return &quoteRepository{
		conn: conn,
	}
}

func (that *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	query := `INSERT INTO quotes (id, author, quote, created_at, version) VALUES (?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, quote.ID, quote.Author, quote.Quote, quote.CreatedAt, quote.Version)
	if err != nil {
		return fmt.Errorf("can't save quote: %w", err)
	}

	return nil
}

func (that *quoteRepository) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	query := `SELECT id, author, quote, created_at, version FROM quotes WHERE id = ?`

	var quote entity.Quote

	err := that.conn.QueryRowContext(ctx, query, id).
		Scan(&quote.ID, &quote.Author, &quote.Quote, &quote.CreatedAt, &quote.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find quote: %w", err)
	}

	return &quote, nil
}

func (that *quoteRepository) DeleteByID(ctx context.Context, id string) (*entity.Quote, error) {
	quote, err := that.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `DELETE FROM quotes WHERE id = ?`

	if _, err = that.conn.ExecContext(ctx, query, id); err != nil {
		return nil, fmt.Errorf("can't delete quote: %w", err)
	}

	return quote, nil
}

func (that *quoteRepository) Update(ctx context.Context, id, author, text string) (*entity.Quote, error) {
	query := `UPDATE quotes SET author = ?, quote = ?, version = version + 1 WHERE id = ?`

	result, err := that.conn.ExecContext(ctx, query, author, text, id)
	if err != nil {
		return nil, fmt.Errorf("can't update quote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("can't check update result: %w", err)
	}
	if affected == 0 {
		return nil, apperror.ErrNotFound
	}

	return that.GetByID(ctx, id)
}

func (that *quoteRepository) List(ctx context.Context, limit, offset int) ([]*entity.Quote, error) {
	query := `SELECT id, author, quote, created_at, version FROM quotes ORDER BY created_at ASC LIMIT ? OFFSET ?`

	rows, err := that.conn.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("can't list quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]*entity.Quote, 0, limit)
	for rows.Next() {
		var quote entity.Quote
		if err = rows.Scan(&quote.ID, &quote.Author, &quote.Quote, &quote.CreatedAt, &quote.Version); err != nil {
			return nil, fmt.Errorf("can't scan quote: %w", err)
		}
		quotes = append(quotes, &quote)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read quotes: %w", err)
	}

	return quotes, nil
}

func (that *quoteRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(id) FROM quotes`

	var count int
	if err := that.conn.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("can't count quotes: %w", err)
	}

	return count, nil
}

func (that *quoteRepository) Reset(ctx context.Context) error {
	query := `DELETE FROM quotes`

	if _, err := that.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("can't reset quotes: %w", err)
	}

	return nil
}
