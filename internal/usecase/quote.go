package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/workshop-backend/internal/entity"
)

const quotesPerPage = 3

type quoteRepo interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	DeleteByID(ctx context.Context, id string) (*entity.Quote, error)
	Update(ctx context.Context, id, author, text string) (*entity.Quote, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Quote, error)
	Count(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

type tokenRepo interface {
	Issue(ctx context.Context, page int) (string, error)
	Redeem(ctx context.Context, token string) (int, error)
}

// QuoteBook manages the quote collection and its paginated listing.
type QuoteBook struct {
	logger *slog.Logger
	quotes quoteRepo
	tokens tokenRepo
}

func NewQuoteBook(logger *slog.Logger, quotes quoteRepo, tokens tokenRepo) *QuoteBook {
	return &QuoteBook{
		logger: logger.With("component", "quotebook"),

		quotes: quotes,
		tokens: tokens,
	}
}

// QuotePage is one page of the listing plus the token for the next one.
type QuotePage struct {
	Quotes    []*entity.Quote `json:"quotes"`
	Page      int             `json:"page"`
	NextToken *string         `json:"next_token"`
}

func (that *QuoteBook) Add(ctx context.Context, author, text string) (*entity.Quote, error) {
	quote := &entity.Quote{
		ID:        uuid.NewString(),
		Author:    author,
		Quote:     text,
		CreatedAt: time.Now().UTC(),
		Version:   1,
	}

	if err := that.quotes.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("could not add quote: %w", err)
	}

	return quote, nil
}

func (that *QuoteBook) Get(ctx context.Context, id string) (*entity.Quote, error) {
	return that.quotes.GetByID(ctx, id)
}

func (that *QuoteBook) Remove(ctx context.Context, id string) (*entity.Quote, error) {
	return that.quotes.DeleteByID(ctx, id)
}

// Rewrite replaces a quote's author and text, bumping its version.
func (that *QuoteBook) Rewrite(ctx context.Context, id, author, text string) (*entity.Quote, error) {
	return that.quotes.Update(ctx, id, author, text)
}

func (that *QuoteBook) Reset(ctx context.Context) error {
	return that.quotes.Reset(ctx)
}

// List returns a page of three quotes, oldest first. An empty token means the
// first page; otherwise the token is redeemed (and burnt) for its page
// number. A next-page token is issued only when more quotes remain.
func (that *QuoteBook) List(ctx context.Context, token string) (*QuotePage, error) {
	page := 0

	if token != "" {
		var err error
		if page, err = that.tokens.Redeem(ctx, token); err != nil {
			return nil, err
		}
	}

	count, err := that.quotes.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not count quotes: %w", err)
	}

	offset := page * quotesPerPage

	quotes, err := that.quotes.List(ctx, quotesPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("could not list quotes: %w", err)
	}

	var nextToken *string
	if offset+quotesPerPage < count {
		issued, err := that.tokens.Issue(ctx, page+1)
		if err != nil {
			return nil, fmt.Errorf("could not issue next page token: %w", err)
		}
		nextToken = &issued
	}

	return &QuotePage{
		Quotes:    quotes,
		Page:      page + 1,
		NextToken: nextToken,
	}, nil
}
