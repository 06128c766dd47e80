package usecase

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
	"github.com/rocketscienceinc/workshop-backend/internal/entity"
)

// fakeQuoteRepo keeps quotes in memory, ordered by creation time.
type fakeQuoteRepo struct {
	rows map[string]*entity.Quote
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{rows: make(map[string]*entity.Quote)}
}

func (that *fakeQuoteRepo) Create(_ context.Context, quote *entity.Quote) error {
	that.rows[quote.ID] = quote
	return nil
}

func (that *fakeQuoteRepo) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	quote, ok := that.rows[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return quote, nil
}

func (that *fakeQuoteRepo) DeleteByID(ctx context.Context, id string) (*entity.Quote, error) {
	quote, err := that.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	delete(that.rows, id)
	return quote, nil
}

func (that *fakeQuoteRepo) Update(ctx context.Context, id, author, text string) (*entity.Quote, error) {
	quote, err := that.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	quote.Author = author
	quote.Quote = text
	quote.Version++
	return quote, nil
}

func (that *fakeQuoteRepo) List(_ context.Context, limit, offset int) ([]*entity.Quote, error) {
	ordered := make([]*entity.Quote, 0, len(that.rows))
	for _, quote := range that.rows {
		ordered = append(ordered, quote)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	if offset >= len(ordered) {
		return nil, nil
	}
	if offset+limit > len(ordered) {
		limit = len(ordered) - offset
	}
	return ordered[offset : offset+limit], nil
}

func (that *fakeQuoteRepo) Count(_ context.Context) (int, error) {
	return len(that.rows), nil
}

func (that *fakeQuoteRepo) Reset(_ context.Context) error {
	that.rows = make(map[string]*entity.Quote)
	return nil
}

// fakeTokenRepo hands out sequential tokens and burns them on redemption.
type fakeTokenRepo struct {
	next   int
	issued map[string]int
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{issued: make(map[string]int)}
}

func (that *fakeTokenRepo) Issue(_ context.Context, page int) (string, error) {
	that.next++
	token := fmt.Sprintf("token-%d", that.next)
	that.issued[token] = page
	return token, nil
}

func (that *fakeTokenRepo) Redeem(_ context.Context, token string) (int, error) {
	page, ok := that.issued[token]
	if !ok {
		return 0, apperror.ErrInvalidToken
	}
	delete(that.issued, token)
	return page, nil
}

func newTestBook(t *testing.T) (context.Context, *QuoteBook, *fakeQuoteRepo) {
	t.Helper()

	repo := newFakeQuoteRepo()
	return context.Background(), NewQuoteBook(newTestLogger(), repo, newFakeTokenRepo()), repo
}

func TestQuoteBook_Add(t *testing.T) {
	ctx, book, _ := newTestBook(t)

	quote, err := book.Add(ctx, "Santa", "Ho ho ho")

	require.NoError(t, err)
	require.NotEmpty(t, quote.ID)
	require.Equal(t, 1, quote.Version)

	found, err := book.Get(ctx, quote.ID)
	require.NoError(t, err)
	require.Equal(t, quote, found)
}

func TestQuoteBook_Rewrite(t *testing.T) {
	ctx, book, _ := newTestBook(t)

	quote, err := book.Add(ctx, "Santa", "Ho ho ho")
	require.NoError(t, err)

	updated, err := book.Rewrite(ctx, quote.ID, "Mrs. Claus", "Dinner first")
	require.NoError(t, err)
	require.Equal(t, 2, updated.Version)

	_, err = book.Rewrite(ctx, "missing", "a", "b")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestQuoteBook_List(t *testing.T) {
	ctx, book, repo := newTestBook(t)

	// Given: seven quotes with increasing timestamps
	base := time.Date(2024, 12, 19, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		quote, err := book.Add(ctx, "Elf", fmt.Sprintf("Quote %d", i))
		require.NoError(t, err)
		// pin creation times so ordering does not depend on the wall clock
		repo.rows[quote.ID].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}

	// When: the first page is listed without a token
	page, err := book.List(ctx, "")
	require.NoError(t, err)

	// Then: three oldest quotes, page 1, and a token for more
	require.Len(t, page.Quotes, 3)
	require.Equal(t, 1, page.Page)
	require.Equal(t, "Quote 0", page.Quotes[0].Quote)
	require.NotNil(t, page.NextToken)

	// When: the token is followed twice
	page, err = book.List(ctx, *page.NextToken)
	require.NoError(t, err)
	require.Equal(t, 2, page.Page)
	require.Equal(t, "Quote 3", page.Quotes[0].Quote)
	require.NotNil(t, page.NextToken)

	lastToken := *page.NextToken
	page, err = book.List(ctx, lastToken)
	require.NoError(t, err)

	// Then: the final page holds the leftover quote and no further token
	require.Len(t, page.Quotes, 1)
	require.Equal(t, 3, page.Page)
	require.Nil(t, page.NextToken)

	// When: a burnt token is reused
	_, err = book.List(ctx, lastToken)

	// Then: it is rejected
	require.ErrorIs(t, err, apperror.ErrInvalidToken)
}
