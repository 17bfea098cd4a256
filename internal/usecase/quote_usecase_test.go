package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"presupuestos_service/internal/adapter/persistence/memory"
	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/infrastructure/observability"
	"presupuestos_service/internal/usecase/interfaces"
	mock_interfaces "presupuestos_service/internal/usecase/interfaces/mocks"
	"presupuestos_service/internal/usecase/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func validInput() CreateQuoteInput {
	return CreateQuoteInput{
		SellerID:    "02",
		Client:      entities.Client{Name: "ACME", Email: "acme@example.com", Phone: "555-0101"},
		Description: "Mantenimiento anual",
		Amount:      amount("1500.00"),
	}
}

// numbered stands in for a generator that assigns seq and writes the quote.
func numbered(seq string) func(context.Context, entities.Quote) (entities.Quote, error) {
	return func(_ context.Context, q entities.Quote) (entities.Quote, error) {
		q.SequenceNumber = seq
		return q, nil
	}
}

type quoteMocks struct {
	quotes   *mock_interfaces.MockIQuoteRepository
	sellers  *mock_interfaces.MockISellerRepository
	sequence *mocks.MockISequenceGenerator
}

func newQuoteUseCaseWithMocks(t *testing.T) (*QuoteUseCase, quoteMocks) {
	ctrl := gomock.NewController(t)
	m := quoteMocks{
		quotes:   mock_interfaces.NewMockIQuoteRepository(ctrl),
		sellers:  mock_interfaces.NewMockISellerRepository(ctrl),
		sequence: mocks.NewMockISequenceGenerator(ctrl),
	}
	uc := NewQuoteUseCase(m.quotes, m.sellers, m.sequence, art, observability.NewMetrics(), zap.NewNop())
	return uc, m
}

func TestQuoteUseCase_CreateQuote(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(in *CreateQuoteInput)
			want   error
		}{
			{"missing seller", func(in *CreateQuoteInput) { in.SellerID = "  " }, ErrInvalidSellerID},
			{"missing client name", func(in *CreateQuoteInput) { in.Client.Name = "" }, ErrInvalidClientName},
			{"missing description", func(in *CreateQuoteInput) { in.Description = " " }, ErrInvalidDescription},
			{"missing amount", func(in *CreateQuoteInput) { in.Amount = nil }, ErrInvalidAmount},
			{"negative amount", func(in *CreateQuoteInput) { in.Amount = amount("-0.01") }, ErrInvalidAmount},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				uc := NewQuoteUseCase(nil, nil, nil, art, observability.NewMetrics(), zap.NewNop())
				in := validInput()
				tc.mutate(&in)
				if _, err := uc.CreateQuote(context.Background(), in, ListQuotesInput{}); !errors.Is(err, tc.want) {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}
			})
		}
	})

	t.Run("zero amount is accepted", func(t *testing.T) {
		uc, m := newQuoteUseCaseWithMocks(t)
		in := validInput()
		in.Amount = amount("0")
		m.sellers.EXPECT().GetByID(gomock.Any(), "02").Return(entities.Seller{ID: "02", Name: "Ana"}, nil)
		m.sequence.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(numbered("1506250201"))
		m.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return([]entities.Quote{}, nil)

		if _, err := uc.CreateQuote(context.Background(), in, ListQuotesInput{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("forces pending and refreshes the listing", func(t *testing.T) {
		uc, m := newQuoteUseCaseWithMocks(t)
		now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
		uc.now = func() time.Time { return now }

		in := validInput()
		in.Status = "approved"
		in.Client.Name = "  ACME  "
		refresh := ListQuotesInput{SellerID: "02"}

		m.sellers.EXPECT().GetByID(gomock.Any(), "02").Return(entities.Seller{ID: "02", Code: "02", Name: "Ana"}, nil)
		m.sequence.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(ctx context.Context, q entities.Quote) (entities.Quote, error) {
				if q.Status != entities.QuoteStatusPending {
					t.Fatalf("expected pending, got %s", q.Status)
				}
				if q.ID == "" || q.SellerID != "02" || q.SellerName != "Ana" || q.Client.Name != "ACME" {
					t.Fatalf("unexpected quote: %+v", q)
				}
				if !q.CreatedAt.Equal(now) {
					t.Fatalf("unexpected created_at %v", q.CreatedAt)
				}
				return numbered("1506250201")(ctx, q)
			},
		)
		m.quotes.EXPECT().List(gomock.Any(), entities.QuoteFilter{SellerID: "02"}).DoAndReturn(
			func(_ context.Context, _ entities.QuoteFilter) ([]entities.Quote, error) {
				return []entities.Quote{{ID: "listed"}}, nil
			},
		)

		res, err := uc.CreateQuote(context.Background(), in, refresh)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Quote.Status != entities.QuoteStatusPending || res.Quote.SequenceNumber != "1506250201" || len(res.Quotes) != 1 {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("unknown seller keeps an empty name", func(t *testing.T) {
		uc, m := newQuoteUseCaseWithMocks(t)
		m.sellers.EXPECT().GetByID(gomock.Any(), "02").Return(entities.Seller{}, nil)
		m.sequence.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, q entities.Quote) (entities.Quote, error) {
				if q.SellerName != "" {
					t.Fatalf("expected empty seller name, got %q", q.SellerName)
				}
				return numbered("1506250201")(ctx, q)
			},
		)
		m.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

		if _, err := uc.CreateQuote(context.Background(), validInput(), ListQuotesInput{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("sequence failure aborts the create", func(t *testing.T) {
		uc, m := newQuoteUseCaseWithMocks(t)
		m.sellers.EXPECT().GetByID(gomock.Any(), "02").Return(entities.Seller{ID: "02"}, nil)
		m.sequence.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quote{}, ErrSequenceUnavailable)

		if _, err := uc.CreateQuote(context.Background(), validInput(), ListQuotesInput{}); !errors.Is(err, ErrSequenceUnavailable) {
			t.Fatalf("expected ErrSequenceUnavailable, got %v", err)
		}
	})

	t.Run("sequence conflict aborts the create", func(t *testing.T) {
		uc, m := newQuoteUseCaseWithMocks(t)
		m.sellers.EXPECT().GetByID(gomock.Any(), "02").Return(entities.Seller{ID: "02"}, nil)
		m.sequence.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quote{}, ErrSequenceConflict)

		if _, err := uc.CreateQuote(context.Background(), validInput(), ListQuotesInput{}); !errors.Is(err, ErrSequenceConflict) {
			t.Fatalf("expected ErrSequenceConflict, got %v", err)
		}
	})

	t.Run("seller lookup failure", func(t *testing.T) {
		uc, m := newQuoteUseCaseWithMocks(t)
		m.sellers.EXPECT().GetByID(gomock.Any(), "02").Return(entities.Seller{}, errors.New("db"))

		if _, err := uc.CreateQuote(context.Background(), validInput(), ListQuotesInput{}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("refresh failure still returns the quote", func(t *testing.T) {
		uc, m := newQuoteUseCaseWithMocks(t)
		m.sellers.EXPECT().GetByID(gomock.Any(), "02").Return(entities.Seller{ID: "02"}, nil)
		m.sequence.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(numbered("1506250201"))
		m.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("scan failed"))

		res, err := uc.CreateQuote(context.Background(), validInput(), ListQuotesInput{})
		if !errors.Is(err, ErrListingRefresh) {
			t.Fatalf("expected ErrListingRefresh, got %v", err)
		}
		if res.Quote.ID == "" || res.Quotes != nil {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestQuoteUseCase_ListQuotesDateBounds(t *testing.T) {
	uc, m := newQuoteUseCaseWithMocks(t)
	from := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	m.quotes.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f entities.QuoteFilter) ([]entities.Quote, error) {
			wantFrom := time.Date(2025, 6, 15, 0, 0, 0, 0, art)
			wantTo := time.Date(2025, 6, 16, 23, 59, 59, int(999*time.Millisecond), art)
			if f.CreatedFrom == nil || !f.CreatedFrom.Equal(wantFrom) {
				t.Fatalf("unexpected from %v", f.CreatedFrom)
			}
			if f.CreatedTo == nil || !f.CreatedTo.Equal(wantTo) {
				t.Fatalf("unexpected to %v", f.CreatedTo)
			}
			if f.ClientName != "ACME" {
				t.Fatalf("expected trimmed client name, got %q", f.ClientName)
			}
			return []entities.Quote{}, nil
		},
	)

	if _, err := uc.ListQuotes(context.Background(), ListQuotesInput{ClientName: " ACME ", DateFrom: &from, DateTo: &to}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQuoteUseCase_UpdateStatus(t *testing.T) {
	t.Run("invalid target", func(t *testing.T) {
		uc, _ := newQuoteUseCaseWithMocks(t)
		if _, err := uc.UpdateStatus(context.Background(), "q-1", entities.QuoteStatusPending, ListQuotesInput{}); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		uc, _ := newQuoteUseCaseWithMocks(t)
		if _, err := uc.ApproveQuote(context.Background(), "  ", ListQuotesInput{}); !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		uc, m := newQuoteUseCaseWithMocks(t)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-9").Return(entities.Quote{}, nil)

		if _, err := uc.RejectQuote(context.Background(), "q-9", ListQuotesInput{}); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("same status does not touch the store", func(t *testing.T) {
		uc, m := newQuoteUseCaseWithMocks(t)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved}, nil)

		if _, err := uc.ApproveQuote(context.Background(), "q-1", ListQuotesInput{}); !errors.Is(err, ErrStatusUnchanged) {
			t.Fatalf("expected ErrStatusUnchanged, got %v", err)
		}
	})

	t.Run("deleted between read and write", func(t *testing.T) {
		uc, m := newQuoteUseCaseWithMocks(t)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending}, nil)
		m.quotes.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusApproved).Return(entities.Quote{}, nil)

		if _, err := uc.ApproveQuote(context.Background(), "q-1", ListQuotesInput{}); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("store error", func(t *testing.T) {
		uc, m := newQuoteUseCaseWithMocks(t)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, errors.New("db"))

		_, err := uc.ApproveQuote(context.Background(), "q-1", ListQuotesInput{})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

// The scenarios below run against the in-memory store end to end.

func newMemoryQuoteUseCase(t *testing.T, strategy string) *QuoteUseCase {
	return newMemoryQuoteUseCaseWith(t, strategy, memory.NewQuoteRepository())
}

func newMemoryQuoteUseCaseWith(t *testing.T, strategy string, quotes interfaces.IQuoteRepository) *QuoteUseCase {
	t.Helper()
	sellers := memory.NewSellerRepository(entities.Seller{ID: "02", Code: "02", Name: "Ana", Email: "ana@example.com"})
	metrics := observability.NewMetrics()
	seq, err := NewSequenceGenerator(strategy, quotes, memory.NewQuoteCounter(quotes), art, metrics, zap.NewNop())
	if err != nil {
		t.Fatalf("sequence generator: %v", err)
	}
	return NewQuoteUseCase(quotes, sellers, seq, art, metrics, zap.NewNop())
}

// failingQuotes fails the next `failures` writes and delegates everything else.
type failingQuotes struct {
	*memory.QuoteRepository
	failures int
}

func (f *failingQuotes) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	if f.failures > 0 {
		f.failures--
		return entities.Quote{}, errors.New("write timed out")
	}
	return f.QuoteRepository.Create(ctx, q)
}

func TestQuoteUseCase_SameDayNumbering(t *testing.T) {
	for _, strategy := range []string{"count", "counter"} {
		t.Run(strategy, func(t *testing.T) {
			uc := newMemoryQuoteUseCase(t, strategy)
			uc.now = func() time.Time { return time.Date(2025, 6, 15, 14, 0, 0, 0, art) }

			first, err := uc.CreateQuote(context.Background(), validInput(), ListQuotesInput{})
			if err != nil {
				t.Fatalf("first create: %v", err)
			}
			second, err := uc.CreateQuote(context.Background(), validInput(), ListQuotesInput{})
			if err != nil {
				t.Fatalf("second create: %v", err)
			}
			if first.Quote.SequenceNumber != "1506250201" || second.Quote.SequenceNumber != "1506250202" {
				t.Fatalf("unexpected numbers %s, %s", first.Quote.SequenceNumber, second.Quote.SequenceNumber)
			}
			if len(second.Quotes) != 2 || second.Quotes[0].ID != second.Quote.ID {
				t.Fatalf("refresh should list the new quote first: %+v", second.Quotes)
			}

			uc.now = func() time.Time { return time.Date(2025, 6, 16, 9, 0, 0, 0, art) }
			next, err := uc.CreateQuote(context.Background(), validInput(), ListQuotesInput{})
			if err != nil {
				t.Fatalf("next-day create: %v", err)
			}
			if next.Quote.SequenceNumber != "1606250201" {
				t.Fatalf("expected the ordinal to restart, got %s", next.Quote.SequenceNumber)
			}
		})
	}
}

func TestQuoteUseCase_FailedWriteKeepsOrdinal(t *testing.T) {
	for _, strategy := range []string{"count", "counter"} {
		t.Run(strategy, func(t *testing.T) {
			quotes := &failingQuotes{QuoteRepository: memory.NewQuoteRepository(), failures: 1}
			uc := newMemoryQuoteUseCaseWith(t, strategy, quotes)
			uc.now = func() time.Time { return time.Date(2025, 6, 15, 14, 0, 0, 0, art) }

			if _, err := uc.CreateQuote(context.Background(), validInput(), ListQuotesInput{}); err == nil {
				t.Fatalf("expected the first write to fail")
			}
			res, err := uc.CreateQuote(context.Background(), validInput(), ListQuotesInput{})
			if err != nil {
				t.Fatalf("second create: %v", err)
			}
			if res.Quote.SequenceNumber != "1506250201" {
				t.Fatalf("expected 1506250201 for the first stored quote, got %s", res.Quote.SequenceNumber)
			}

			stored, err := quotes.List(context.Background(), entities.QuoteFilter{})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(stored) != 1 || stored[0].SequenceNumber != "1506250201" {
				t.Fatalf("unexpected stored quotes: %+v", stored)
			}
		})
	}
}

func TestQuoteUseCase_ApproveThenReject(t *testing.T) {
	uc := newMemoryQuoteUseCase(t, "counter")
	created, err := uc.CreateQuote(context.Background(), validInput(), ListQuotesInput{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := uc.ApproveQuote(context.Background(), created.Quote.ID, ListQuotesInput{}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	res, err := uc.RejectQuote(context.Background(), created.Quote.ID, ListQuotesInput{})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}

	got := res.Quote
	if got.Status != entities.QuoteStatusRejected {
		t.Fatalf("expected rejected, got %s", got.Status)
	}
	want := created.Quote
	want.Status = entities.QuoteStatusRejected
	if got.ID != want.ID || got.SequenceNumber != want.SequenceNumber || !got.CreatedAt.Equal(want.CreatedAt) ||
		got.SellerID != want.SellerID || got.SellerName != want.SellerName || got.Client != want.Client ||
		got.Description != want.Description || !got.Amount.Equal(want.Amount) {
		t.Fatalf("fields other than status changed:\n got %+v\nwant %+v", got, want)
	}
	if len(res.Quotes) != 1 || res.Quotes[0].Status != entities.QuoteStatusRejected {
		t.Fatalf("refresh should observe the write: %+v", res.Quotes)
	}
}

func TestQuoteUseCase_ListByAmountRange(t *testing.T) {
	uc := newMemoryQuoteUseCase(t, "counter")
	for _, v := range []string{"50", "150", "500", "600"} {
		in := validInput()
		in.Amount = amount(v)
		if _, err := uc.CreateQuote(context.Background(), in, ListQuotesInput{}); err != nil {
			t.Fatalf("create %s: %v", v, err)
		}
	}

	quotes, err := uc.ListQuotes(context.Background(), ListQuotesInput{AmountMin: amount("100"), AmountMax: amount("500")})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	seen := map[string]bool{}
	for _, q := range quotes {
		seen[q.Amount.String()] = true
	}
	if !seen["150"] || !seen["500"] {
		t.Fatalf("expected amounts 150 and 500, got %v", seen)
	}
}
