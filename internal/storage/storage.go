package storage

import (
	"context"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
)

// ProductQuery narrows a catalog search. Nil price bounds mean unbounded;
// empty strings mean no filter on that field. Results are always ordered
// deterministically: by effective price (then name) when SortByPrice is
// set, by name otherwise.
type ProductQuery struct {
	MinPrice    *float64
	MaxPrice    *float64
	Category    string
	Material    string
	Collection  string
	OnPromotion bool
	SortByPrice bool
}

// OutletQuery narrows an outlet search. Location matches against outlet
// names and addresses; Services requires every listed service, compared
// case-insensitively.
type OutletQuery struct {
	Location string
	Services []string
}

type ProductStore interface {
	SearchProducts(ctx context.Context, query ProductQuery) ([]models.Product, error)
}

type OutletStore interface {
	SearchOutlets(ctx context.Context, query OutletQuery) ([]models.Outlet, error)
}

// CatalogStore is the complete read-only catalog backing the bot.
type CatalogStore interface {
	ProductStore
	OutletStore
	Ping(ctx context.Context) error
	Close() error
}
