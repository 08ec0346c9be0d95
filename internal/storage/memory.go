package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
)

// MemoryStorage serves the catalog from process memory. It is the default
// backend and is seeded with the fixture catalog unless given its own data.
type MemoryStorage struct {
	mu       sync.RWMutex
	products []models.Product
	outlets  []models.Outlet
}

func NewMemoryStorage() *MemoryStorage {
	return NewMemoryStorageWithData(DefaultProducts(), DefaultOutlets())
}

func NewMemoryStorageWithData(products []models.Product, outlets []models.Outlet) *MemoryStorage {
	return &MemoryStorage{
		products: products,
		outlets:  outlets,
	}
}

func (s *MemoryStorage) SearchProducts(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if matchesProduct(p, query) {
			results = append(results, p)
		}
	}
	sortProducts(results, query.SortByPrice)
	return results, nil
}

func (s *MemoryStorage) SearchOutlets(ctx context.Context, query OutletQuery) ([]models.Outlet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.Outlet, 0, len(s.outlets))
	for _, o := range s.outlets {
		if matchesOutlet(o, query) {
			results = append(results, o)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}

func matchesProduct(p models.Product, q ProductQuery) bool {
	if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
		return false
	}
	if q.Material != "" && !strings.EqualFold(p.Material, q.Material) {
		return false
	}
	if q.Collection != "" && !strings.EqualFold(p.Collection, q.Collection) {
		return false
	}
	if q.OnPromotion && !p.OnPromotion {
		return false
	}
	price := p.EffectivePrice()
	if q.MinPrice != nil && price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && price > *q.MaxPrice {
		return false
	}
	return true
}

func matchesOutlet(o models.Outlet, q OutletQuery) bool {
	if q.Location != "" {
		haystack := strings.ToLower(o.Name + " " + o.Address)
		if !strings.Contains(haystack, strings.ToLower(q.Location)) {
			return false
		}
	}
	for _, want := range q.Services {
		found := false
		for _, have := range o.Services {
			if strings.EqualFold(have, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sortProducts orders results deterministically so identical queries always
// render identical answers: effective price then name when byPrice is set,
// name alone otherwise.
func sortProducts(products []models.Product, byPrice bool) {
	sort.SliceStable(products, func(i, j int) bool {
		if byPrice {
			pi, pj := products[i].EffectivePrice(), products[j].EffectivePrice()
			if pi != pj {
				return pi < pj
			}
		}
		return products[i].Name < products[j].Name
	})
}
