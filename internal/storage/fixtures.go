package storage

import "github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"

// DefaultProducts returns the seed drinkware catalog. Callers get a fresh
// slice on every call so stores can hand it out without copying again.
func DefaultProducts() []models.Product {
	return []models.Product{
		{
			Name:        "ZUS OG Cup 2.0 With Screw-On Lid 500ml",
			Category:    "Cup",
			Collection:  "OG",
			Price:       55.00,
			SalePrice:   44.00,
			OnPromotion: true,
			Material:    "Stainless Steel",
			Capacity:    "500ml",
			Colors:      []string{"Thunder Blue", "Space Black", "Lucky Pink"},
		},
		{
			Name:       "ZUS All-Day Cup 500ml (17oz)",
			Category:   "Cup",
			Collection: "All-Day",
			Price:      79.00,
			Material:   "Stainless Steel",
			Capacity:   "500ml",
			Colors:     []string{"Mountain Blue", "Forest Green", "Cloud White"},
		},
		{
			Name:       "ZUS OG Tumbler 600ml",
			Category:   "Tumbler",
			Collection: "OG",
			Price:      65.00,
			Material:   "Stainless Steel",
			Capacity:   "600ml",
			Colors:     []string{"Space Black", "Cloud White"},
		},
		{
			Name:        "ZUS All Can Tumbler 600ml",
			Category:    "Tumbler",
			Collection:  "All-Day",
			Price:       85.00,
			SalePrice:   68.00,
			OnPromotion: true,
			Material:    "Stainless Steel",
			Capacity:    "600ml",
			Colors:      []string{"Matte Black"},
		},
		{
			Name:       "ZUS Frozee Cold Cup 650ml",
			Category:   "Cup",
			Collection: "Frozee",
			Price:      29.00,
			Material:   "BPA-Free Plastic",
			Capacity:   "650ml",
			Colors:     []string{"Frost Clear", "Icy Blue"},
		},
		{
			Name:       "ZUS OG Ceramic Mug 16oz",
			Category:   "Mug",
			Collection: "OG",
			Price:      39.00,
			Material:   "Ceramic",
			Capacity:   "473ml",
			Colors:     []string{"Cream", "Charcoal"},
		},
		{
			Name:        "ZUS Sundaze Glass Cup 450ml",
			Category:    "Cup",
			Collection:  "Sundaze",
			Price:       49.00,
			SalePrice:   39.00,
			OnPromotion: true,
			Material:    "Glass",
			Capacity:    "450ml",
			Colors:      []string{"Amber", "Rose"},
		},
		{
			Name:       "ZUS Corak Malaysia Tiga Tumbler 500ml",
			Category:   "Tumbler",
			Collection: "Corak Malaysia",
			Price:      75.00,
			Material:   "Stainless Steel",
			Capacity:   "500ml",
			Colors:     []string{"Batik Blue"},
		},
		{
			Name:       "ZUS Travel Flask 750ml",
			Category:   "Flask",
			Collection: "All-Day",
			Price:      99.00,
			Material:   "Stainless Steel",
			Capacity:   "750ml",
			Colors:     []string{"Midnight Black"},
		},
		{
			Name:        "ZUS Mini Flask 350ml",
			Category:    "Flask",
			Collection:  "Sundaze",
			Price:       69.00,
			SalePrice:   55.00,
			OnPromotion: true,
			Material:    "Stainless Steel",
			Capacity:    "350ml",
			Colors:      []string{"Sakura Pink", "Sage Green"},
		},
		{
			Name:       "ZUS Everyday Bottle 1L",
			Category:   "Bottle",
			Collection: "Frozee",
			Price:      45.00,
			Material:   "BPA-Free Plastic",
			Capacity:   "1000ml",
			Colors:     []string{"Clear", "Smoke"},
		},
		{
			Name:       "ZUS Kopi Lover Mug Set",
			Category:   "Mug",
			Collection: "OG",
			Price:      89.00,
			Material:   "Ceramic",
			Capacity:   "300ml",
			Colors:     []string{"White", "Black"},
		},
	}
}

// DefaultOutlets returns the seed outlet directory. Four of the ten sit in
// Selangor; hours and services are best-effort and may be blank.
func DefaultOutlets() []models.Outlet {
	return []models.Outlet{
		{
			Name:         "ZUS Coffee SS15 Courtyard",
			Address:      "G-01, SS15 Courtyard, Jalan SS15/4G, 47500 Subang Jaya, Selangor",
			OpeningHours: "8:00 AM - 10:00 PM",
			Services:     []string{"Dine-In", "WiFi", "Delivery"},
		},
		{
			Name:         "ZUS Coffee Shah Alam Seksyen 7",
			Address:      "No. 2, Jalan Plumbum 7/101, Seksyen 7, 40000 Shah Alam, Selangor",
			OpeningHours: "7:30 AM - 9:30 PM",
			Services:     []string{"Dine-In", "Drive-Thru"},
		},
		{
			Name:     "ZUS Coffee IOI Mall Puchong",
			Address:  "LG-12, IOI Mall, Bandar Puchong Jaya, 47170 Puchong, Selangor",
			Services: []string{"Dine-In", "Pickup"},
		},
		{
			Name:         "ZUS Coffee Setia City Mall",
			Address:      "F-23, Setia City Mall, Persiaran Setia Dagang, 40170 Shah Alam, Selangor",
			OpeningHours: "10:00 AM - 10:00 PM",
			Services:     []string{"Dine-In", "WiFi"},
		},
		{
			Name:         "ZUS Coffee KLCC",
			Address:      "Lot 421, Suria KLCC, Kuala Lumpur City Centre, 50088 Kuala Lumpur",
			OpeningHours: "8:00 AM - 10:00 PM",
			Services:     []string{"Dine-In", "WiFi"},
		},
		{
			Name:         "ZUS Coffee Mid Valley Megamall",
			Address:      "T-010A, Mid Valley Megamall, Lingkaran Syed Putra, 59200 Kuala Lumpur",
			OpeningHours: "10:00 AM - 10:00 PM",
			Services:     []string{"Dine-In", "Pickup", "Delivery"},
		},
		{
			Name:     "ZUS Coffee Bangsar",
			Address:  "21, Jalan Telawi 3, Bangsar Baru, 59100 Kuala Lumpur",
			Services: []string{"Dine-In"},
		},
		{
			Name:         "ZUS Coffee Gurney Plaza",
			Address:      "170-01-44, Gurney Plaza, Persiaran Gurney, 10250 George Town, Penang",
			OpeningHours: "9:00 AM - 10:00 PM",
			Services:     []string{"Dine-In", "WiFi"},
		},
		{
			Name:         "ZUS Coffee Johor Bahru City Square",
			Address:      "M3-24, Johor Bahru City Square, Jalan Wong Ah Fook, 80000 Johor Bahru, Johor",
			OpeningHours: "10:00 AM - 10:00 PM",
			Services:     []string{"Dine-In", "Delivery"},
		},
		{
			Name:         "ZUS Coffee Ipoh Parade",
			Address:      "F-025, Ipoh Parade, Jalan Sultan Abdul Jalil, 30350 Ipoh, Perak",
			OpeningHours: "10:00 AM - 10:00 PM",
			Services:     []string{"Dine-In", "Drive-Thru", "WiFi"},
		},
	}
}
