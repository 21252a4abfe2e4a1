package mockapi

import "github.com/mmeshcher/storefront-client/internal/model"

func price(v float64) *float64 { return &v }

// seed наполняет набор данных стартовым каталогом и демо-пользователем.
func (s *dataStore) seed() {
	s.categories = []model.Category{
		{ID: "c1", Name: "Electronics"},
		{ID: "c2", Name: "Clothing"},
		{ID: "c3", Name: "Home"},
		{ID: "c11", Name: "Phones", ParentID: "c1"},
		{ID: "c12", Name: "Laptops", ParentID: "c1"},
		{ID: "c21", Name: "Shoes", ParentID: "c2"},
		{ID: "c22", Name: "Jackets", ParentID: "c2"},
	}

	s.products = []model.Product{
		{
			ID: "p1", Name: "Aurora X1 Phone", Brand: "Aurora", Category: "Phones",
			Price: 899.90, DiscountedPrice: price(799.90),
			Images: []string{"https://img.example.com/p1.jpg"},
			Rating: 4.5, ReviewCount: 2, Stock: 25,
			Variants: []model.Variant{
				{Color: "black", Stock: 15},
				{Color: "silver", Stock: 10, AdditionalPrice: 20},
			},
			Specifications: map[string]string{"display": "6.1\"", "memory": "256GB"},
			Tags:           []string{"featured"},
			Reviews: []model.Review{
				{Author: "Ada", Rating: 5, Comment: "Great phone"},
				{Author: "Grace", Rating: 4, Comment: "Solid build"},
			},
		},
		{
			ID: "p2", Name: "Nimbus Pro Laptop", Brand: "Nimbus", Category: "Laptops",
			Price: 1499.00,
			Images: []string{"https://img.example.com/p2.jpg"},
			Rating: 4.8, ReviewCount: 1, Stock: 8,
			Specifications: map[string]string{"cpu": "8-core", "ram": "16GB"},
			Tags:           []string{"featured"},
			Reviews:        []model.Review{{Author: "Linus", Rating: 4.8, Comment: "Fast"}},
		},
		{
			ID: "p3", Name: "Trail Runner Shoes", Brand: "Stride", Category: "Shoes",
			Price: 120.00, DiscountedPrice: price(89.90),
			Images: []string{"https://img.example.com/p3.jpg"},
			Rating: 4.2, Stock: 40,
			Variants: []model.Variant{
				{Color: "blue", Size: "42", Stock: 12},
				{Color: "blue", Size: "43", Stock: 9},
				{Color: "red", Size: "42", Stock: 7},
			},
			Tags: []string{"sale"},
		},
		{
			ID: "p4", Name: "Alpine Down Jacket", Brand: "Northpeak", Category: "Jackets",
			Price: 249.50,
			Images: []string{"https://img.example.com/p4.jpg"},
			Rating: 4.6, Stock: 14,
			Variants: []model.Variant{
				{Color: "green", Size: "M", Stock: 6},
				{Color: "green", Size: "L", Stock: 8},
			},
		},
		{
			ID: "p5", Name: "Ember Kettle", Brand: "Hearth", Category: "Home",
			Price: 59.90, DiscountedPrice: price(44.90),
			Images: []string{"https://img.example.com/p5.jpg"},
			Rating: 4.0, Stock: 60,
			Tags:   []string{"featured", "sale"},
		},
		{
			ID: "p6", Name: "Lumen Desk Lamp", Brand: "Hearth", Category: "Home",
			Price: 34.90,
			Images: []string{"https://img.example.com/p6.jpg"},
			Rating: 3.9, Stock: 32,
		},
	}

	demo := model.User{ID: "u0001", Name: "Demo User", Email: "demo@example.com", PhoneNumber: "+90 555 000 0001"}
	s.accounts[demo.ID] = &account{user: demo, password: "demo1234"}
	s.byEmail[demo.Email] = demo.ID
	s.nextID = 1
}
