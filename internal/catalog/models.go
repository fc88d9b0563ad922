package catalog

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}
