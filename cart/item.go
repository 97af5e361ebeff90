package cart

import "fmt"

// DefaultImageURL is served when a line item has no resolvable product image.
const DefaultImageURL = "/static/default.jpg"

// Item is one line item in a cart. Prices are in COP minor units.
type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit,omitempty"`
	ImageURL  string `json:"image_url"`
	Selected  bool   `json:"selected"`
}

// NewItem builds a validated line item. Items start selected, matching the
// cart page where every checkbox is on after a load.
func NewItem(productID, name string, unitPrice int64, quantity int, imageURL string) (Item, error) {
	if productID == "" {
		return Item{}, fmt.Errorf("product id is required")
	}
	if quantity < 1 {
		return Item{}, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	if unitPrice < 0 {
		return Item{}, fmt.Errorf("unit price must not be negative, got %d", unitPrice)
	}
	if imageURL == "" {
		imageURL = DefaultImageURL
	}
	return Item{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		ImageURL:  imageURL,
		Selected:  true,
	}, nil
}

// LineTotal is the price of this line at its current quantity.
func (i Item) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}
