package domain

func cloneItems(items []CartItem) []CartItem {
	return append([]CartItem(nil), items...)
}

// AddItem merges by id: adding an id already in the cart raises its
// quantity and refreshes the display fields from item.
func AddItem(items []CartItem, item CartItem) []CartItem {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	out := cloneItems(items)
	for i := range out {
		if out[i].ID == item.ID {
			out[i].Quantity += item.Quantity
			out[i].Name = item.Name
			out[i].Price = item.Price
			out[i].Image = item.Image
			return out
		}
	}
	return append(out, item)
}

func RemoveItem(items []CartItem, id int) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// SetQuantity sets the quantity of id, removing the line when qty < 1.
// found is false when id is not in the cart.
func SetQuantity(items []CartItem, id, qty int) (out []CartItem, found bool) {
	if qty < 1 {
		out = RemoveItem(items, id)
		return out, len(out) != len(items)
	}
	out = cloneItems(items)
	for i := range out {
		if out[i].ID == id {
			out[i].Quantity = qty
			return out, true
		}
	}
	return out, false
}

// MergeCarts folds src into dst, summing quantities of shared ids.
func MergeCarts(dst, src []CartItem) []CartItem {
	out := cloneItems(dst)
	for _, it := range src {
		if it.Quantity < 1 {
			continue
		}
		merged := false
		for i := range out {
			if out[i].ID == it.ID {
				out[i].Quantity += it.Quantity
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, it)
		}
	}
	return out
}

// CalculateTotals sums price × quantity. Delivery fee and tax are not
// charged at checkout.
func CalculateTotals(items []CartItem) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}
	subtotal = RoundCents(subtotal)
	t := Totals{Subtotal: subtotal}
	t.Total = RoundCents(t.Subtotal + t.DeliveryFee + t.Tax)
	return t
}

func NewCart(items []CartItem) Cart {
	if items == nil {
		items = []CartItem{}
	}
	return Cart{Items: items, Totals: CalculateTotals(items)}
}
