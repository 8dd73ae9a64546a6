package domain

// CartLine is one product in the cart. The product's display fields are
// copied in when the line is created and are not refreshed afterwards.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is Price × Quantity.
func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}

// CartCommand is a mutation accepted by ReduceCart.
type CartCommand interface {
	cartCommand()
}

type (
	// AddLine adds one unit of Product, creating the line if needed. A
	// positive Limit leaves a line already holding Limit units unchanged.
	AddLine struct {
		Product Product
		Limit   int
	}
	// RemoveLine drops the line for ProductID.
	RemoveLine struct{ ProductID string }
	// SetQuantity overwrites a line's quantity; values below 1 remove it.
	SetQuantity struct {
		ProductID string
		Quantity  int
	}
	// ClearLines empties the cart.
	ClearLines struct{}
	// ReplaceLines swaps in a whole collection, e.g. a loaded snapshot.
	ReplaceLines struct{ Lines []CartLine }
)

func (AddLine) cartCommand()      {}
func (RemoveLine) cartCommand()   {}
func (SetQuantity) cartCommand()  {}
func (ClearLines) cartCommand()   {}
func (ReplaceLines) cartCommand() {}

// ReduceCart applies cmd to lines and reports whether the result differs.
// lines is never modified; when changed is false the input is returned.
//
// ClearLines always reports a change so that an explicit clear is always
// written through, even over an already empty cart.
func ReduceCart(lines []CartLine, cmd CartCommand) (next []CartLine, changed bool) {
	switch c := cmd.(type) {
	case AddLine:
		if i := indexLine(lines, c.Product.ID); i >= 0 {
			if c.Limit > 0 && lines[i].Quantity >= c.Limit {
				return lines, false
			}
			next = cloneLines(lines)
			next[i].Quantity++
			return next, true
		}
		next = make([]CartLine, len(lines), len(lines)+1)
		copy(next, lines)
		return append(next, CartLine{Product: c.Product, Quantity: 1}), true

	case RemoveLine:
		i := indexLine(lines, c.ProductID)
		if i < 0 {
			return lines, false
		}
		return deleteLine(lines, i), true

	case SetQuantity:
		i := indexLine(lines, c.ProductID)
		if i < 0 {
			return lines, false
		}
		if c.Quantity <= 0 {
			return deleteLine(lines, i), true
		}
		if lines[i].Quantity == c.Quantity {
			return lines, false
		}
		next = cloneLines(lines)
		next[i].Quantity = c.Quantity
		return next, true

	case ClearLines:
		return []CartLine{}, true

	case ReplaceLines:
		return NormalizeLines(c.Lines), true
	}
	return lines, false
}

// NormalizeLines restores the cart invariants on untrusted input: lines
// with quantity < 1 or an empty id are dropped and repeated ids are merged
// into the first occurrence. Valid input comes back unchanged.
func NormalizeLines(in []CartLine) []CartLine {
	out := make([]CartLine, 0, len(in))
	for _, l := range in {
		if l.ID == "" || l.Quantity < 1 {
			continue
		}
		if i := indexLine(out, l.ID); i >= 0 {
			out[i].Quantity += l.Quantity
			continue
		}
		out = append(out, l)
	}
	return out
}

// CartTotalItems sums the quantities.
func CartTotalItems(lines []CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// CartTotalPrice sums price × quantity over all lines.
func CartTotalPrice(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total
}

func indexLine(lines []CartLine, productID string) int {
	for i := range lines {
		if lines[i].ID == productID {
			return i
		}
	}
	return -1
}

func cloneLines(lines []CartLine) []CartLine {
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}

func deleteLine(lines []CartLine, i int) []CartLine {
	out := make([]CartLine, 0, len(lines)-1)
	out = append(out, lines[:i]...)
	return append(out, lines[i+1:]...)
}
