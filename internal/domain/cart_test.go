package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price int64) Product {
	return Product{ID: id, Name: id, Slug: id, Price: price, Brand: "B", Category: "C", Rating: 4}
}

func applyCart(t *testing.T, lines []CartLine, cmds ...CartCommand) []CartLine {
	t.Helper()
	for _, c := range cmds {
		lines, _ = ReduceCart(lines, c)
	}
	return lines
}

// ============================================================================
// AddLine
// ============================================================================

func TestReduceCart_AddNewProduct(t *testing.T) {
	lines, changed := ReduceCart(nil, AddLine{Product: product("clock", 2999)})
	assert.True(t, changed)
	require.Len(t, lines, 1)
	assert.Equal(t, "clock", lines[0].ID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, int64(2999), lines[0].Price)
}

func TestReduceCart_AddSameProductIncrements(t *testing.T) {
	p := product("A", 1000)
	lines := applyCart(t, nil, AddLine{Product: p}, AddLine{Product: p}, AddLine{Product: p})
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestReduceCart_AddKeepsInsertionOrder(t *testing.T) {
	lines := applyCart(t, nil,
		AddLine{Product: product("A", 1)},
		AddLine{Product: product("B", 1)},
		AddLine{Product: product("A", 1)},
	)
	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].ID)
	assert.Equal(t, "B", lines[1].ID)
}

func TestReduceCart_AddKeepsFirstDisplayFields(t *testing.T) {
	first := product("A", 1000)
	renamed := first
	renamed.Name = "Renamed"
	renamed.Price = 9999

	lines := applyCart(t, nil, AddLine{Product: first}, AddLine{Product: renamed})
	assert.Equal(t, "A", lines[0].Name)
	assert.Equal(t, int64(1000), lines[0].Price)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestReduceCart_AddRespectsLimit(t *testing.T) {
	p := product("A", 1000)
	lines := applyCart(t, nil, AddLine{Product: p, Limit: 2}, AddLine{Product: p, Limit: 2})
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	next, changed := ReduceCart(lines, AddLine{Product: p, Limit: 2})
	assert.False(t, changed)
	assert.Equal(t, lines, next)

	next, changed = ReduceCart(lines, AddLine{Product: p})
	assert.True(t, changed)
	assert.Equal(t, 3, next[0].Quantity)
}

// ============================================================================
// RemoveLine / SetQuantity
// ============================================================================

func TestReduceCart_Remove(t *testing.T) {
	lines := applyCart(t, nil, AddLine{Product: product("A", 1)}, AddLine{Product: product("B", 1)})

	next, changed := ReduceCart(lines, RemoveLine{ProductID: "A"})
	assert.True(t, changed)
	require.Len(t, next, 1)
	assert.Equal(t, "B", next[0].ID)

	same, changed := ReduceCart(next, RemoveLine{ProductID: "missing"})
	assert.False(t, changed)
	assert.Equal(t, next, same)
}

func TestReduceCart_SetQuantity(t *testing.T) {
	lines := applyCart(t, nil, AddLine{Product: product("A", 1)})

	tests := []struct {
		name    string
		id      string
		qty     int
		changed bool
		want    []int
	}{
		{"set positive", "A", 5, true, []int{5}},
		{"same value", "A", 1, false, []int{1}},
		{"zero removes", "A", 0, true, []int{}},
		{"negative removes", "A", -5, true, []int{}},
		{"absent id", "Z", 3, false, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, changed := ReduceCart(lines, SetQuantity{ProductID: tt.id, Quantity: tt.qty})
			assert.Equal(t, tt.changed, changed)
			got := make([]int, 0, len(next))
			for _, l := range next {
				got = append(got, l.Quantity)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReduceCart_DoesNotMutateInput(t *testing.T) {
	lines := applyCart(t, nil, AddLine{Product: product("A", 1)}, AddLine{Product: product("B", 1)})
	snapshot := append([]CartLine(nil), lines...)

	ReduceCart(lines, AddLine{Product: product("A", 1)})
	ReduceCart(lines, SetQuantity{ProductID: "B", Quantity: 9})
	ReduceCart(lines, RemoveLine{ProductID: "A"})
	ReduceCart(lines, ClearLines{})

	assert.Equal(t, snapshot, lines)
}

func TestReduceCart_Clear(t *testing.T) {
	lines := applyCart(t, nil, AddLine{Product: product("A", 1)})
	next, changed := ReduceCart(lines, ClearLines{})
	assert.True(t, changed)
	assert.Empty(t, next)
	assert.NotNil(t, next)

	_, changed = ReduceCart(nil, ClearLines{})
	assert.True(t, changed)
}

func TestReduceCart_ReplaceNormalizes(t *testing.T) {
	next, changed := ReduceCart(nil, ReplaceLines{Lines: []CartLine{
		{Product: product("A", 1), Quantity: 2},
		{Product: product("B", 1), Quantity: 0},
		{Product: product("A", 1), Quantity: 3},
		{Product: Product{}, Quantity: 1},
		{Product: product("C", 1), Quantity: 1},
	}})
	assert.True(t, changed)
	require.Len(t, next, 2)
	assert.Equal(t, "A", next[0].ID)
	assert.Equal(t, 5, next[0].Quantity)
	assert.Equal(t, "C", next[1].ID)
}

// ============================================================================
// Totals
// ============================================================================

func TestCartTotals(t *testing.T) {
	lines := []CartLine{
		{Product: product("A", 1000), Quantity: 2},
		{Product: product("B", 500), Quantity: 3},
	}
	assert.Equal(t, 5, CartTotalItems(lines))
	assert.Equal(t, int64(3500), CartTotalPrice(lines))
	assert.Equal(t, int64(2000), lines[0].LineTotal())
}

func TestCartTotals_Empty(t *testing.T) {
	assert.Equal(t, 0, CartTotalItems(nil))
	assert.Equal(t, int64(0), CartTotalPrice(nil))
}

func TestCartLine_JSONIsFlat(t *testing.T) {
	line := CartLine{Product: product("clock", 2999), Quantity: 2}
	raw, err := json.Marshal(line)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "clock", flat["id"])
	assert.Equal(t, float64(2), flat["quantity"])
	assert.NotContains(t, flat, "Product")
}
