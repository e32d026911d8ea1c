package gen

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/brianvoe/gofakeit/v7"

	"demo/foodorders/internal/model"
)

const maxItemLen = 30

func SeedOnce() { gofakeit.Seed(time.Now().UnixNano()) }

// FakeOrder returns an order that passes validation.
func FakeOrder() model.Order {
	return model.Order{
		OrderID: strconv.Itoa(gofakeit.Number(1, 999999)),
		Item:    FoodItem(),
	}
}

func FoodItem() string {
	var name string
	switch gofakeit.Number(0, 3) {
	case 0:
		name = gofakeit.Lunch()
	case 1:
		name = gofakeit.Dinner()
	case 2:
		name = gofakeit.Fruit()
	default:
		name = gofakeit.Vegetable()
	}
	if item := sanitizeItem(name); item != "" {
		return item
	}
	return "Pizza"
}

// sanitizeItem keeps ASCII letters and spaces, collapses runs of spaces and
// cuts the result to the item length limit.
func sanitizeItem(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			b.WriteRune(' ')
		}
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	if len(out) > maxItemLen {
		out = strings.TrimSpace(out[:maxItemLen])
	}
	return out
}
