// Package split implements the cost-allocation engine: pure functions that
// turn a room's item list and the participants' selections into per-user
// monetary shares. An item claimed by N users costs each claimant price/N.
//
// All computations keep full float64 precision; rounding happens only in
// FormatAmount for display.
package split

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/splitroom/internal/client/models"
)

// ErrInvalidPriceFormat reports an item price that cannot be parsed as a
// decimal amount. Backend-produced data should never trigger it; treat it as
// a data-integrity fault, not something to coerce to zero.
var ErrInvalidPriceFormat = errors.New("invalid price format")

// ParsePrice converts an item price to a decimal amount. The backend emits
// prices as text with either a comma or a period decimal separator.
func ParsePrice(s string) (float64, error) {
	normalized := strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPriceFormat, s)
	}
	return v, nil
}

// Claimants counts the distinct users claiming each item index. Selections
// are unique per (user, item) by contract, but counting distinct users keeps
// a duplicate assertion from skewing a share.
func Claimants(selections []models.Selection) map[int]int {
	users := make(map[int]map[string]struct{})
	for _, s := range selections {
		m, ok := users[s.ItemIndex]
		if !ok {
			m = make(map[string]struct{})
			users[s.ItemIndex] = m
		}
		m[s.UserID] = struct{}{}
	}

	counts := make(map[int]int, len(users))
	for idx, m := range users {
		counts[idx] = len(m)
	}
	return counts
}

// UserShare computes one user's total share: the sum of price/claimants over
// every item the user selected. Items nobody selected contribute nothing to
// anyone. Selections pointing outside the item list are ignored; the backend
// owns index validity.
func UserShare(items []models.Item, selections []models.Selection, userID string) (float64, error) {
	counts := Claimants(selections)
	seen := make(map[int]struct{})

	var share float64
	for _, s := range selections {
		if s.UserID != userID {
			continue
		}
		if _, dup := seen[s.ItemIndex]; dup {
			continue
		}
		seen[s.ItemIndex] = struct{}{}

		if s.ItemIndex < 0 || s.ItemIndex >= len(items) {
			continue
		}
		price, err := ParsePrice(items[s.ItemIndex].Price)
		if err != nil {
			return 0, err
		}
		share += price / float64(counts[s.ItemIndex])
	}
	return share, nil
}

// Breakdown computes the full per-user split for every distinct user
// appearing in selections. Each user's item list is sorted ascending.
func Breakdown(items []models.Item, selections []models.Selection) (map[string]*models.UserSplit, error) {
	counts := Claimants(selections)

	result := make(map[string]*models.UserSplit)
	seen := make(map[string]map[int]struct{})

	for _, s := range selections {
		us, ok := result[s.UserID]
		if !ok {
			us = &models.UserSplit{}
			result[s.UserID] = us
			seen[s.UserID] = make(map[int]struct{})
		}
		if _, dup := seen[s.UserID][s.ItemIndex]; dup {
			continue
		}
		seen[s.UserID][s.ItemIndex] = struct{}{}

		if s.ItemIndex < 0 || s.ItemIndex >= len(items) {
			continue
		}
		price, err := ParsePrice(items[s.ItemIndex].Price)
		if err != nil {
			return nil, err
		}
		us.Total += price / float64(counts[s.ItemIndex])
		us.Items = append(us.Items, s.ItemIndex)
	}

	for _, us := range result {
		sort.Ints(us.Items)
	}
	return result, nil
}

// ItemShare returns the per-claimant price of a single item, for display next
// to the item. An unclaimed item is shown at full price (divisor 1).
func ItemShare(items []models.Item, selections []models.Selection, index int) (float64, error) {
	if index < 0 || index >= len(items) {
		return 0, fmt.Errorf("item index out of range: %d", index)
	}
	price, err := ParsePrice(items[index].Price)
	if err != nil {
		return 0, err
	}

	n := Claimants(selections)[index]
	if n == 0 {
		n = 1
	}
	return price / float64(n), nil
}

// GrandTotal sums all item prices regardless of selection state.
func GrandTotal(items []models.Item) (float64, error) {
	var total float64
	for _, item := range items {
		price, err := ParsePrice(item.Price)
		if err != nil {
			return 0, err
		}
		total += price
	}
	return total, nil
}

// FormatAmount renders a monetary amount with 2 fractional digits using
// half-up rounding. Only presentation truncates; stored shares keep full
// precision.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}
