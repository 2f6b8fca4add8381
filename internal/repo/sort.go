package repo

import (
	"cmp"
	"slices"

	"github.com/SergeyBogomolovv/exchange-ledger/internal/entities"
)

func sortBidsBySubmission(bids []entities.Bid) {
	slices.SortStableFunc(bids, func(a, b entities.Bid) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
