package grid

import (
	"fmt"
	"strings"
)

// Hooks are the host callbacks. Mutation hooks return an error so the host
// can report persistence failures; the controller has already applied the
// local change when they run. Any hook may be nil.
type Hooks struct {
	OnRowAdd         func(row Row) error
	OnRowDelete      func(id string) error
	OnCellUpdate     func(rowID, field string, value any) error
	OnSortChange     func(s SortState)
	OnFilterChange   func(f FilterState)
	OnPageChange     func(page int)
	OnPageSizeChange func(size int)
}

// RollbackPolicy decides what happens to an optimistic local change when its
// mutation hook fails.
type RollbackPolicy int

const (
	// RollbackKeep leaves the local change in place.
	RollbackKeep RollbackPolicy = iota
	// RollbackRevert undoes the local change.
	RollbackRevert
)

func (p RollbackPolicy) String() string {
	if p == RollbackRevert {
		return "revert"
	}
	return "keep"
}

func ParseRollbackPolicy(s string) (RollbackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return RollbackKeep, nil
	case "revert":
		return RollbackRevert, nil
	}
	return RollbackKeep, fmt.Errorf("unknown rollback policy %q (want keep|revert)", s)
}

type PagingMode int

const (
	// PagingLocal slices the visible rows in memory.
	PagingLocal PagingMode = iota
	// PagingRemote treats the row store as the current page only; the host
	// supplies the total record count.
	PagingRemote
)
