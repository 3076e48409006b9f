package board

import (
	"fmt"
	"strings"
)

type Verdict int

const (
	Allow Verdict = iota
	Warn
	Block
)

func (v Verdict) String() string {
	switch v {
	case Allow:
		return "allow"
	case Warn:
		return "warn"
	case Block:
		return "block"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// ColumnState is what a capacity policy gets to see about the destination.
type ColumnState struct {
	ID       string
	Count    int
	Capacity *int
	// CrossColumn is false for reorders within the column.
	CrossColumn bool
}

// WouldExceedCapacity reports whether adding one more task to the column
// would go over its WIP limit. Reorders never change occupancy.
func WouldExceedCapacity(count int, capacity *int, crossColumn bool) bool {
	return crossColumn && capacity != nil && count >= *capacity
}

// CapacityPolicy decides what happens when a move would break a WIP limit.
type CapacityPolicy interface {
	Evaluate(ColumnState) Verdict
}

// HardLimit rejects moves into a full column.
type HardLimit struct{}

func (HardLimit) Evaluate(s ColumnState) Verdict {
	if WouldExceedCapacity(s.Count, s.Capacity, s.CrossColumn) {
		return Block
	}
	return Allow
}

// SoftLimit lets the move through and flags it.
type SoftLimit struct{}

func (SoftLimit) Evaluate(s ColumnState) Verdict {
	if WouldExceedCapacity(s.Count, s.Capacity, s.CrossColumn) {
		return Warn
	}
	return Allow
}

// PolicyByName maps a config value to a policy.
func PolicyByName(name string) (CapacityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hard":
		return HardLimit{}, nil
	case "soft":
		return SoftLimit{}, nil
	}
	return nil, fmt.Errorf("unknown WIP policy %q", name)
}
