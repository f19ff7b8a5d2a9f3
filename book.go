// Copyright (c) 2025 Neomantra Corp
//
// The book side (component A): one ordered sequence of up to MaxLevels
// price levels, edited by level-indexed primitives. The dispatcher
// supplies the correct index; Side has no notion of price ordering
// itself, beyond what the wire protocol already guarantees.
//

package cme

// Level is a single price/quantity/order-count entry in a book side.
// The zero Level is the sentinel-empty level.
type Level struct {
	Price    int64
	Quantity int32
	Orders   int32
}

// Side is an ordered sequence of at most MaxLevels Levels, index 0 being
// top-of-book. All operations are index-based; callers are responsible
// for indices that respect the exchange's price ordering guarantee.
type Side struct {
	levels []Level
}

// Len returns the number of levels currently held.
func (s *Side) Len() int {
	return len(s.levels)
}

// At returns the level at index i, or the zero Level if i is out of range.
func (s *Side) At(i int) Level {
	if i < 0 || i >= len(s.levels) {
		return Level{}
	}
	return s.levels[i]
}

// Levels returns the side's levels, top-of-book first. The returned
// slice must not be mutated by the caller.
func (s *Side) Levels() []Level {
	return s.levels
}

// growTo extends levels with zero Levels so that index is valid.
func (s *Side) growTo(index int) {
	if index >= len(s.levels) {
		grown := make([]Level, index+1)
		copy(grown, s.levels)
		s.levels = grown
	}
}

// Add inserts level at index i, shifting i..n-1 right, truncating to
// MaxLevels. If i is beyond the current length, the side is instead
// extended to length i+1 and level placed directly at i (the wire
// protocol's legal but rare "add beyond end" usage) — no shift occurs
// since there is nothing yet at or past i to shift.
func (s *Side) Add(i int, level Level) {
	if i >= len(s.levels) {
		s.growTo(i + 1)
		s.levels[i] = level
		if len(s.levels) > MaxLevels {
			s.levels = s.levels[:MaxLevels]
		}
		return
	}
	s.levels = append(s.levels, Level{})
	copy(s.levels[i+1:], s.levels[i:])
	s.levels[i] = level
	if len(s.levels) > MaxLevels {
		s.levels = s.levels[:MaxLevels]
	}
}

// Update replaces the level at index i, extending the side with default
// levels up to index i if necessary (historical artifact preserved for
// wire compatibility).
func (s *Side) Update(i int, level Level) {
	if i >= len(s.levels) {
		s.growTo(i + 1)
	}
	s.levels[i] = level
}

// Delete removes the level at index i, shifting the right side down.
// Out-of-range indices are a no-op.
func (s *Side) Delete(i int) {
	if i < 0 || i >= len(s.levels) {
		return
	}
	s.levels = append(s.levels[:i], s.levels[i+1:]...)
}

// DeleteThru deletes levels 0..k-1, clamped to the actual length.
func (s *Side) DeleteThru(k int) {
	if k > len(s.levels) {
		k = len(s.levels)
	}
	if k <= 0 {
		return
	}
	s.levels = append([]Level{}, s.levels[k:]...)
}

// DeleteFrom deletes levels k-1..n-1, clamped to the actual length.
func (s *Side) DeleteFrom(k int) {
	from := k - 1
	if from < 0 {
		from = 0
	}
	if from >= len(s.levels) {
		return
	}
	s.levels = append([]Level{}, s.levels[:from]...)
}

// FindByPrice linearly scans for a level with the given price, returning
// its index and true if found.
func (s *Side) FindByPrice(price int64) (int, bool) {
	for i, level := range s.levels {
		if level.Price == price {
			return i, true
		}
	}
	return 0, false
}

// Apply dispatches a book-refresh entry's action onto the side, using
// the 1-based price_level the wire carries.
func (s *Side) Apply(action ActionType, priceLevel uint8, level Level) {
	switch action {
	case ActionAdd:
		s.Add(int(priceLevel)-1, level)
	case ActionUpdate:
		s.Update(int(priceLevel)-1, level)
	case ActionDelete:
		s.Delete(int(priceLevel) - 1)
	case ActionDeleteThru:
		s.DeleteThru(int(priceLevel))
	case ActionDeleteFrom:
		s.DeleteFrom(int(priceLevel))
	}
}
