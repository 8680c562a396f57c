/*
© 2026-present Silktree Authors
ISC License
*/

package fid

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Named is anything exposing the stable display name an Awaitable carries
// for its lifetime (spec.md §3 "name: display string")
type Named interface {
	Name() (name string)
}

// collator is shared across calls: golang.org/x/text/collate.Collator is
// safe for concurrent use once constructed, construction itself is not
var (
	collatorOnce sync.Once
	collatorInst *collate.Collator
)

func sharedCollator() *collate.Collator {
	collatorOnce.Do(func() {
		collatorInst = collate.New(language.Und)
	})
	return collatorInst
}

// ByName sorts named values by their display name using locale-aware
// collation, giving a stable, deterministic iteration order for the
// "ordering by name" Awaitable surface of spec.md §6.3
//   - grounded on golang.org/x/text, part of the teacher's direct
//     dependency set (used for text processing in parl/plog), generalized
//     here from string formatting to string collation
func ByName[T Named](values []T) {
	var c = sharedCollator()
	// insertion sort: typical listener/child counts are small (tens),
	// and this keeps the comparator call-site trivial to reason about
	for i := 1; i < len(values); i++ {
		var j = i
		for j > 0 && c.CompareString(values[j].Name(), values[j-1].Name()) < 0 {
			values[j], values[j-1] = values[j-1], values[j]
			j--
		}
	}
}
