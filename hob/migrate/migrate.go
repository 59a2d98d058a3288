// Package migrate moves the records of a HOB list into a freshly
// constructed list.
package migrate

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/hobkit/hob"
	"github.com/joshuapare/hobkit/internal/buf"
	"github.com/joshuapare/hobkit/internal/format"
)

// ErrOverlap indicates the new list's writable range overlaps the bytes of
// the old list, which would be overwritten while being copied.
var ErrOverlap = errors.New("migrate: new list overlaps old list")

// Stats summarizes a migration.
type Stats struct {
	// Copied is the number of records appended to the new list.
	Copied int
	// SkippedHandoff is the number of hand-off records left behind.
	SkippedHandoff int
	// Realigned is the number of copied records whose length was not a
	// multiple of the record alignment and was padded in the new list.
	Realigned int
	// Used is the number of bytes the new list occupies, end marker included.
	Used uint64
}

// Migrate constructs a list in r and copies every record of old except
// hand-off records into it, in order. The old list is only read.
func Migrate(mem hob.WritableMemory, old *hob.List, r hob.Region) (*hob.List, Stats, error) {
	oldEnd, err := old.End()
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "migrate: walk old list")
	}
	if buf.Overlaps(r.FreeMemoryBottom, r.FreeMemoryTop, old.Base(), oldEnd) {
		return nil, Stats{}, errors.Wrapf(ErrOverlap, "%s vs old list [0x%x, 0x%x)", r, old.Base(), oldEnd)
	}

	w, err := hob.Construct(mem, r)
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "migrate: construct")
	}

	var st Stats
	it := old.Records()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, st, errors.Wrap(err, "migrate: walk old list")
		}
		switch rec.Type() {
		case format.TypeEndOfList:
			continue
		case format.TypeHandoff:
			st.SkippedHandoff++
			continue
		}
		if _, err := w.Copy(rec); err != nil {
			return nil, st, errors.Wrapf(err, "migrate: copy %s", rec)
		}
		st.Copied++
		if !format.IsAligned8(uint64(rec.Header.Length)) {
			st.Realigned++
		}
	}

	st.Used = w.Handoff().FreeMemoryBottom - r.FreeMemoryBottom
	return w.List(), st, nil
}
