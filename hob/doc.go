// Package hob provides bounds-checked access to hand-off block (HOB) lists.
//
// # Overview
//
// A HOB list is the bookkeeping one boot stage hands to the next: a packed
// sequence of variable-length records, each starting with a generic header
// that carries its type and length, terminated by an end-of-list record.
// The first record is conventionally the hand-off information table (PHIT),
// which describes the memory the list itself lives in.
//
// # Reading
//
// Lists are addressed physically. Open anchors a List at a base address in a
// Memory (see the physmem subpackage) and Records walks it:
//
//	l := hob.Open(mem, bootParam)
//	it := l.Records()
//	for {
//	    rec, err := it.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(rec.Type())
//	}
//
// The iterator yields the end-of-list record once and then io.EOF. Records
// alias the underlying memory; Decode returns a typed view keyed by the
// record type.
//
// # Writing
//
// Construct lays out a fresh list (hand-off record plus end marker) in a
// Region and returns a Writer that appends records in place, keeping the
// hand-off record's end and free-bottom fields current.
package hob
