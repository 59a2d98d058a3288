// Package image assembles HOB list images from YAML descriptions.
//
// A description names the list's anchor and the records that follow the
// hand-off record:
//
//	base: 0x1000
//	memory_top: 0x2000
//	records:
//	  - resource:
//	      type: SystemMemory
//	      attributes: Present|Initialized|Tested
//	      start: 0x0
//	      length: 64MiB
//	  - guid:
//	      name: 4ED4BF27-4092-42E9-807D-527B1D00C9BD
//	      data: "0102"
//	  - raw:
//	      type: 0x5
//	      data: "00000000"
package image

import (
	"bytes"
	"encoding/hex"
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/hobkit/hob"
	"github.com/joshuapare/hobkit/hob/physmem"
	"github.com/joshuapare/hobkit/internal/buf"
	"github.com/joshuapare/hobkit/internal/config"
	"github.com/joshuapare/hobkit/internal/format"
)

// Description is the YAML form of a list image. Zero bounds take defaults:
// memory_bottom is base, free_memory_top is the end of the last record
// plus the end marker, memory_top is free_memory_top.
type Description struct {
	Base          config.Size `yaml:"base"`
	MemoryBottom  config.Size `yaml:"memory_bottom"`
	MemoryTop     config.Size `yaml:"memory_top"`
	FreeMemoryTop config.Size `yaml:"free_memory_top"`
	Records       []Record    `yaml:"records"`
}

// Record is one entry of Description.Records. Exactly one field is set.
type Record struct {
	Resource *Resource  `yaml:"resource,omitempty"`
	GUID     *Extension `yaml:"guid,omitempty"`
	Raw      *Raw       `yaml:"raw,omitempty"`
}

// Resource describes a resource descriptor record.
type Resource struct {
	Owner      string      `yaml:"owner,omitempty"`
	Type       string      `yaml:"type"`
	Attributes string      `yaml:"attributes"`
	Start      config.Size `yaml:"start"`
	Length     config.Size `yaml:"length"`
}

// Extension describes a GUID extension record. Data is hex.
type Extension struct {
	Name string `yaml:"name"`
	Data string `yaml:"data,omitempty"`
}

// Raw describes a record by type code and hex payload.
type Raw struct {
	Type config.Size `yaml:"type"`
	Data string      `yaml:"data,omitempty"`
}

// Parse decodes a description. Unknown keys are rejected.
func Parse(data []byte) (Description, error) {
	var d Description
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return Description{}, errors.Wrap(err, "image: decode")
	}
	return d, nil
}

type encoded struct {
	typ     format.HobType
	payload []byte
}

func (r Record) encode(i int) (encoded, error) {
	set := 0
	for _, ok := range []bool{r.Resource != nil, r.GUID != nil, r.Raw != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return encoded{}, errors.Newf("image: record %d: exactly one of resource, guid, raw must be set", i)
	}

	switch {
	case r.Resource != nil:
		rd, err := r.Resource.descriptor()
		if err != nil {
			return encoded{}, errors.Wrapf(err, "image: record %d", i)
		}
		return encoded{format.TypeResourceDescriptor, rd.Payload()}, nil
	case r.GUID != nil:
		name, err := format.ParseGUID(r.GUID.Name)
		if err != nil {
			return encoded{}, errors.Wrapf(err, "image: record %d", i)
		}
		data, err := hex.DecodeString(r.GUID.Data)
		if err != nil {
			return encoded{}, errors.Wrapf(err, "image: record %d: data", i)
		}
		return encoded{format.TypeGUIDExtension, format.GUIDExtension{Name: name, Data: data}.Payload()}, nil
	default:
		if r.Raw.Type > 0xFFFF {
			return encoded{}, errors.Newf("image: record %d: type 0x%x out of range", i, uint64(r.Raw.Type))
		}
		data, err := hex.DecodeString(r.Raw.Data)
		if err != nil {
			return encoded{}, errors.Wrapf(err, "image: record %d: data", i)
		}
		return encoded{format.HobType(r.Raw.Type), data}, nil
	}
}

func (r Resource) descriptor() (format.ResourceDescriptor, error) {
	var rd format.ResourceDescriptor
	var err error
	if r.Owner != "" {
		if rd.Owner, err = format.ParseGUID(r.Owner); err != nil {
			return rd, err
		}
	}
	if rd.ResourceType, err = format.ParseResourceType(r.Type); err != nil {
		return rd, err
	}
	if rd.Attribute, err = format.ParseResourceAttribute(r.Attributes); err != nil {
		return rd, err
	}
	rd.PhysicalStart = uint64(r.Start)
	rd.ResourceLength = uint64(r.Length)
	return rd, nil
}

// Build lays the described list out in a fresh address space and returns
// it. The list's hand-off record sits at Base. Only the bytes the list
// occupies are backed; the declared free_memory_top is recorded in the
// hand-off record as given.
func Build(d Description) (*hob.List, error) {
	recs := make([]encoded, 0, len(d.Records))
	size := uint64(format.EmptyListSize)
	for i, r := range d.Records {
		e, err := r.encode(i)
		if err != nil {
			return nil, err
		}
		recs = append(recs, e)
		size += uint64(format.Align8(format.HeaderSize + len(e.payload)))
	}

	base := uint64(d.Base)
	used, ok := buf.AddOverflowSafe(base, size)
	if !ok {
		return nil, errors.Newf("image: list of 0x%x bytes at 0x%x wraps the address space", size, base)
	}
	freeTop := uint64(d.FreeMemoryTop)
	if freeTop == 0 {
		freeTop = used
	}
	if freeTop < used {
		return nil, errors.Wrapf(hob.ErrOutOfResources,
			"image: free_memory_top 0x%x below the 0x%x bytes the records need at 0x%x", freeTop, size, base)
	}

	reg := hob.Region{
		MemoryBottom:     uint64(d.MemoryBottom),
		MemoryTop:        uint64(d.MemoryTop),
		FreeMemoryBottom: base,
		FreeMemoryTop:    used,
	}
	if reg.MemoryBottom == 0 {
		reg.MemoryBottom = base
	}
	if reg.MemoryTop == 0 {
		reg.MemoryTop = freeTop
	}

	w, err := hob.Construct(&physmem.Map{}, reg)
	if err != nil {
		return nil, errors.Wrap(err, "image: construct")
	}
	for i, e := range recs {
		if _, err := w.Append(e.typ, e.payload); err != nil {
			return nil, errors.Wrapf(err, "image: record %d", i)
		}
	}

	l := w.List()
	if freeTop != used {
		if err := setFreeMemoryTop(l, freeTop); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// setFreeMemoryTop rewrites the free top of l's hand-off record in place.
func setFreeMemoryTop(l *hob.List, top uint64) error {
	rec, err := l.First(format.TypeHandoff)
	if err != nil {
		return err
	}
	h, err := format.ParseHandoff(rec.Raw)
	if err != nil {
		return err
	}
	h.FreeMemoryTop = top
	return format.PutHandoff(rec.Raw, h)
}

// Assemble parses a description and returns the list image bytes together
// with the address they belong at.
func Assemble(data []byte) ([]byte, uint64, error) {
	d, err := Parse(data)
	if err != nil {
		return nil, 0, err
	}
	l, err := Build(d)
	if err != nil {
		return nil, 0, err
	}
	b, err := l.Bytes()
	if err != nil {
		return nil, 0, err
	}
	return b, l.Base(), nil
}
