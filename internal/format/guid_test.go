package format

import "testing"

func TestGUIDStringRoundTrip(t *testing.T) {
	const s = "4ED4BF27-4092-42E9-807D-527B1D00C9BD"
	g, err := ParseGUID(s)
	if err != nil {
		t.Fatalf("ParseGUID: %v", err)
	}
	// Data1 is little-endian in memory.
	if g[0] != 0x27 || g[3] != 0x4E || g[8] != 0x80 {
		t.Fatalf("unexpected byte order: % x", g[:])
	}
	if got := g.String(); got != s {
		t.Fatalf("String() = %q, want %q", got, s)
	}
	if g.IsZero() || !(GUID{}).IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}

func TestParseGUIDRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "4ED4BF27409242E9807D527B1D00C9BD", "4ED4BF27-4092-42E9-807D-527B1D00C9BZ"} {
		if _, err := ParseGUID(s); err == nil {
			t.Fatalf("ParseGUID(%q) should fail", s)
		}
	}
}

func TestGUIDExtensionPayload(t *testing.T) {
	g := GUIDExtension{Name: GUID{1, 2, 3}, Data: []byte("abc")}
	p := g.Payload()

	rec := make([]byte, HeaderSize+len(p))
	if err := PutHeader(rec, Header{Type: TypeGUIDExtension, Length: uint16(len(rec))}); err != nil {
		t.Fatalf("PutHeader: %v", err)
	}
	copy(rec[HeaderSize:], p)

	out, err := ParseGUIDExtension(rec)
	if err != nil {
		t.Fatalf("ParseGUIDExtension: %v", err)
	}
	if out.Name != g.Name || string(out.Data) != "abc" {
		t.Fatalf("decoded %+v", out)
	}
}
