package cryptoutil

import (
	"encoding/binary"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	enc := HexEncode(want)
	if enc != "deadbeef" {
		t.Fatalf("HexEncode = %q, want deadbeef", enc)
	}
	got, err := HexDecode(enc)
	if err != nil {
		t.Fatalf("HexDecode error: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("round trip mismatch: %x != %x", got, want)
	}
}

func TestBytesToDoubleZero(t *testing.T) {
	b := make([]byte, 32)
	if got := BytesToDouble(b); got != 0 {
		t.Fatalf("BytesToDouble(zeros) = %v, want 0", got)
	}
}

func TestBytesToDoubleMax(t *testing.T) {
	b := make([]byte, 32)
	for i := range b {
		b[i] = 0xff
	}
	got := BytesToDouble(b)
	if got <= 0 || got >= 1 {
		t.Fatalf("BytesToDouble(all-ff) = %v, want in (0,1)", got)
	}
	// all-ff high 8 bytes is 2^64-1, so result should be extremely close to 1.
	if got < 0.999999999 {
		t.Fatalf("BytesToDouble(all-ff) = %v, want close to 1", got)
	}
}

func TestBytesToDoubleKnownValue(t *testing.T) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, 1<<63) // exactly half of 2^64
	got := BytesToDouble(b)
	if got != 0.5 {
		t.Fatalf("BytesToDouble(2^63) = %v, want 0.5", got)
	}
}

func TestSHA256Known(t *testing.T) {
	sum := SHA256([]byte(""))
	got := HexEncode(sum[:])
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != want {
		t.Fatalf("SHA256(\"\") = %s, want %s", got, want)
	}
}

func TestHMACSHA256Deterministic(t *testing.T) {
	a := HMACSHA256([]byte("key"), []byte("msg"))
	b := HMACSHA256([]byte("key"), []byte("msg"))
	if a != b {
		t.Fatalf("HMAC not deterministic: %x != %x", a, b)
	}
	c := HMACSHA256([]byte("key"), []byte("msg2"))
	if a == c {
		t.Fatalf("HMAC collided across different messages")
	}
}
