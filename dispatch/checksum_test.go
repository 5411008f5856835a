package dispatch

import "testing"

func TestChecksumIPv4HeaderSkipsChecksumWord(t *testing.T) {
	header := make([]byte, 20)
	header[0], header[1] = 0x45, 0x00
	header[2], header[3] = 0x00, 0x1C
	header[8] = 64
	header[9] = 1
	header[12], header[13], header[14], header[15] = 192, 168, 1, 50
	header[16], header[17], header[18], header[19] = 192, 168, 1, 1

	withZero := checksumIPv4Header(header)

	header[10], header[11] = 0xAB, 0xCD
	withGarbage := checksumIPv4Header(header)

	if withZero != withGarbage {
		t.Fatalf("checksum word should not influence its own computation: %#x != %#x", withZero, withGarbage)
	}
}

func TestChecksumICMPEchoNonZeroAndTracksBody(t *testing.T) {
	body := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	chk := checksumICMPEcho(8, 0, 0x1234, 1, bodyWordsLE(body))
	if chk == 0 {
		t.Fatalf("expected a non-zero checksum for a non-trivial echo body")
	}

	// Flipping a body byte must change the checksum.
	body2 := append([]byte(nil), body...)
	body2[0] = 0xFF
	chk2 := checksumICMPEcho(8, 0, 0x1234, 1, bodyWordsLE(body2))
	if chk == chk2 {
		t.Fatalf("checksum did not change when body changed")
	}
}

func TestBodyWordsLEHandlesOddLength(t *testing.T) {
	words := bodyWordsLE([]byte{0x01, 0x02, 0x03})
	if len(words) != 2 {
		t.Fatalf("expected 2 words for a 3-byte body, got %d", len(words))
	}
	if words[0] != 0x0201 {
		t.Fatalf("word 0 = %#x, want 0x0201", words[0])
	}
	if words[1] != 0x0003 {
		t.Fatalf("word 1 = %#x, want 0x0003 (zero-padded)", words[1])
	}
}
