package wire

import "testing"

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{Size: 42, Type: MsgState, Version: ProtocolVersion}
	buf := EncodeHeader(h)
	if len(buf) != HeaderSize {
		t.Fatalf("EncodeHeader len = %d, want %d", len(buf), HeaderSize)
	}
	got := ParseHeader(buf)
	if got != h {
		t.Fatalf("ParseHeader = %+v, want %+v", got, h)
	}
}

func TestPackedEntityRoundTrip(t *testing.T) {
	p := PackedEntity{ID: 7, Type: EntityBullet, X: 100.5, Y: -3.25, VX: 320, VY: 0, RGBA: 0xFFFF55FF}
	buf := EncodePackedEntity(nil, p)
	if len(buf) != PackedEntitySize {
		t.Fatalf("EncodePackedEntity len = %d, want %d", len(buf), PackedEntitySize)
	}
	got, err := DecodePackedEntity(buf)
	if err != nil {
		t.Fatalf("DecodePackedEntity: %v", err)
	}
	if got != p {
		t.Fatalf("DecodePackedEntity = %+v, want %+v", got, p)
	}
}

func TestPackedEntityShortBuffer(t *testing.T) {
	if _, err := DecodePackedEntity(make([]byte, PackedEntitySize-1)); err != ErrShortBuffer {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}
}

func TestPlayerEntryRoundTrip(t *testing.T) {
	p := PlayerEntry{ID: 3, Lives: 4, ShipID: 2, Name: PutName("Annihilator")}
	buf := EncodePlayerEntry(nil, p)
	got, err := DecodePlayerEntry(buf)
	if err != nil {
		t.Fatalf("DecodePlayerEntry: %v", err)
	}
	if got != p {
		t.Fatalf("DecodePlayerEntry = %+v, want %+v", got, p)
	}
	if NameString(got.Name) != "Annihilator" {
		t.Fatalf("NameString = %q, want %q", NameString(got.Name), "Annihilator")
	}
}

func TestPutNameTruncates(t *testing.T) {
	name := PutName("a-name-that-is-much-longer-than-fifteen-bytes")
	s := NameString(name)
	if len(s) != NameFieldSize-1 {
		t.Fatalf("truncated name length = %d, want %d", len(s), NameFieldSize-1)
	}
}

func TestScoreUpdateRoundTripNegativeIsNotExpectedButLowValuesAre(t *testing.T) {
	p := ScoreUpdatePayload{ID: 0, Score: 1500}
	buf := EncodeScoreUpdate(p)
	got, err := DecodeScoreUpdate(buf)
	if err != nil {
		t.Fatalf("DecodeScoreUpdate: %v", err)
	}
	if got != p {
		t.Fatalf("DecodeScoreUpdate = %+v, want %+v", got, p)
	}
}

func TestLobbyStatusRoundTrip(t *testing.T) {
	p := LobbyStatusPayload{HostID: 9, BaseLives: 6, Difficulty: 2, Started: 1}
	buf := EncodeLobbyStatus(p)
	got, err := DecodeLobbyStatus(buf)
	if err != nil {
		t.Fatalf("DecodeLobbyStatus: %v", err)
	}
	if got != p {
		t.Fatalf("DecodeLobbyStatus = %+v, want %+v", got, p)
	}
}

func TestInputPacketRoundTrip(t *testing.T) {
	p := InputPacket{Sequence: 12345, Bits: InputUp | InputShoot}
	buf := EncodeInputPacket(p)
	got, err := DecodeInputPacket(buf)
	if err != nil {
		t.Fatalf("DecodeInputPacket: %v", err)
	}
	if got != p {
		t.Fatalf("DecodeInputPacket = %+v, want %+v", got, p)
	}
}

func TestDecodeShortBufferEveryPayload(t *testing.T) {
	cases := []struct {
		name string
		fn   func([]byte) error
	}{
		{"HelloAck", func(b []byte) error { _, err := DecodeHelloAck(b); return err }},
		{"UdpHello", func(b []byte) error { _, err := DecodeUdpHello(b); return err }},
		{"Input", func(b []byte) error { _, err := DecodeInputPacket(b); return err }},
		{"StateHeader", func(b []byte) error { _, err := DecodeStateHeader(b); return err }},
		{"Despawn", func(b []byte) error { _, err := DecodeDespawn(b); return err }},
		{"RosterHeader", func(b []byte) error { _, err := DecodeRosterHeader(b); return err }},
		{"PlayerEntry", func(b []byte) error { _, err := DecodePlayerEntry(b); return err }},
		{"LivesUpdate", func(b []byte) error { _, err := DecodeLivesUpdate(b); return err }},
		{"ScoreUpdate", func(b []byte) error { _, err := DecodeScoreUpdate(b); return err }},
		{"LobbyStatus", func(b []byte) error { _, err := DecodeLobbyStatus(b); return err }},
		{"LobbyConfig", func(b []byte) error { _, err := DecodeLobbyConfig(b); return err }},
		{"GameOver", func(b []byte) error { _, err := DecodeGameOver(b); return err }},
	}
	for _, c := range cases {
		if err := c.fn(nil); err != ErrShortBuffer {
			t.Fatalf("%s: expected ErrShortBuffer on empty input, got %v", c.name, err)
		}
	}
}
