package simnvm

import "testing"

func TestGetDefaultsToAllOff(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.VerboseMode || got.BlindSigning {
		t.Errorf("default settings = %+v, want all false", got)
	}
}

func TestUpdateRoundTrips(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	want := Settings{VerboseMode: true, BlindSigning: true}
	if err := s.Update(want); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestUpdatePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := Settings{VerboseMode: true, BlindSigning: false}
	if err := s1.Update(want); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = s2.Close() })
	got, err := s2.Get()
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got != want {
		t.Errorf("Get() after reopen = %+v, want %+v", got, want)
	}
}

func TestAsBytesEncodesBothFlags(t *testing.T) {
	s := Settings{VerboseMode: true, BlindSigning: false}
	got := s.AsBytes()
	if got != [2]byte{0x01, 0x00} {
		t.Errorf("AsBytes() = %v, want [1 0]", got)
	}
}
