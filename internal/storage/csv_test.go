package storage

import (
	"bytes"
	"strings"
	"testing"
)

func TestCSVRoundTrip(t *testing.T) {
	snap := sampleHistory(20)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, snap); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "t,h,v,ep,ek_t,ek_r\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != snap.Len() || !got.Aligned() {
		t.Fatalf("expected %d aligned rows, got %d", snap.Len(), got.Len())
	}
	for i := 0; i < snap.Len(); i++ {
		if got.Record(i) != snap.Record(i) {
			t.Errorf("row %d: %+v != %+v", i, got.Record(i), snap.Record(i))
		}
	}
}

func TestReadCSVRejectsGarbage(t *testing.T) {
	tests := []string{
		"t,h,v,ep,ek_t,ek_r\n1,2,x,4,5,6\n",
		"t,h,v\n1,2,3\n",
	}
	for _, in := range tests {
		if _, err := ReadCSV(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestReadCSVEmpty(t *testing.T) {
	snap, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if snap.Len() != 0 {
		t.Errorf("expected empty snapshot, got %d", snap.Len())
	}
}
