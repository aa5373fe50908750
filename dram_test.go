package main

import "testing"

func TestDRAM_ReadWriteRoundTrip(t *testing.T) {
	d := NewDRAM(4096)
	if !d.Write(0x10, 8, 0x0123456789ABCDEF) {
		t.Fatal("Write at 0x10 failed")
	}
	v, ok := d.Read(0x10, 8)
	if !ok {
		t.Fatal("Read at 0x10 failed")
	}
	if v != 0x0123456789ABCDEF {
		t.Fatalf("Read = 0x%X, want 0x0123456789ABCDEF", v)
	}
}

func TestDRAM_WidthIsolation(t *testing.T) {
	d := NewDRAM(16)
	d.Write(0, 4, 0xFFFFFFFF)
	v, ok := d.Read(4, 4)
	if !ok {
		t.Fatal("Read at 4 failed")
	}
	if v != 0 {
		t.Fatalf("Read at offset 4 = 0x%X, want 0 (no bleed from offset 0)", v)
	}
}

func TestDRAM_OutOfBoundsFails(t *testing.T) {
	d := NewDRAM(8)
	if _, ok := d.Read(4, 8); ok {
		t.Fatal("Read straddling the end of DRAM should fail")
	}
	if d.Write(4, 8, 0) {
		t.Fatal("Write straddling the end of DRAM should fail")
	}
}

func TestDRAM_LoadAt(t *testing.T) {
	d := NewDRAM(16)
	if !d.LoadAt(4, []byte{1, 2, 3, 4}) {
		t.Fatal("LoadAt within bounds should succeed")
	}
	v, _ := d.Read(4, 4)
	if v != 0x04030201 {
		t.Fatalf("Read = 0x%X, want 0x04030201", v)
	}
	if d.LoadAt(14, []byte{1, 2, 3, 4}) {
		t.Fatal("LoadAt past the end of DRAM should fail")
	}
}
