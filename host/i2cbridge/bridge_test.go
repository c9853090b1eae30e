package i2cbridge

import (
	"bytes"
	"errors"
	"testing"
)

// fakePort is an in-memory serial port with scripted responses.
type fakePort struct {
	sent   bytes.Buffer
	recv   bytes.Buffer
	closed bool
}

func (f *fakePort) Write(p []byte) (int, error) { return f.sent.Write(p) }
func (f *fakePort) Read(p []byte) (int, error)  { return f.recv.Read(p) }
func (f *fakePort) Close() error                { f.closed = true; return nil }

func TestWriteRegFraming(t *testing.T) {
	port := &fakePort{}
	port.recv.Write([]byte{statusOK})

	b := New(port, 0x3D)
	if err := b.WriteReg(0x02, 0xFF); err != nil {
		t.Fatalf("WriteReg: %v", err)
	}

	want := []byte{cmdWrite, 0x3D, 0x02, 0xFF}
	if !bytes.Equal(port.sent.Bytes(), want) {
		t.Errorf("frame = % x, want % x", port.sent.Bytes(), want)
	}
}

func TestReadRegFraming(t *testing.T) {
	port := &fakePort{}
	port.recv.Write([]byte{statusOK, 0x10})

	b := New(port, 0x3D)
	v, err := b.ReadReg(0x00)
	if err != nil {
		t.Fatalf("ReadReg: %v", err)
	}
	if v != 0x10 {
		t.Errorf("value = %#02x, want 0x10", v)
	}

	want := []byte{cmdRead, 0x3D, 0x00}
	if !bytes.Equal(port.sent.Bytes(), want) {
		t.Errorf("frame = % x, want % x", port.sent.Bytes(), want)
	}
}

func TestNakReportedAsError(t *testing.T) {
	port := &fakePort{}
	port.recv.Write([]byte{0x01})
	b := New(port, 0x3D)

	if err := b.WriteReg(0x02, 0xFF); !errors.Is(err, ErrNak) {
		t.Errorf("WriteReg error = %v, want ErrNak", err)
	}

	port.recv.Write([]byte{0x01, 0x00})
	if _, err := b.ReadReg(0x00); !errors.Is(err, ErrNak) {
		t.Errorf("ReadReg error = %v, want ErrNak", err)
	}
}

func TestShortResponse(t *testing.T) {
	port := &fakePort{}
	port.recv.Write([]byte{statusOK}) // value byte missing

	b := New(port, 0x3D)
	if _, err := b.ReadReg(0x00); err == nil {
		t.Error("ReadReg accepted a truncated response")
	}
}

func TestClose(t *testing.T) {
	port := &fakePort{}
	b := New(port, 0x3D)
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !port.closed {
		t.Error("underlying port not closed")
	}
}
