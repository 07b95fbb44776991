package printer

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New("none", "", "")
	require.NoError(t, err)
	assert.Equal(t, "none", p.Kind())

	_, err = New("usb", "", "")
	assert.Error(t, err)

	_, err = New("network", "", "")
	assert.Error(t, err)

	_, err = New("bluetooth", "", "")
	assert.Error(t, err)
}

func TestNullPrinter(t *testing.T) {
	p := NewNullPrinter()
	assert.ErrorIs(t, p.Print(context.Background(), []byte("x")), ErrNotConfigured)
	assert.False(t, p.IsConnected(context.Background()))
}

func TestUSBPrinterWritesToDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p := NewUSBPrinter(path)
	assert.True(t, p.IsConnected(context.Background()))
	require.NoError(t, p.Print(context.Background(), []byte("receipt")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "receipt", string(got))

	missing := NewUSBPrinter(filepath.Join(t.TempDir(), "absent"))
	assert.False(t, missing.IsConnected(context.Background()))
	assert.Error(t, missing.Print(context.Background(), []byte("x")))
}

func TestNetworkPrinterSendsJob(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		b, _ := io.ReadAll(conn)
		received <- b
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Print(ctx, []byte{ESC, '@', 'h', 'i'}))

	select {
	case b := <-received:
		assert.Equal(t, []byte{ESC, '@', 'h', 'i'}, b)
	case <-ctx.Done():
		t.Fatal("printer never received the job")
	}
}

func TestNetworkPrinterUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	p := NewNetworkPrinter(addr)
	assert.False(t, p.IsConnected(context.Background()))
	assert.Error(t, p.Print(context.Background(), []byte("x")))
}
