package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func listen(t *testing.T) (net.Listener, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln, ln.Addr().(*net.TCPAddr).Port
}

func TestOpenSendRecvRoundTrip(t *testing.T) {
	ln, port := listen(t)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err == nil {
			accepted <- c
		}
	}()

	conn, err := Open("127.0.0.1", port, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	server := <-accepted
	defer server.Close()

	require.NoError(t, conn.Send([]byte{0xBD, 0x01, 0x02, 0xBD}))

	buf := make([]byte, 4)
	n, err := server.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{0xBD, 0x01, 0x02, 0xBD}, buf)

	_, err = server.Write([]byte{0xAA, 0xBB})
	require.NoError(t, err)

	got, err := conn.Recv(1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, byte(0xAA), got[0])
}

func TestOpenDefaultsPortWhenZero(t *testing.T) {
	_, err := Open("127.0.0.1", 0, 10*time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), "127.0.0.1:6785")
}

func TestSetTimeoutAppliesToSubsequentRecv(t *testing.T) {
	ln, port := listen(t)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err == nil {
			accepted <- c
		}
	}()

	conn, err := Open("127.0.0.1", port, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	server := <-accepted
	defer server.Close()

	require.NoError(t, conn.SetTimeout(20*time.Millisecond))
	_, err = conn.Recv(1)
	require.Error(t, err)
}
