package dummy

import (
	"io"
	"net"

	"github.com/indigo-web/utils/unreader"
)

// CircularClient is a client that on every read-operation returns the same data
// as it was initialised with. Writes are captured and can be inspected, which
// makes it the main test double for the session loop and the serializer
type CircularClient struct {
	unreader        *unreader.Unreader
	data            [][]byte
	written         []byte
	pointer         int
	closed, oneTime bool
}

func NewCircularClient(data ...[]byte) *CircularClient {
	return &CircularClient{
		unreader: new(unreader.Unreader),
		data:     data,
	}
}

func (c *CircularClient) Read() ([]byte, error) {
	if c.closed {
		return nil, io.EOF
	}

	return c.unreader.PendingOr(func() ([]byte, error) {
		if c.pointer == len(c.data) {
			if c.oneTime {
				c.closed = true
				return nil, io.EOF
			}

			c.pointer = 0
		}

		piece := c.data[c.pointer]
		c.pointer++

		return piece, nil
	})
}

func (c *CircularClient) Unread(takeback []byte) {
	c.unreader.Unread(takeback)
}

func (c *CircularClient) Write(b []byte) error {
	c.written = append(c.written, b...)
	return nil
}

// Written returns everything the server has written so far.
func (c *CircularClient) Written() []byte {
	return c.written
}

func (c *CircularClient) Remote() net.Addr {
	return nil
}

func (c *CircularClient) Close() error {
	c.closed = true
	return nil
}

// OneTime makes the client return io.EOF after the data is exhausted instead
// of looping over it again
func (c *CircularClient) OneTime() *CircularClient {
	c.oneTime = true
	return c
}
