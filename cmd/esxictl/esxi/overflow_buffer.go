package esxi

import "github.com/smallnest/ringbuffer"

// OverflowBuffer is a ring buffer that will overflow when full: it only
// keeps the tail of what was written
type OverflowBuffer struct {
	rb   *ringbuffer.RingBuffer
	size int
	lost int
}

// NewOverflowBuffer creates a new OverflowBuffer
func NewOverflowBuffer(size int) *OverflowBuffer {
	return &OverflowBuffer{
		rb:   ringbuffer.New(size),
		size: size,
	}
}

// Write writes data to the buffer (non blocking [overwrites])
func (ob *OverflowBuffer) Write(data []byte) (n int, err error) {
	n = len(data)
	if len(data) > ob.size {
		ob.lost += len(data) - ob.size
		data = data[len(data)-ob.size:]
	}

	if ob.rb.Free() < len(data) {
		trash := make([]byte, len(data)-ob.rb.Free())
		dropped, _ := ob.rb.Read(trash)
		ob.lost += dropped
	}

	if _, err := ob.rb.Write(data); err != nil {
		return 0, err
	}
	return n, nil
}

// Read reads data from the buffer
func (ob *OverflowBuffer) Read(data []byte) (n int, err error) {
	return ob.rb.Read(data)
}

// IsEmpty returns true if the buffer is empty
func (ob *OverflowBuffer) IsEmpty() bool {
	return ob.rb.IsEmpty()
}

// Lost returns the number of bytes dropped because of overflow
func (ob *OverflowBuffer) Lost() int {
	return ob.lost
}

// String drains the buffer and returns its content
func (ob *OverflowBuffer) String() string {
	if ob.rb.IsEmpty() {
		return ""
	}
	data := make([]byte, ob.rb.Length())
	n, _ := ob.rb.Read(data)
	return string(data[:n])
}
