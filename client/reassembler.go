package client

import "bytes"

const frameTerminator = "\n\n"

// Frame is one complete SSE frame as it was received, including its terminating blank line.
type Frame struct {
	Data []byte
}

func (f Frame) Len() int {
	return len(f.Data)
}

func (f Frame) String() string {
	return string(f.Data)
}

// Reassembler collects bytes that may arrive in arbitrary pieces and hands back whole frames.
// It knows nothing about SSE fields; a frame is simply everything up to and including a
// blank line.
type Reassembler struct {
	buf bytes.Buffer
}

// Feed adds p to the pending data and returns every frame that is now complete, in order.
func (r *Reassembler) Feed(p []byte) []Frame {
	r.buf.Write(p)
	var frames []Frame
	for {
		i := bytes.Index(r.buf.Bytes(), []byte(frameTerminator))
		if i < 0 {
			return frames
		}
		n := i + len(frameTerminator)
		frames = append(frames, Frame{Data: append([]byte(nil), r.buf.Next(n)...)})
	}
}

// Pending returns a copy of any bytes that have not yet formed a complete frame.
func (r *Reassembler) Pending() []byte {
	return append([]byte(nil), r.buf.Bytes()...)
}
