package messages

import (
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the length prefix size in bytes.
const HeaderSize = 4

// MaxFrameSize bounds a single payload.
const MaxFrameSize = 16 << 20

// AppendFrame appends the length-prefixed payload to dst.
func AppendFrame(dst, payload []byte) ([]byte, error) {
	if len(payload) > MaxFrameSize {
		return dst, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...), nil
}

// WriteFrame encodes msg and writes it as one frame.
func WriteFrame(w io.Writer, msg Message) error {
	payload, err := Encode(msg)
	if err != nil {
		return err
	}
	frame, err := AppendFrame(make([]byte, 0, HeaderSize+len(payload)), payload)
	if err != nil {
		return err
	}
	_, err = w.Write(frame)
	return err
}

// ReadFrame reads exactly one frame from r and decodes it. io.EOF is
// returned unwrapped when r ends cleanly between frames.
func ReadFrame(r io.Reader) (Message, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}

	size := binary.BigEndian.Uint32(header[:])
	if size > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return Decode(payload)
}

// SplitFrame extracts the first complete frame from buf. It returns the
// payload and the number of bytes consumed, or n == 0 when buf does not yet
// hold a whole frame.
func SplitFrame(buf []byte) (payload []byte, n int, err error) {
	if len(buf) < HeaderSize {
		return nil, 0, nil
	}
	size := binary.BigEndian.Uint32(buf)
	if size > MaxFrameSize {
		return nil, 0, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}
	end := HeaderSize + int(size)
	if len(buf) < end {
		return nil, 0, nil
	}
	return buf[HeaderSize:end], end, nil
}
