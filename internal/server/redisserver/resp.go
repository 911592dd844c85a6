package redisserver

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Protocol limits. Grid commands take at most two short arguments.
const (
	MaxArrayLen  = 16
	MaxBulkLen   = 4 * 1024
	MaxInlineLen = 4 * 1024

	// maxHeaderLen covers "*<n>\r\n" and "$<n>\r\n".
	maxHeaderLen = 32
)

var (
	ErrProtocol      = errors.New("resp: protocol error")
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// ReadCommand reads one command, either a RESP array of bulk strings or
// an inline line such as "PING\r\n". An empty command returns nil args.
func ReadCommand(r *bufio.Reader) ([][]byte, error) {
	b, err := r.Peek(1)
	if err != nil {
		return nil, err
	}
	if b[0] == '*' {
		return readArray(r)
	}

	line, err := readLine(r, MaxInlineLen)
	if err != nil {
		return nil, err
	}
	fields := bytes.Fields(line)
	if len(fields) > MaxArrayLen {
		return nil, fmt.Errorf("%w: %d arguments", ErrLimitExceeded, len(fields))
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

func readArray(r *bufio.Reader) ([][]byte, error) {
	n, err := readLength(r, '*')
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	if n > MaxArrayLen {
		return nil, fmt.Errorf("%w: array length %d", ErrLimitExceeded, n)
	}

	args := make([][]byte, n)
	for i := range args {
		if args[i], err = readBulk(r); err != nil {
			return nil, err
		}
	}
	return args, nil
}

func readBulk(r *bufio.Reader) ([]byte, error) {
	n, err := readLength(r, '$')
	if err != nil {
		return nil, err
	}
	switch {
	case n == -1:
		return nil, nil
	case n < 0:
		return nil, fmt.Errorf("%w: bulk length %d", ErrProtocol, n)
	case n > MaxBulkLen:
		return nil, fmt.Errorf("%w: bulk length %d", ErrLimitExceeded, n)
	}

	buf := make([]byte, n+2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	if buf[n] != '\r' || buf[n+1] != '\n' {
		return nil, fmt.Errorf("%w: bulk string not terminated by CRLF", ErrProtocol)
	}
	return buf[:n], nil
}

// readLength reads a "<prefix><int>\r\n" header.
func readLength(r *bufio.Reader, prefix byte) (int, error) {
	line, err := readLine(r, maxHeaderLen)
	if err != nil {
		return 0, err
	}
	if len(line) < 2 || line[0] != prefix {
		return 0, fmt.Errorf("%w: expected '%c'", ErrProtocol, prefix)
	}
	n, err := strconv.Atoi(string(line[1:]))
	if err != nil {
		return 0, fmt.Errorf("%w: bad length %q", ErrProtocol, line[1:])
	}
	return n, nil
}

// readLine reads up to and excluding CRLF. Lines longer than maxLen fail
// with ErrLimitExceeded before they are fully buffered.
func readLine(r *bufio.Reader, maxLen int) ([]byte, error) {
	var line []byte
	for {
		frag, err := r.ReadSlice('\n')
		line = append(line, frag...)
		if len(line) > maxLen+2 {
			return nil, fmt.Errorf("%w: line longer than %d bytes", ErrLimitExceeded, maxLen)
		}
		if err == nil {
			break
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return nil, err
		}
	}

	if !bytes.HasSuffix(line, []byte("\r\n")) {
		return nil, fmt.Errorf("%w: missing CRLF", ErrProtocol)
	}
	return line[:len(line)-2], nil
}

// Writer encodes RESP2 replies. Callers flush it once per command.
type Writer struct {
	*bufio.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{Writer: bufio.NewWriter(w)}
}

func (w *Writer) SimpleString(s string) error {
	return w.line('+', s)
}

// Error writes an error reply. Newlines in s are replaced so the reply
// stays one line.
func (w *Writer) Error(s string) error {
	return w.line('-', strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

func (w *Writer) Integer(n int64) error {
	return w.line(':', strconv.FormatInt(n, 10))
}

func (w *Writer) ArrayHeader(n int) error {
	return w.line('*', strconv.Itoa(n))
}

// Bulk writes a bulk string; nil writes the null bulk string.
func (w *Writer) Bulk(b []byte) error {
	if b == nil {
		return w.line('$', "-1")
	}
	if err := w.line('$', strconv.Itoa(len(b))); err != nil {
		return err
	}
	w.Write(b)
	_, err := w.WriteString("\r\n")
	return err
}

func (w *Writer) BulkString(s string) error {
	return w.Bulk([]byte(s))
}

func (w *Writer) line(prefix byte, s string) error {
	w.WriteByte(prefix)
	w.WriteString(s)
	_, err := w.WriteString("\r\n")
	return err
}

// commandName upper-cases an ASCII command name.
func commandName(b []byte) string {
	return strings.ToUpper(string(b))
}
