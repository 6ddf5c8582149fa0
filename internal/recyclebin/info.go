package recyclebin

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	infoHeader = "[Recycle Info]"
	timeFormat = "2006-01-02T15:04:05"
)

// Info is the content of a $I record: where the recycled item came from
// and when it was recycled
type Info struct {
	OriginalPath string
	DeletionDate time.Time
	Size         int64
	IsDir        bool
}

// ParseInfo reads an info record
func ParseInfo(r io.Reader) (*Info, error) {
	scanner := bufio.NewScanner(r)
	info := &Info{}
	var headerFound bool

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == infoHeader {
			headerFound = true
			continue
		}
		if !headerFound {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Path":
			path, err := url.PathUnescape(value)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid Path encoding: %v", ErrInvalidRecord, err)
			}
			info.OriginalPath = path
		case "DeletionDate":
			date, err := time.ParseInLocation(timeFormat, value, time.Local)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid DeletionDate: %v", ErrInvalidRecord, err)
			}
			info.DeletionDate = date
		case "Size":
			size, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid Size: %v", ErrInvalidRecord, err)
			}
			info.Size = size
		case "IsDir":
			info.IsDir = value == "true"
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading info record: %w", err)
	}

	switch {
	case !headerFound:
		return nil, fmt.Errorf("%w: missing %s header", ErrInvalidRecord, infoHeader)
	case info.OriginalPath == "":
		return nil, fmt.Errorf("%w: missing Path field", ErrInvalidRecord)
	case info.DeletionDate.IsZero():
		return nil, fmt.Errorf("%w: missing DeletionDate field", ErrInvalidRecord)
	}
	return info, nil
}

// WriteTo writes the record in the format ParseInfo reads
func (i *Info) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintln(&b, infoHeader)
	fmt.Fprintf(&b, "Path=%s\n", encodePath(i.OriginalPath))
	fmt.Fprintf(&b, "DeletionDate=%s\n", i.DeletionDate.Format(timeFormat))
	fmt.Fprintf(&b, "Size=%d\n", i.Size)
	fmt.Fprintf(&b, "IsDir=%t\n", i.IsDir)
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// encodePath percent-encodes each path segment, keeping separators
func encodePath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
