package scanner

import (
	"io"
	"os"
	"strings"

	"golang.org/x/exp/mmap"
)

// maxContentReadBytes is the hard ceiling on any single content read,
// whatever the caller asks for.
const maxContentReadBytes = 10 << 20

// Indirection for tests to force the mmap path to fail.
var openMmapReader = mmap.Open

// readFileContentWithMode reads up to maxSize leading bytes of path.
// Files larger than maxSize are truncated, never skipped: techniques
// only ever reason about the leading window. Mode picks the IO path;
// auto prefers mmap for files past mmapMinSize and falls back to
// streaming when mapping fails.
func readFileContentWithMode(path string, maxSize int64, mode string, mmapMinSize int64, streamChunkSize int) ([]byte, error) {
	maxSize = clampContentMaxSize(maxSize)
	if mmapMinSize <= 0 {
		mmapMinSize = 128 * 1024
	}
	if streamChunkSize <= 0 {
		streamChunkSize = 256 * 1024
	}
	mode = strings.ToLower(strings.TrimSpace(mode))

	switch mode {
	case "mmap":
		return readFileContentMmap(path, maxSize)
	case "stream":
		return readFileContentStream(path, maxSize, streamChunkSize)
	default:
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.Size() >= mmapMinSize {
			content, err := readFileContentMmap(path, maxSize)
			if err == nil {
				return content, nil
			}
		}
		return readFileContentStream(path, maxSize, streamChunkSize)
	}
}

func readFileContentMmap(path string, maxSize int64) ([]byte, error) {
	maxSize = clampContentMaxSize(maxSize)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	r, err := openMmapReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	readSize := info.Size()
	if readSize > maxSize {
		readSize = maxSize
	}
	if readSize <= 0 {
		return []byte{}, nil
	}

	buf := make([]byte, readSize)
	if _, err := r.ReadAt(buf, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

func readFileContentStream(path string, maxSize int64, chunkSize int) ([]byte, error) {
	maxSize = clampContentMaxSize(maxSize)
	if chunkSize <= 0 {
		chunkSize = 256 * 1024
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var content []byte
	if stat, err := file.Stat(); err == nil && stat.Size() > 0 {
		capHint := stat.Size()
		if capHint > maxSize {
			capHint = maxSize
		}
		content = make([]byte, 0, capHint)
	}
	return readContentChunks(file, content, chunkSize, maxSize)
}

func readContentChunks(file *os.File, content []byte, chunkSize int, maxSize int64) ([]byte, error) {
	buffer := make([]byte, chunkSize)
	var total int64
	for {
		n, err := file.Read(buffer)
		if n > 0 {
			chunk := buffer[:n]
			if total+int64(n) > maxSize {
				chunk = chunk[:maxSize-total]
			}
			content = append(content, chunk...)
			total += int64(len(chunk))
			if total >= maxSize {
				break
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
	}
	return content, nil
}

func clampContentMaxSize(maxSize int64) int64 {
	if maxSize <= 0 || maxSize > maxContentReadBytes {
		return maxContentReadBytes
	}
	return maxSize
}
