package static

import (
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
)

// Encoding 是协商后的响应压缩方式，空字符串表示不压缩。
type Encoding string

const (
	EncodingIdentity Encoding = ""
	EncodingBrotli   Encoding = "br"
	EncodingGzip     Encoding = "gzip"
)

// Negotiate 解析 Accept-Encoding：优先 br，其次 gzip，q=0 视为明确拒绝。
func Negotiate(acceptEncoding string) Encoding {
	if strings.TrimSpace(acceptEncoding) == "" {
		return EncodingIdentity
	}

	accepted := make(map[string]bool, 4)
	for _, part := range strings.Split(acceptEncoding, ",") {
		name, q := parseCoding(part)
		if name == "" {
			continue
		}
		accepted[name] = q > 0
	}

	switch {
	case accepted[string(EncodingBrotli)]:
		return EncodingBrotli
	case accepted[string(EncodingGzip)], accepted["x-gzip"]:
		return EncodingGzip
	default:
		return EncodingIdentity
	}
}

func parseCoding(part string) (string, float64) {
	fields := strings.Split(part, ";")
	name := strings.ToLower(strings.TrimSpace(fields[0]))
	q := 1.0
	for _, param := range fields[1:] {
		param = strings.TrimSpace(param)
		if !strings.HasPrefix(strings.ToLower(param), "q=") {
			continue
		}
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(param[2:]), 64); err == nil {
			q = parsed
		}
	}
	return name, q
}

// newEncoder 返回写入 w 的压缩流；调用方必须 Close 以刷出尾部数据。
func newEncoder(enc Encoding, w io.Writer) (io.WriteCloser, error) {
	switch enc {
	case EncodingBrotli:
		return brotli.NewWriterLevel(w, brotli.DefaultCompression), nil
	case EncodingGzip:
		return gzip.NewWriterLevel(w, gzip.DefaultCompression)
	default:
		return nopWriteCloser{w}, nil
	}
}

// compressTo 将缓存的原始字节按 enc 流式压缩写入 w。
func compressTo(w io.Writer, enc Encoding, data []byte) error {
	encoder, err := newEncoder(enc, w)
	if err != nil {
		return err
	}
	if _, err := encoder.Write(data); err != nil {
		encoder.Close()
		return err
	}
	return encoder.Close()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
