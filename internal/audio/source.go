package audio

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
)

// Source locates an encoded audio file, either by URL, by path or held in memory.
type Source struct {
	URL  string
	Path string
	Data []byte
	Name string // Used to guess the format when the content is ambiguous
}

func FromURL(url string) Source {
	return Source{URL: url, Name: path.Base(url)}
}

func FromFile(p string) Source {
	return Source{Path: p, Name: path.Base(p)}
}

func FromBytes(name string, data []byte) Source {
	return Source{Data: data, Name: name}
}

// Parse treats anything with a scheme as a URL and everything else as a file.
func Parse(s string) Source {
	if strings.HasPrefix(s, "file://") {
		return FromFile(strings.TrimPrefix(s, "file://"))
	}
	if strings.Contains(s, "://") {
		return FromURL(s)
	}
	return FromFile(s)
}

func (s Source) String() string {
	switch {
	case s.URL != "":
		return s.URL
	case s.Path != "":
		return s.Path
	}
	return fmt.Sprintf("%v (%v bytes)", s.Name, len(s.Data))
}

// Read returns the encoded bytes of the source.
func (s Source) Read(ctx context.Context) ([]byte, error) {
	switch {
	case s.Data != nil:
		return s.Data, nil
	case s.Path != "":
		return os.ReadFile(s.Path)
	case s.URL != "":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
		if nil != err {
			return nil, err
		}
		res, err := http.DefaultClient.Do(req)
		if nil != err {
			return nil, err
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unable to fetch %v: %v", s.URL, res.Status)
		}
		return io.ReadAll(res.Body)
	}
	return nil, fmt.Errorf("empty audio source")
}

// Sum identifies the track by its encoded content.
func Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}
