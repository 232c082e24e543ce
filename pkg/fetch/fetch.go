// Fetching and decoding of annotation payloads: extension-based format
// dispatch, the remote/local/in-memory load paths, and the load session that
// owns the raw annotation state of one diagram.

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/yumyai/ggideo/internal/util"
	"github.com/yumyai/ggideo/pkg/model"
)

// UnsupportedFormatError rejects an annotation resource whose extension is
// neither BED nor JSON. The message is user-facing and names the extension.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return "annotation resource has no file extension; expected .bed or .json"
	}
	return fmt.Sprintf("unsupported annotation format %q; expected .bed or .json", e.Ext)
}

// FetchError is a transport-level failure reaching or reading the remote
// annotation resource. Never retried here; retry is a caller policy.
type FetchError struct {
	URL    string
	Status int // non-zero when the server answered outside 2xx
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RawSink receives the raw annotation set before load completion is signaled.
// The heatmap deserializer implements this.
type RawSink interface {
	DeserializeRaw(*model.RawAnnotSet)
}

// Loader is the load session of one diagram. It owns the mutable raw
// annotation state: single writer, written only inside commit once a load
// path succeeds. Two overlapping loads are not coordinated; the
// last-to-complete wins.
type Loader struct {
	Client  *http.Client
	Heatmap RawSink                  // optional, heatmap mode only
	OnLoad  func(*model.RawAnnotSet) // completion callback

	RawAnnots *model.RawAnnotSet
}

// parserFor maps a file extension to its decoder. The dispatch happens
// before any body is read, so an unsupported extension never gets decoded.
func parserFor(ext string) (func(io.Reader) (*model.RawAnnotSet, error), error) {
	switch ext {
	case ".bed":
		return model.ParseBED, nil
	case ".json":
		return model.ParseAnnots, nil
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
}

func (l *Loader) client() *http.Client {
	if l.Client != nil {
		return l.Client
	}
	return http.DefaultClient
}

// LoadURL fetches a remote annotation resource, selecting the decoder from
// the filename extension (query string ignored). The extension is checked
// before the request is issued.
func (l *Loader) LoadURL(ctx context.Context, rawURL string) (*model.RawAnnotSet, error) {

	parse, err := parserFor(util.PathExt(rawURL))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	resp, err := l.client().Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: rawURL, Status: resp.StatusCode}
	}

	set, err := parse(resp.Body)
	if err != nil {
		return nil, err
	}

	l.commit(set)
	return set, nil
}

// LoadFile decodes an annotation file on disk under the same extension
// dispatch as LoadURL.
func (l *Loader) LoadFile(path string) (*model.RawAnnotSet, error) {

	parse, err := parserFor(util.PathExt(path))
	if err != nil {
		return nil, err
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	set, err := parse(fh)
	if err != nil {
		return nil, err
	}

	l.commit(set)
	return set, nil
}

// LoadRaw adopts an already-resident raw set; it is canonical as-is.
func (l *Loader) LoadRaw(set *model.RawAnnotSet) *model.RawAnnotSet {
	l.commit(set)
	return set
}

// commit is the single completion continuation: store the raw set, forward
// it to the heatmap deserializer when one is configured, then signal.
func (l *Loader) commit(set *model.RawAnnotSet) {
	l.RawAnnots = set
	if l.Heatmap != nil {
		l.Heatmap.DeserializeRaw(set)
	}
	if l.OnLoad != nil {
		l.OnLoad(set)
	}
}
