// Package ianadist downloads and unpacks tzdb releases distributed by IANA
// and feeds their source files to the tzdata parser.
//
// Releases are downloaded from the [IANA data server]. Clients should keep
// the [ETag] returned by Latest and pass it to the next call to avoid
// downloading an unchanged release again.
//
// [ETag]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/ETag
// [IANA data server]: https://www.iana.org/time-zones
package ianadist

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/ngrash/go-tzdb/tzdata"
)

// DataFiles maps the names of tzdb source files to their contents.
// Names are never empty and every file starts with the header
//
//	# tzdb data for
//
// which also satisfies the first-line check of tzdata.Parse.
type DataFiles map[string][]byte

// Names returns the file names in lexical order.
func (f DataFiles) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Release is an unpacked tzdb release.
type Release struct {
	// Version of the release, e.g. "2024b".
	Version string
	// DataFiles holds the source files of the release.
	DataFiles DataFiles
	// LeapSecondsFile is the content of the leapseconds file, if the archive had one.
	LeapSecondsFile []byte
}

// Parse parses all data files of the release into db, in the order of
// DataFiles.Names. It stops at the first file that fails to parse.
func (r *Release) Parse(db *tzdata.Database) error {
	for _, name := range r.DataFiles.Names() {
		if err := tzdata.Parse(bytes.NewReader(r.DataFiles[name]), db); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
	}
	return nil
}

// LeapSeconds parses the leapseconds file of the release.
func (r *Release) LeapSeconds() (tzdata.LeapSeconds, error) {
	if len(r.LeapSecondsFile) == 0 {
		return tzdata.LeapSeconds{}, errors.New("release has no leapseconds file")
	}
	ls, err := tzdata.ParseLeapSeconds(bytes.NewReader(r.LeapSecondsFile))
	if err != nil {
		return ls, fmt.Errorf("parse %s: %w", leapSecondsFilename, err)
	}
	return ls, nil
}

// DefaultClient is used by the package-level functions Latest and Download.
var DefaultClient = &Client{}

// Client downloads tzdb releases. The zero value is ready to use.
type Client struct {
	// HTTPClient sends the requests. If nil, http.DefaultClient is used.
	//
	// Tests replace it with a client whose RoundTripper returns canned
	// responses. Timeouts can be set here or through the context passed
	// to Latest and Download.
	HTTPClient *http.Client

	// BaseURL overrides the IANA data server, e.g. for a mirror.
	BaseURL string
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return defaultBaseURL
	}
	return c.BaseURL
}

const (
	defaultBaseURL = "https://data.iana.org/time-zones/"
	// LatestDataPath is the path of the latest data archive relative to the base URL.
	LatestDataPath = "tzdata-latest.tar.gz"
	// DataFileHeader starts every source file in a data archive.
	DataFileHeader      = "# tzdb data for"
	leapSecondsFilename = "leapseconds"
	versionFilename     = "version"
	noEtag              = ""
)

// ReadArchive unpacks a gzip-compressed tar archive of a tzdb release,
// as found at https://data.iana.org/time-zones/releases/.
func ReadArchive(r io.Reader) (*Release, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("read gzip: %w", err)
	}
	tr := tar.NewReader(zr)

	release := Release{DataFiles: make(DataFiles)}
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		name := path.Clean(header.Name)

		switch name {
		case leapSecondsFilename:
			if release.LeapSecondsFile, err = io.ReadAll(tr); err != nil {
				return nil, fmt.Errorf("read %s: %w", name, err)
			}
			continue
		case versionFilename:
			b, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", name, err)
			}
			release.Version = strings.TrimSpace(string(b))
			continue
		}

		data, ok, err := readDataFile(tr, header.Size)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if ok {
			release.DataFiles[name] = data
		}
	}

	if len(release.DataFiles) == 0 {
		return nil, errors.New("no data files found")
	}
	if release.Version == "" {
		return nil, errors.New("no version found")
	}
	return &release, nil
}

// readDataFile reads the current archive entry if it starts with DataFileHeader.
// Other entries are skipped after reading no more than the header's length.
func readDataFile(r io.Reader, size int64) ([]byte, bool, error) {
	if size < int64(len(DataFileHeader)) {
		return nil, false, nil
	}
	var header [len(DataFileHeader)]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, false, err
	}
	if string(header[:]) != DataFileHeader {
		return nil, false, nil
	}
	data := make([]byte, size)
	copy(data, header[:])
	if _, err := io.ReadFull(r, data[len(header):]); err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Latest downloads and unpacks the latest release using DefaultClient.
// See Client.Latest.
func Latest(ctx context.Context, etag string) (*Release, string, error) {
	return DefaultClient.Latest(ctx, etag)
}

// Latest downloads and unpacks the latest release.
//
// If the server answers 304 Not Modified for etag, Latest returns a nil
// Release, the given etag and a nil error. On error, the returned ETag is
// empty.
func (c *Client) Latest(ctx context.Context, etag string) (*Release, string, error) {
	body, newEtag, err := c.Download(ctx, LatestDataPath, etag)
	if err != nil {
		return nil, noEtag, err
	}
	if body == nil {
		return nil, etag, nil
	}
	defer func() {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, body)
		_ = body.Close()
	}()

	release, err := ReadArchive(body)
	if err != nil {
		return nil, noEtag, err
	}
	return release, newEtag, nil
}

// Download fetches a resource using DefaultClient.
// See Client.Download.
func Download(ctx context.Context, resource, etag string) (io.ReadCloser, string, error) {
	return DefaultClient.Download(ctx, resource, etag)
}

// Download fetches the resource at the given path relative to the base URL.
//
// If etag is not empty it is sent in an If-None-Match header. When the server
// answers 304 Not Modified, Download returns a nil body, the given etag and
// a nil error. Otherwise the caller must read and close the returned body.
// Status codes other than 200 and 304 are errors.
func (c *Client) Download(ctx context.Context, resource, etag string) (io.ReadCloser, string, error) {
	u, err := url.JoinPath(c.baseURL(), resource)
	if err != nil {
		return nil, noEtag, fmt.Errorf("join URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, noEtag, fmt.Errorf("create request for %q: %w", u, err)
	}
	if etag != noEtag {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, noEtag, fmt.Errorf("GET %q: %w", u, err)
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		if resp.StatusCode == http.StatusNotModified {
			return nil, etag, nil
		}
		return nil, noEtag, fmt.Errorf("response for %q: unexpected status: %s", u, resp.Status)
	}
	return resp.Body, resp.Header.Get("ETag"), nil
}
