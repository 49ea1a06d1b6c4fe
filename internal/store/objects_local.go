package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/spf13/afero"
)

// LocalStorage keeps objects as files under a root directory, one
// subdirectory per bucket, and serves them over HTTP. Paths inside fs are
// rooted ("/<bucket>/<key>") so the same names work for the HTTP view.
type LocalStorage struct {
	fs            afero.Fs
	publicBaseURL string
	logger        *logger.Logger
}

// NewLocalStorage roots the storage at dir on the OS filesystem.
func NewLocalStorage(dir, publicBaseURL string, log *logger.Logger) (*LocalStorage, error) {
	osfs := afero.NewOsFs()
	if err := osfs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating storage dir: %w", err)
	}

	return NewLocalStorageFs(afero.NewBasePathFs(osfs, dir), publicBaseURL, log), nil
}

// NewLocalStorageFs uses fs as the storage root.
func NewLocalStorageFs(fs afero.Fs, publicBaseURL string, log *logger.Logger) *LocalStorage {
	return &LocalStorage{
		fs:            fs,
		publicBaseURL: publicBaseURL,
		logger:        log,
	}
}

func (s *LocalStorage) EnsureBucket(_ context.Context, bucket string) error {
	if err := s.fs.MkdirAll(path.Join("/", bucket), 0o755); err != nil {
		return newObjectError("create bucket", bucket, "", err)
	}
	return nil
}

func (s *LocalStorage) Put(ctx context.Context, bucket, key, _ string, _ int64, body io.Reader) error {
	if ok, err := afero.DirExists(s.fs, path.Join("/", bucket)); err != nil || !ok {
		return &ObjectError{Kind: KindBucketNotFound, Op: "put", Bucket: bucket, Key: key, Err: err}
	}

	name := path.Join("/", bucket, key)
	f, err := s.fs.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return newObjectError("put", bucket, key, err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = s.fs.Remove(name)
		return newObjectError("put", bucket, key, err)
	}
	if err := f.Close(); err != nil {
		return newObjectError("put", bucket, key, err)
	}

	logger.FromContext(ctx).Debug().Str("func", "*LocalStorage.Put").Str("object", name).Msg("object stored")
	return nil
}

func (s *LocalStorage) Delete(_ context.Context, bucket, key string) error {
	if err := s.fs.Remove(path.Join("/", bucket, key)); err != nil {
		return newObjectError("delete", bucket, key, err)
	}
	return nil
}

func (s *LocalStorage) PublicURL(bucket, key string) string {
	return objectURL(s.publicBaseURL, bucket, key)
}

func (s *LocalStorage) KeyFromURL(url string) (string, string, bool) {
	return splitObjectURL(s.publicBaseURL, url)
}

// Handler serves stored files; mount it with the bucket path left in the
// request URL ("/<bucket>/<key>").
// Directory listings are not served.
func (s *LocalStorage) Handler() http.Handler {
	files := http.FileServer(afero.NewHttpFs(s.fs))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || r.URL.Path[len(r.URL.Path)-1] == '/' {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
