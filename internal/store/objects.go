package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"syscall"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
)

// ObjectErrorKind classifies object storage failures so callers can decide
// whether an operation is worth repeating.
type ObjectErrorKind string

const (
	KindTransient      ObjectErrorKind = "transient"
	KindUnauthorized   ObjectErrorKind = "unauthorized"
	KindBucketNotFound ObjectErrorKind = "bucket_not_found"
	KindQuotaExceeded  ObjectErrorKind = "quota_exceeded"
	KindNotFound       ObjectErrorKind = "not_found"
	KindUnknown        ObjectErrorKind = "unknown"
)

// Object storage sentinels, one per [ObjectErrorKind]. An [*ObjectError]
// matches the sentinel of its kind with [errors.Is].
var (
	ErrObjectTransient    = errors.New("object storage temporarily unavailable")
	ErrObjectUnauthorized = errors.New("object storage rejected credentials")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrQuotaExceeded      = errors.New("object storage quota exceeded")
	ErrObjectNotFound     = errors.New("object not found")
	ErrObjectStorage      = errors.New("object storage error")
)

func (k ObjectErrorKind) sentinel() error {
	switch k {
	case KindTransient:
		return ErrObjectTransient
	case KindUnauthorized:
		return ErrObjectUnauthorized
	case KindBucketNotFound:
		return ErrBucketNotFound
	case KindQuotaExceeded:
		return ErrQuotaExceeded
	case KindNotFound:
		return ErrObjectNotFound
	default:
		return ErrObjectStorage
	}
}

// ObjectError describes a failed object storage call.
type ObjectError struct {
	Kind   ObjectErrorKind
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *ObjectError) Error() string {
	target := e.Bucket
	if e.Key != "" {
		target += "/" + e.Key
	}
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, target, e.Kind)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, target, e.Kind, e.Err)
}

func (e *ObjectError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// IsTransient reports whether err is an object storage failure that may
// succeed when repeated.
func IsTransient(err error) bool {
	var objErr *ObjectError
	return errors.As(err, &objErr) && objErr.Kind == KindTransient
}

func newObjectError(op, bucket, key string, err error) *ObjectError {
	return &ObjectError{
		Kind:   ClassifyObjectError(err),
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// S3 error codes grouped by kind. Codes cover AWS S3 and the common
// S3-compatible servers (MinIO, R2).
var objectErrorCodes = map[string]ObjectErrorKind{
	"NoSuchBucket": KindBucketNotFound,

	"NoSuchKey": KindNotFound,
	"NotFound":  KindNotFound,

	"AccessDenied":          KindUnauthorized,
	"InvalidAccessKeyId":    KindUnauthorized,
	"SignatureDoesNotMatch": KindUnauthorized,
	"ExpiredToken":          KindUnauthorized,
	"InvalidToken":          KindUnauthorized,
	"Forbidden":             KindUnauthorized,
	"AllAccessDisabled":     KindUnauthorized,

	"QuotaExceeded":        KindQuotaExceeded,
	"ServiceQuotaExceeded": KindQuotaExceeded,
	"XMinioStorageFull":    KindQuotaExceeded,
	"TooManyBuckets":       KindQuotaExceeded,

	"SlowDown":                   KindTransient,
	"RequestTimeout":             KindTransient,
	"InternalError":              KindTransient,
	"ServiceUnavailable":         KindTransient,
	"Throttling":                 KindTransient,
	"XMinioServerNotInitialized": KindTransient,
}

// ClassifyObjectError derives the [ObjectErrorKind] of err. Structured
// signals are checked first: the S3 error code, the HTTP status of the
// response, network and filesystem errors. Errors carrying none of them
// fall back to matching well-known phrases in the message, which is a
// best-effort heuristic.
func ClassifyObjectError(err error) ObjectErrorKind {
	if err == nil {
		return KindUnknown
	}

	var objErr *ObjectError
	if errors.As(err, &objErr) {
		return objErr.Kind
	}

	if errors.Is(err, context.Canceled) {
		return KindUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if kind, ok := objectErrorCodes[apiErr.ErrorCode()]; ok {
			return kind
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		if kind, ok := kindFromStatus(respErr.HTTPStatusCode()); ok {
			return kind
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransient
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EPIPE) {
		return KindTransient
	}

	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) {
		return KindQuotaExceeded
	}
	if errors.Is(err, os.ErrPermission) {
		return KindUnauthorized
	}
	if errors.Is(err, os.ErrNotExist) {
		return KindNotFound
	}

	return classifyByMessage(err.Error())
}

func kindFromStatus(status int) (ObjectErrorKind, bool) {
	switch {
	case status == 401 || status == 403:
		return KindUnauthorized, true
	case status == 404:
		return KindNotFound, true
	case status == 507:
		return KindQuotaExceeded, true
	case status == 408 || status == 429 || status >= 500:
		return KindTransient, true
	}
	return "", false
}

// classifyByMessage is the fallback for errors without structure.
func classifyByMessage(msg string) ObjectErrorKind {
	msg = strings.ToLower(msg)

	switch {
	case containsAny(msg, "unauthorized", "access denied", "forbidden", "invalid credentials"):
		return KindUnauthorized
	case containsAny(msg, "bucket not found", "no such bucket", "nosuchbucket"):
		return KindBucketNotFound
	case containsAny(msg, "quota", "storage full", "insufficient storage"):
		return KindQuotaExceeded
	case containsAny(msg, "timeout", "timed out", "network", "connection reset",
		"connection refused", "eof", "temporarily unavailable"):
		return KindTransient
	}

	return KindUnknown
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// objectURL joins base, bucket and key into a public URL.
func objectURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + key
}

// splitObjectURL reverses objectURL. Keys never contain a slash.
func splitObjectURL(base, url string) (bucket, key string, ok bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if base == "" || !strings.HasPrefix(url, prefix) {
		return "", "", false
	}

	rest := strings.TrimPrefix(url, prefix)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" || strings.Contains(key, "/") || strings.Contains(key, "..") {
		return "", "", false
	}
	return bucket, key, true
}
