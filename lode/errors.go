package lode

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for storage failure classification.
// Use errors.Is(err, ErrXxx) for typed assertions.
var (
	// ErrPermissionDenied indicates a local permission failure (EACCES).
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound indicates the target path or bucket does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDiskFull indicates storage is out of space (ENOSPC).
	ErrDiskFull = errors.New("no space left on device")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrThrottled indicates rate limiting (429, SlowDown).
	ErrThrottled = errors.New("rate limited")

	// ErrAuth indicates missing or rejected credentials.
	ErrAuth = errors.New("authentication failed")

	// ErrAccessDenied indicates valid credentials without permission (403).
	ErrAccessDenied = errors.New("access denied")

	// ErrNetwork indicates a network-level failure (connection refused, DNS).
	ErrNetwork = errors.New("network error")

	// ErrUnclassified is the kind of storage errors matching no rule.
	ErrUnclassified = errors.New("storage error")
)

// StorageError wraps an underlying error with storage classification.
// The original error stays in the chain for errors.As.
type StorageError struct {
	// Kind is the sentinel error for classification (e.g., ErrPermissionDenied).
	Kind error
	// Op is the operation that failed: "write", "read" or "init".
	Op string
	// Path is the storage path or dataset involved, if any.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *StorageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error { return e.Err }

// Is reports whether the error's kind matches target.
func (e *StorageError) Is(target error) bool { return errors.Is(e.Kind, target) }

func wrap(op string, err error, path string) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Kind: classifyError(err), Op: op, Path: path, Err: err}
}

// WrapWriteError classifies and wraps a write error. Nil stays nil and an
// already classified error is returned unchanged.
func WrapWriteError(err error, path string) error { return wrap("write", err, path) }

// WrapReadError classifies and wraps a read error.
func WrapReadError(err error, path string) error { return wrap("read", err, path) }

// WrapInitError classifies and wraps a client or store initialization error.
func WrapInitError(err error, dataset string) error { return wrap("init", err, dataset) }

// classifyRule maps message fragments to a kind. Rules are tried in order;
// access denied precedes permission denied since S3 messages carry both.
type classifyRule struct {
	kind      error
	fragments []string
}

var classifyRules = []classifyRule{
	{ErrTimeout, []string{"timeout", "timed out", "deadline exceeded"}},
	{ErrAccessDenied, []string{"AccessDenied", "Forbidden", "403"}},
	{ErrPermissionDenied, []string{"permission denied", "EACCES"}},
	{ErrDiskFull, []string{"no space left", "disk full", "ENOSPC", "quota exceeded"}},
	{ErrNotFound, []string{"no such file", "does not exist", "not found", "ENOENT", "404", "NoSuchKey", "NoSuchBucket"}},
	{ErrThrottled, []string{"SlowDown", "rate exceeded", "throttl", "429", "TooManyRequests"}},
	{ErrAuth, []string{"NoCredentialProviders", "credentials", "InvalidAccessKeyId",
		"SignatureDoesNotMatch", "ExpiredToken", "401", "Unauthorized"}},
	{ErrNetwork, []string{"connection refused", "no route to host", "network unreachable", "DNS", "dial tcp"}},
}

// classifyError picks the sentinel kind for err: typed checks first, then
// message fragments.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return ErrTimeout
	}
	switch {
	case errors.Is(err, os.ErrPermission):
		return ErrPermissionDenied
	case errors.Is(err, os.ErrNotExist):
		return ErrNotFound
	}

	msg := strings.ToLower(err.Error())
	for _, rule := range classifyRules {
		for _, frag := range rule.fragments {
			if strings.Contains(msg, strings.ToLower(frag)) {
				return rule.kind
			}
		}
	}
	return ErrUnclassified
}

// ErrorKind returns a stable label for a storage error, for logs and
// metrics. Non-storage errors map to "other".
func ErrorKind(err error) string {
	var se *StorageError
	if !errors.As(err, &se) {
		return "other"
	}
	switch se.Kind {
	case ErrPermissionDenied:
		return "permission_denied"
	case ErrNotFound:
		return "not_found"
	case ErrDiskFull:
		return "disk_full"
	case ErrTimeout:
		return "timeout"
	case ErrThrottled:
		return "throttled"
	case ErrAuth:
		return "auth"
	case ErrAccessDenied:
		return "access_denied"
	case ErrNetwork:
		return "network"
	default:
		return "unclassified"
	}
}
