// Package storage implements object storage for resume files and avatars.
// Objects live under per-user prefixes ({user_id}/{filename}); every
// operation checks that the requesting user owns the prefix before touching
// the backend, so one user can never read or overwrite another's files.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrForbidden is returned when an object path does not belong to the
	// requesting user.
	ErrForbidden = errors.New("storage: object not owned by user")

	// ErrObjectNotFound is returned when the object does not exist.
	ErrObjectNotFound = errors.New("storage: object not found")
)

// Bucket names.
const (
	BucketResumes = "resumes"
	BucketAvatars = "avatars"
)

// BucketPolicy describes upload constraints for one bucket.
type BucketPolicy struct {
	Name         string
	Public       bool
	MaxSizeBytes int64
	// AllowedMIMETypes is empty when any content type is accepted.
	AllowedMIMETypes []string
}

var bucketPolicies = map[string]BucketPolicy{
	BucketResumes: {
		Name:         BucketResumes,
		Public:       false,
		MaxSizeBytes: 10 << 20,
		AllowedMIMETypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
	},
	BucketAvatars: {
		Name:         BucketAvatars,
		Public:       true,
		MaxSizeBytes: 2 << 20,
		AllowedMIMETypes: []string{
			"image/jpeg",
			"image/png",
			"image/webp",
		},
	},
}

// Policy returns the policy for a bucket name.
func Policy(bucket string) (BucketPolicy, error) {
	p, ok := bucketPolicies[bucket]
	if !ok {
		return BucketPolicy{}, fmt.Errorf("unknown bucket %q", bucket)
	}
	return p, nil
}

// CheckUpload validates a proposed upload against the bucket's policy.
func (p BucketPolicy) CheckUpload(contentType string, size int64) error {
	if size > p.MaxSizeBytes {
		return fmt.Errorf("file exceeds %d byte limit for bucket %s", p.MaxSizeBytes, p.Name)
	}
	if len(p.AllowedMIMETypes) == 0 {
		return nil
	}
	for _, mt := range p.AllowedMIMETypes {
		if strings.EqualFold(mt, contentType) {
			return nil
		}
	}
	return fmt.Errorf("content type %q not allowed in bucket %s", contentType, p.Name)
}

// ObjectPath is a validated {user_id}/{filename} key within a bucket.
type ObjectPath struct {
	UserID   uuid.UUID
	Filename string
}

// ParseObjectPath validates a raw object key. The first path segment must be
// a UUID and the filename must be a single clean segment, which rules out
// traversal attempts like "../other".
func ParseObjectPath(raw string) (ObjectPath, error) {
	parts := strings.SplitN(raw, "/", 2)
	if len(parts) != 2 {
		return ObjectPath{}, fmt.Errorf("object path %q must be user_id/filename", raw)
	}
	owner, err := uuid.Parse(parts[0])
	if err != nil {
		return ObjectPath{}, fmt.Errorf("object path %q has invalid owner segment: %w", raw, err)
	}
	name := parts[1]
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, "/\\") {
		return ObjectPath{}, fmt.Errorf("object path %q has invalid filename", raw)
	}
	return ObjectPath{UserID: owner, Filename: name}, nil
}

// String renders the path back into its bucket key form.
func (p ObjectPath) String() string {
	return p.UserID.String() + "/" + p.Filename
}

// Authorize checks whether the given user may access the object. Public
// buckets allow reads by anyone; writes always require ownership.
func Authorize(policy BucketPolicy, path ObjectPath, userID uuid.UUID, write bool) error {
	if !write && policy.Public {
		return nil
	}
	if userID == uuid.Nil || path.UserID != userID {
		return ErrForbidden
	}
	return nil
}
