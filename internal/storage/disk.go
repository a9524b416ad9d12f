package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store persists objects under a root directory, one subdirectory per
// bucket. It is the only backend; swapping in a cloud object store means
// implementing the same methods against its SDK.
type Store struct {
	root string
}

// NewStore creates the bucket directories under root if needed.
func NewStore(root string) (*Store, error) {
	for name := range bucketPolicies {
		if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bucket directory %s: %w", name, err)
		}
	}
	return &Store{root: root}, nil
}

// Put writes an object after checking ownership and bucket policy. The
// caller supplies the declared size so oversized uploads are rejected before
// any bytes are read; the write itself is also capped at the policy limit.
func (s *Store) Put(ctx context.Context, bucket string, path ObjectPath, userID uuid.UUID, contentType string, size int64, r io.Reader) error {
	policy, err := Policy(bucket)
	if err != nil {
		return err
	}
	if err := Authorize(policy, path, userID, true); err != nil {
		return err
	}
	if err := policy.CheckUpload(contentType, size); err != nil {
		return err
	}

	dir := filepath.Join(s.root, bucket, path.UserID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	dst := filepath.Join(dir, path.Filename)
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create object file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, policy.MaxSizeBytes+1))
	if err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to write object: %w", err)
	}
	if n > policy.MaxSizeBytes {
		os.Remove(dst)
		return fmt.Errorf("file exceeds %d byte limit for bucket %s", policy.MaxSizeBytes, bucket)
	}
	return f.Close()
}

// Get opens an object for reading after checking access. The caller must
// close the returned reader.
func (s *Store) Get(ctx context.Context, bucket string, path ObjectPath, userID uuid.UUID) (io.ReadCloser, error) {
	policy, err := Policy(bucket)
	if err != nil {
		return nil, err
	}
	if err := Authorize(policy, path, userID, false); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.root, bucket, path.UserID.String(), path.Filename))
	if os.IsNotExist(err) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open object: %w", err)
	}
	return f, nil
}

// Delete removes an object. Only the owner may delete, even in public
// buckets.
func (s *Store) Delete(ctx context.Context, bucket string, path ObjectPath, userID uuid.UUID) error {
	policy, err := Policy(bucket)
	if err != nil {
		return err
	}
	if err := Authorize(policy, path, userID, true); err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.root, bucket, path.UserID.String(), path.Filename))
	if os.IsNotExist(err) {
		return ErrObjectNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// List returns the filenames a user has stored in a bucket.
func (s *Store) List(ctx context.Context, bucket string, userID uuid.UUID) ([]string, error) {
	if _, err := Policy(bucket); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.root, bucket, userID.String()))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
