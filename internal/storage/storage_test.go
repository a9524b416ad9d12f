package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectPath(t *testing.T) {
	owner := uuid.New()

	p, err := ParseObjectPath(owner.String() + "/resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, owner, p.UserID)
	assert.Equal(t, "resume.pdf", p.Filename)

	_, err = ParseObjectPath("resume.pdf")
	assert.Error(t, err)

	_, err = ParseObjectPath("not-a-uuid/resume.pdf")
	assert.Error(t, err)

	_, err = ParseObjectPath(owner.String() + "/../escape.pdf")
	assert.Error(t, err)

	_, err = ParseObjectPath(owner.String() + "/")
	assert.Error(t, err)
}

func TestCheckUpload(t *testing.T) {
	resumes, err := Policy(BucketResumes)
	require.NoError(t, err)

	assert.NoError(t, resumes.CheckUpload("application/pdf", 1024))
	assert.Error(t, resumes.CheckUpload("text/html", 1024))
	assert.Error(t, resumes.CheckUpload("application/pdf", resumes.MaxSizeBytes+1))

	_, err = Policy("exports")
	assert.Error(t, err)
}

func TestAuthorize(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	path := ObjectPath{UserID: owner, Filename: "resume.pdf"}

	resumes, _ := Policy(BucketResumes)
	avatars, _ := Policy(BucketAvatars)

	assert.NoError(t, Authorize(resumes, path, owner, false))
	assert.ErrorIs(t, Authorize(resumes, path, stranger, false), ErrForbidden)
	assert.ErrorIs(t, Authorize(resumes, path, uuid.Nil, false), ErrForbidden)

	// Public bucket: anyone can read, only the owner can write.
	assert.NoError(t, Authorize(avatars, path, stranger, false))
	assert.ErrorIs(t, Authorize(avatars, path, stranger, true), ErrForbidden)
	assert.NoError(t, Authorize(avatars, path, owner, true))
}

func TestStorePutGetDelete(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()
	path := ObjectPath{UserID: owner, Filename: "resume.pdf"}

	err = store.Put(ctx, BucketResumes, path, owner, "application/pdf", 11, strings.NewReader("hello world"))
	require.NoError(t, err)

	rc, err := store.Get(ctx, BucketResumes, path, owner)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "hello world", string(data))

	// Stranger cannot read a private object or write into another prefix.
	_, err = store.Get(ctx, BucketResumes, path, stranger)
	assert.ErrorIs(t, err, ErrForbidden)
	err = store.Put(ctx, BucketResumes, path, stranger, "application/pdf", 3, strings.NewReader("foo"))
	assert.ErrorIs(t, err, ErrForbidden)

	names, err := store.List(ctx, BucketResumes, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"resume.pdf"}, names)

	err = store.Delete(ctx, BucketResumes, path, stranger)
	assert.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, store.Delete(ctx, BucketResumes, path, owner))

	_, err = store.Get(ctx, BucketResumes, path, owner)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestStoreRejectsBadContentType(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	owner := uuid.New()
	path := ObjectPath{UserID: owner, Filename: "resume.exe"}
	err = store.Put(context.Background(), BucketResumes, path, owner, "application/octet-stream", 3, strings.NewReader("foo"))
	assert.Error(t, err)
}
