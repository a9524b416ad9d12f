package server

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/daniela/resume-optimizer/internal/storage"
)

// handleUpload stores an object in the caller's prefix of a bucket. The
// request body is the file content; Content-Type and Content-Length drive
// the bucket policy checks.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	bucket := r.PathValue("bucket")
	path := storage.ObjectPath{UserID: userID, Filename: r.PathValue("filename")}
	if _, err := storage.ParseObjectPath(path.String()); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid filename")
		return
	}

	err := s.store.Put(r.Context(), bucket, path, userID, r.Header.Get("Content-Type"), r.ContentLength, r.Body)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{
		"bucket": bucket,
		"path":   path.String(),
	})
}

// handleDownload streams an object. Reads from the public avatars bucket
// are allowed across users; private buckets require ownership.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	bucket := r.PathValue("bucket")
	owner, err := uuid.Parse(r.PathValue("owner"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid owner id")
		return
	}
	path := storage.ObjectPath{UserID: owner, Filename: r.PathValue("filename")}

	rc, err := s.store.Get(r.Context(), bucket, path, userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = io.Copy(w, rc)
}

// handleDeleteObject removes an object from the caller's prefix.
func (s *Server) handleDeleteObject(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	bucket := r.PathValue("bucket")
	path := storage.ObjectPath{UserID: userID, Filename: r.PathValue("filename")}

	if err := s.store.Delete(r.Context(), bucket, path, userID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListObjects lists the caller's objects in a bucket.
func (s *Server) handleListObjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	names, err := s.store.List(r.Context(), r.PathValue("bucket"), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if names == nil {
		names = []string{}
	}
	s.jsonResponse(w, http.StatusOK, names)
}
