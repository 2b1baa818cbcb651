package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// The handlers below run against uninitialized collections on purpose:
// rejected input must never reach storage or the database, so a nil
// collection proves the call was short-circuited.

func performForm(t *testing.T, handler gin.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	handler(c)
	return w
}

func TestCreateGenreWithoutNameIsRejected(t *testing.T) {
	w := performForm(t, CreateGenre(), url.Values{"description": {"no name"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateGenreWithEmptyNameIsRejected(t *testing.T) {
	w := performForm(t, CreateGenre(), url.Values{"name": {""}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateArtistWithoutGenreIsRejected(t *testing.T) {
	w := performForm(t, CreateArtist(), url.Values{"name": {"Band A"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateArtistWithoutNameIsRejected(t *testing.T) {
	w := performForm(t, CreateArtist(), url.Values{"genre_id": {"g1"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateSongWithoutArtistIsRejected(t *testing.T) {
	w := performForm(t, CreateSong(), url.Values{"title": {"Track 1"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateSongWithoutAudioIsRejected(t *testing.T) {
	w := performForm(t, CreateSong(), url.Values{"title": {"Track 1"}, "artist_id": {"a1"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "Audio file is required") {
		t.Errorf("body = %s, want audio-required error", w.Body.String())
	}
}

func TestCreateGenreRejectsMalformedMultipart(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this is not a multipart body"))
	c.Request.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	CreateGenre()(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	// The parse failure itself is the error, not a missing-field complaint.
	if strings.Contains(w.Body.String(), "required") {
		t.Errorf("body = %s, want a parse error, not a validation error", w.Body.String())
	}
}

func TestCreateSongRejectsNonAudioUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("title", "Track 1")
	_ = mw.WriteField("artist_id", "a1")
	part, _ := mw.CreateFormFile("audio_file", "notes.txt")
	_, _ = part.Write([]byte("plain text"))
	mw.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", &body)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	CreateSong()(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
