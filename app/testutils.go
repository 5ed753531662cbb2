package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/deverhart/folio/internal/common"
	"github.com/deverhart/folio/internal/mediaservice"
	"github.com/deverhart/folio/internal/postservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func newTestApplication(t *testing.T) (*application, *sql.DB, *mediaservice.MockUploader) {
	db := common.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	uploader := &mediaservice.MockUploader{}

	app := &application{
		config: &Config{
			Environment: "test",
			Version:     "1.0.0",
		},
		logger:        logger,
		postService:   postservice.NewPostService(db, cache),
		uploadService: uploader,
	}

	return app, db, uploader
}

func readResponse(t *testing.T, res *http.Response, dst any) (int, http.Header) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	if dst != nil {
		err = json.Unmarshal(responseBody, dst)
		if err != nil {
			t.Fatal(err)
		}
	}

	return res.StatusCode, res.Header
}

func (ts *testServer) post(t *testing.T, path string, data any, dst any) (int, http.Header) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.NewReader(jsonPayload)
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res, dst)
}

func (ts *testServer) get(t *testing.T, path string, dst any) (int, http.Header) {
	res, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res, dst)
}

func (ts *testServer) put(t *testing.T, path string, data any, dst any) (int, http.Header) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.NewReader(jsonPayload)
	req, err := http.NewRequest(http.MethodPut, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res, dst)
}

func (ts *testServer) delete(t *testing.T, path string, dst any) (int, http.Header) {
	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res, dst)
}

// uploadFile posts a multipart form to path. fieldName controls the form
// field carrying the file so tests can exercise the missing-file case.
func (ts *testServer) uploadFile(t *testing.T, path, fieldName string, content []byte, dst any) (int, http.Header) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fieldName, "image.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res, dst)
}
