// SPDX-License-Identifier: GPL-2.0-or-later

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"anicursor/anitest"
	"anicursor/fetch"
	"anicursor/loader"
	"anicursor/model"
	"anicursor/theme"

	"github.com/go-chi/chi/v5/middleware"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ani := anitest.ANI{Frames: anitest.Frames(2, 32, 32), DisplayRate: 6}.Bytes()
	f := fetch.Func(func(_ context.Context, src string) ([]byte, error) {
		if strings.HasSuffix(src, ".ani") && !strings.Contains(src, "missing") {
			return ani, nil
		}
		return nil, errors.New("not found")
	})
	th := theme.Default()
	s := New(loader.New(f, nil, nil), th, loader.DefaultOptions())
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, u string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(u)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, b
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)
	resp, b := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.Unmarshal(b, &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("got %v", body)
	}
}

func TestGetCursor(t *testing.T) {
	ts := setupTestServer(t)
	resp, b := get(t, ts.URL+"/api/cursor/?src="+url.QueryEscape("mouse/Busy.ani")+"&w=16&h=16")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, b)
	}
	var d model.Descriptor
	if err := json.Unmarshal(b, &d); err != nil {
		t.Fatal(err)
	}
	if d.ClassName != "cursor-animation-mouse-Busy-ani" || d.TotalMS != 200 || d.Images[0].Width != 16 {
		t.Errorf("got %s %v %d", d.ClassName, d.TotalMS, d.Images[0].Width)
	}
}

func TestGetCursorErrors(t *testing.T) {
	ts := setupTestServer(t)
	tests := []struct {
		query string
		code  int
	}{
		{"", http.StatusBadRequest},
		{"?src=a.ani&w=big", http.StatusBadRequest},
		{"?src=missing.ani", http.StatusBadGateway},
	}
	for _, tc := range tests {
		resp, b := get(t, ts.URL+"/api/cursor/"+tc.query)
		if resp.StatusCode != tc.code {
			t.Errorf("%q: status %d, want %d (%s)", tc.query, resp.StatusCode, tc.code, b)
		}
	}
}

func TestPostCursor(t *testing.T) {
	ts := setupTestServer(t)
	in := `{"frameInfos":[{"frameIndex":0,"framDuration":50}],"frameImages":["data:image/png;base64,aGk="],"identifier":"test"}`
	resp, err := http.Post(ts.URL+"/api/cursor/", "application/json", bytes.NewBufferString(in))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var d model.Descriptor
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || d.ClassName != "cursor-animation-test" {
		t.Errorf("status %d class %q", resp.StatusCode, d.ClassName)
	}

	resp, err = http.Post(ts.URL+"/api/cursor/", "application/json", bytes.NewBufferString(`{"frameInfos":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("empty input: status %d", resp.StatusCode)
	}
}

func TestExportAndTheme(t *testing.T) {
	ts := setupTestServer(t)
	resp, b := get(t, ts.URL+"/api/cursor/export?src=Busy.ani")
	if resp.StatusCode != http.StatusOK || !strings.Contains(resp.Header.Get("Content-Disposition"), "ani-export.html") {
		t.Errorf("export: %d %v", resp.StatusCode, resp.Header)
	}
	if !bytes.Contains(b, []byte("cursor-animation-Busy-ani-keyframes")) {
		t.Errorf("export lacks the animation")
	}

	resp, b = get(t, ts.URL+"/theme.css")
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/css") {
		t.Errorf("theme: %d %v", resp.StatusCode, resp.Header)
	}
	if !bytes.Contains(b, []byte("body { animation: cursor-animation-mouse-NormalSelect-ani-keyframes")) {
		t.Errorf("theme.css = %s", b)
	}
}

func TestAbsolutePathsRejected(t *testing.T) {
	var fetched []string
	f := fetch.Func(func(_ context.Context, src string) ([]byte, error) {
		fetched = append(fetched, src)
		return anitest.ANI{Frames: anitest.Frames(1, 16, 16), DisplayRate: 6}.Bytes(), nil
	})
	ts := httptest.NewServer(New(loader.New(f, nil, nil), nil, loader.DefaultOptions()).Routes())
	defer ts.Close()

	secret := filepath.Join(t.TempDir(), "secret.ani")
	for _, src := range []string{secret, "/etc/hostname", "/etc/nope", `\\host\share\a.ani`, `C:\cursors\a.ani`} {
		for _, path := range []string{"/api/cursor/", "/api/cursor/export"} {
			resp, b := get(t, ts.URL+path+"?src="+url.QueryEscape(src))
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("%s %q: status %d, want 400 (%s)", path, src, resp.StatusCode, b)
			}
		}
	}
	if len(fetched) != 0 {
		t.Errorf("fetched %q", fetched)
	}

	resp, b := get(t, ts.URL+"/api/cursor/?src="+url.QueryEscape("mouse/Busy.ani"))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("relative path: status %d (%s)", resp.StatusCode, b)
	}
}

func TestRequestIDLogged(t *testing.T) {
	var buf bytes.Buffer
	old := middleware.DefaultLogger
	middleware.DefaultLogger = middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.New(&buf, "", 0),
		NoColor: true,
	})
	defer func() { middleware.DefaultLogger = old }()

	ts := setupTestServer(t)
	if resp, _ := get(t, ts.URL+"/healthz"); resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	// the log line starts with the bracketed request id
	if !strings.HasPrefix(buf.String(), "[") {
		t.Errorf("log line lacks the request id: %q", buf.String())
	}
}
