package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerate_Success(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s, want /api/generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "render/fluid.wgsl"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model")
	text, err := c.Generate(context.Background(), "which file?", []File{{Name: "ctx.txt", Content: "YWJj"}})
	if err != nil {
		t.Fatal(err)
	}
	if text != "render/fluid.wgsl" {
		t.Errorf("response = %q", text)
	}
	if got.Model != "test-model" || got.Stream {
		t.Errorf("request = %+v, want model=test-model stream=false", got)
	}
	if len(got.Files) != 1 || got.Files[0].Name != "ctx.txt" {
		t.Errorf("files = %+v", got.Files)
	}
}

func TestGenerate_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m")
	_, err := c.Generate(context.Background(), "p", nil)
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("err = %v, want ErrGeneration", err)
	}
}

func TestGenerate_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m")
	_, err := c.Generate(context.Background(), "p", nil)
	if !errors.Is(err, ErrProtocol) {
		t.Errorf("err = %v, want ErrProtocol", err)
	}
}

func TestGenerate_ConnectionRefused(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "m")
	_, err := c.Generate(context.Background(), "p", nil)
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("err = %v, want ErrGeneration", err)
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"```wgsl\ncode here\n```", "code here"},
		{"```\ncode\n```", "code"},
		{"no fences", "no fences"},
		{"  \n```ts\nline1\nline2\n```\n  ", "line1\nline2"},
		{"inline ``` stays", "inline ``` stays"},
	}
	for _, c := range cases {
		if got := StripFences(c.in); got != c.want {
			t.Errorf("StripFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEncodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctx.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, ok := EncodeFile(path)
	if !ok {
		t.Fatal("EncodeFile failed for existing file")
	}
	decoded, err := base64.StdEncoding.DecodeString(f.Content)
	if err != nil || string(decoded) != "hello" {
		t.Errorf("content = %q, %v", decoded, err)
	}

	if _, ok := EncodeFile(filepath.Join(t.TempDir(), "nope.txt")); ok {
		t.Error("EncodeFile should fail for missing file")
	}
}
