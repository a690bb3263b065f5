package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BonEvil/DPSessionManager/security/tlstest"
)

func TestParseDescriptor(t *testing.T) {
	doc := `
method: post
url: http://x/test
timeout: 2s
content_type: form
accept: json
headers:
  X-Trace: abc
custom_accept: application/hal+json
params:
  a: "1"
  b: 2 3
  n: 4
  nested:
    ok: true
`
	d, err := ParseDescriptor([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Method != MethodPost {
		t.Errorf("Method = %q", d.Method)
	}
	if d.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v", d.Timeout)
	}
	if d.ContentType != ContentTypeForm || d.Accept != AcceptJSON {
		t.Errorf("types = %q / %q", d.ContentType, d.Accept)
	}
	if d.Headers["X-Trace"] != "abc" {
		t.Errorf("Headers = %v", d.Headers)
	}
	if d.CustomAccept == nil || *d.CustomAccept != "application/hal+json" {
		t.Errorf("CustomAccept = %v", d.CustomAccept)
	}
	if s, ok := d.Params["b"].AsString(); !ok || s != "2 3" {
		t.Errorf("Params[b] = %#v", d.Params["b"])
	}
	if n, ok := d.Params["n"].AsNumber(); !ok || n != 4 {
		t.Errorf("Params[n] = %#v", d.Params["n"])
	}
	if _, ok := d.Params["nested"].AsMap(); !ok {
		t.Errorf("Params[nested] = %#v", d.Params["nested"])
	}
	if err := d.Validate(); err != nil {
		t.Errorf("parsed descriptor should validate: %v", err)
	}
}

func TestParseDescriptor_Defaults(t *testing.T) {
	d, err := ParseDescriptor([]byte("url: http://x/\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Method != MethodGet {
		t.Errorf("expected GET default, got %q", d.Method)
	}
	if d.ContentType != ContentTypeNone || d.Accept != AcceptNone {
		t.Errorf("expected NONE types, got %q / %q", d.ContentType, d.Accept)
	}
}

func TestParseDescriptor_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown field":  "url: http://x/\nbogus: 1\n",
		"bad method":     "method: patch\nurl: http://x/\n",
		"bad content":    "content_type: csv\nurl: http://x/\n",
		"bad accept":     "accept: png\nurl: http://x/\n",
		"bad timeout":    "timeout: soon\nurl: http://x/\n",
		"bad credential": "url: http://x/\ncredential:\n  cert_file: /nonexistent\n  key_file: /nonexistent\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseDescriptor([]byte(doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadDescriptor_WithCredential(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	certFile, keyFile := certs.ClientCertFiles(t, "alice")

	dir := t.TempDir()
	path := filepath.Join(dir, "call.yaml")
	doc := "url: https://localhost/\ncredential:\n  cert_file: " + certFile + "\n  key_file: " + keyFile + "\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	d, err := LoadDescriptor(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Credential == nil {
		t.Fatal("expected credential")
	}
	if got := d.Credential.Subject(); got != "alice" {
		t.Errorf("Subject() = %q, want alice", got)
	}
}

func TestLoadDescriptor_MissingFile(t *testing.T) {
	if _, err := LoadDescriptor("/nonexistent/call.yaml"); err == nil {
		t.Fatal("expected error")
	}
}
