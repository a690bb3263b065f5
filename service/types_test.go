package service

import "testing"

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"GET", MethodGet, false},
		{"post", MethodPost, false},
		{" Put ", MethodPut, false},
		{"delete", MethodDelete, false},
		{"HEAD", MethodHead, false},
		{"PATCH", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMethod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContentType_MIME(t *testing.T) {
	tests := []struct {
		ct   ContentType
		mime string
		name string
	}{
		{ContentTypeXML, "application/xml", "xml"},
		{ContentTypeJSON, "application/json", "json"},
		{ContentTypeForm, "application/x-www-form-urlencoded", "form"},
		{ContentTypeNone, "", "none"},
	}
	for _, tt := range tests {
		if got := tt.ct.MIME(); got != tt.mime {
			t.Errorf("MIME() = %q, want %q", got, tt.mime)
		}
		if got := tt.ct.Name(); got != tt.name {
			t.Errorf("Name() = %q, want %q", got, tt.name)
		}
		if !tt.ct.Valid() {
			t.Errorf("%q should be valid", tt.ct)
		}
	}
	if ContentType("text/csv").Valid() {
		t.Error("text/csv is not an enumerated content type")
	}
}

func TestAcceptType_MIME(t *testing.T) {
	tests := []struct {
		at   AcceptType
		mime string
	}{
		{AcceptXML, "application/xml"},
		{AcceptJSON, "application/json"},
		{AcceptHTML, "text/html"},
		{AcceptText, "text/plain"},
		{AcceptJavaScript, "text/javascript"},
		{AcceptNone, ""},
	}
	for _, tt := range tests {
		if got := tt.at.MIME(); got != tt.mime {
			t.Errorf("MIME() = %q, want %q", got, tt.mime)
		}
	}
}

func TestParseContentAndAcceptTypes(t *testing.T) {
	if ct, err := ParseContentType("FORM"); err != nil || ct != ContentTypeForm {
		t.Errorf("ParseContentType(FORM) = %q, %v", ct, err)
	}
	if ct, err := ParseContentType("application/json"); err != nil || ct != ContentTypeJSON {
		t.Errorf("ParseContentType(application/json) = %q, %v", ct, err)
	}
	if _, err := ParseContentType("yaml"); err == nil {
		t.Error("expected error for yaml")
	}
	if at, err := ParseAcceptType("javascript"); err != nil || at != AcceptJavaScript {
		t.Errorf("ParseAcceptType(javascript) = %q, %v", at, err)
	}
	if at, err := ParseAcceptType("none"); err != nil || at != AcceptNone {
		t.Errorf("ParseAcceptType(none) = %q, %v", at, err)
	}
	if _, err := ParseAcceptType("image/png"); err == nil {
		t.Error("expected error for image/png")
	}
}
