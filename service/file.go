package service

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// descriptorFile is the YAML form of a Descriptor. Enumerations accept short
// names (post, form, json) as well as wire values.
type descriptorFile struct {
	Method            string            `yaml:"method"`
	URL               string            `yaml:"url"`
	Timeout           string            `yaml:"timeout"`
	ContentType       string            `yaml:"content_type"`
	Accept            string            `yaml:"accept"`
	Params            map[string]any    `yaml:"params"`
	Headers           map[string]string `yaml:"headers"`
	CustomContentType *string           `yaml:"custom_content_type"`
	CustomAccept      *string           `yaml:"custom_accept"`
	Credential        *credentialFile   `yaml:"credential"`
}

type credentialFile struct {
	CertFile     string `yaml:"cert_file"`
	KeyFile      string `yaml:"key_file"`
	PKCS12File   string `yaml:"pkcs12_file"`
	PKCS12Secret string `yaml:"pkcs12_password"`
}

// ParseDescriptor decodes a YAML descriptor document.
//
//	method: post
//	url: https://api.example.com/login
//	timeout: 10s
//	content_type: form
//	accept: json
//	params:
//	  user: alice
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var f descriptorFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("service: decode descriptor: %w", err)
	}
	return f.descriptor()
}

// LoadDescriptor reads and decodes a YAML descriptor file.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("service: read descriptor: %w", err)
	}
	return ParseDescriptor(data)
}

func (f *descriptorFile) descriptor() (*Descriptor, error) {
	d := &Descriptor{
		URL:               f.URL,
		Headers:           f.Headers,
		CustomContentType: f.CustomContentType,
		CustomAccept:      f.CustomAccept,
		ContentType:       ContentTypeNone,
		Accept:            AcceptNone,
	}

	method := f.Method
	if method == "" {
		method = string(MethodGet)
	}
	m, err := ParseMethod(method)
	if err != nil {
		return nil, err
	}
	d.Method = m

	if f.ContentType != "" {
		if d.ContentType, err = ParseContentType(f.ContentType); err != nil {
			return nil, err
		}
	}
	if f.Accept != "" {
		if d.Accept, err = ParseAcceptType(f.Accept); err != nil {
			return nil, err
		}
	}
	if f.Timeout != "" {
		if d.Timeout, err = time.ParseDuration(f.Timeout); err != nil {
			return nil, fmt.Errorf("service: invalid timeout %q: %w", f.Timeout, err)
		}
	}
	if len(f.Params) > 0 {
		if d.Params, err = ParamsFrom(f.Params); err != nil {
			return nil, err
		}
	}
	if f.Credential != nil {
		if d.Credential, err = f.Credential.load(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (c *credentialFile) load() (*Credential, error) {
	if c.PKCS12File != "" {
		data, err := os.ReadFile(c.PKCS12File)
		if err != nil {
			return nil, fmt.Errorf("service: read credential: %w", err)
		}
		return LoadPKCS12Credential(data, c.PKCS12Secret)
	}
	return LoadX509Credential(c.CertFile, c.KeyFile)
}
