// Package tlstest generates certificates and TLS servers for tests.
// Certificates are created with the crypto stdlib and written under
// t.TempDir(), so they are cleaned up with the test.
//
// Usage:
//
//	func TestClientCertificate(t *testing.T) {
//	    certs := tlstest.GenerateTLSCerts(t)
//	    client := certs.ClientCert(t, "alice")
//	    srv := tlstest.NewClientAuthServer(t, certs, handler)
//	    // srv.URL speaks TLS and asks every client for a certificate
//	}
package tlstest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// TLSCerts holds paths to generated TLS certificate files and parsed objects.
type TLSCerts struct {
	// CAFile is the path to the CA certificate PEM file.
	CAFile string
	// CertFile is the path to the server certificate PEM file.
	CertFile string
	// KeyFile is the path to the server private key PEM file.
	KeyFile string

	// CACert is the parsed CA certificate.
	CACert *x509.Certificate
	// CAKey is the CA private key.
	CAKey *ecdsa.PrivateKey
	// ServerTLS is a ready-to-use server certificate.
	ServerTLS tls.Certificate
	// CertPool contains the CA certificate.
	CertPool *x509.CertPool

	dir    string
	serial atomic.Int64
}

// GenerateTLSCerts creates a self-signed CA and a server certificate valid
// for localhost, 127.0.0.1 and [::1].
func GenerateTLSCerts(t testing.TB) *TLSCerts {
	t.Helper()
	dir := t.TempDir()

	caKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("tlstest: generate CA key: %v", err)
	}

	caTemplate := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"DPSession Test CA"},
		},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	caDER, err := x509.CreateCertificate(rand.Reader, caTemplate, caTemplate, &caKey.PublicKey, caKey)
	if err != nil {
		t.Fatalf("tlstest: create CA cert: %v", err)
	}
	caCert, err := x509.ParseCertificate(caDER)
	if err != nil {
		t.Fatalf("tlstest: parse CA cert: %v", err)
	}

	caFile := filepath.Join(dir, "ca.pem")
	writePEM(t, caFile, "CERTIFICATE", caDER)

	pool := x509.NewCertPool()
	pool.AddCert(caCert)

	certs := &TLSCerts{
		CAFile:   caFile,
		CACert:   caCert,
		CAKey:    caKey,
		CertPool: pool,
		dir:      dir,
	}
	certs.serial.Store(1)

	certs.CertFile, certs.KeyFile, certs.ServerTLS = certs.issue(t, "server", &x509.Certificate{
		Subject: pkix.Name{
			Organization: []string{"DPSession Test"},
			CommonName:   "localhost",
		},
		DNSNames:    []string{"localhost"},
		IPAddresses: []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	})
	return certs
}

// ClientCert issues a client certificate with the given common name,
// signed by the generated CA.
func (c *TLSCerts) ClientCert(t testing.TB, commonName string) tls.Certificate {
	t.Helper()
	_, _, cert := c.issue(t, "client-"+commonName, &x509.Certificate{
		Subject: pkix.Name{
			Organization: []string{"DPSession Test"},
			CommonName:   commonName,
		},
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	})
	return cert
}

// ClientCertFiles issues a client certificate and returns its PEM file paths.
func (c *TLSCerts) ClientCertFiles(t testing.TB, commonName string) (certFile, keyFile string) {
	t.Helper()
	certFile, keyFile, _ = c.issue(t, "client-"+commonName, &x509.Certificate{
		Subject:     pkix.Name{CommonName: commonName},
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	})
	return certFile, keyFile
}

// NewClientAuthServer starts a TLS server that requests, but does not
// require, a client certificate. Use PeerCommonName in the handler to see
// what the client presented.
func NewClientAuthServer(t testing.TB, certs *TLSCerts, handler http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewUnstartedServer(handler)
	srv.TLS = &tls.Config{
		Certificates: []tls.Certificate{certs.ServerTLS},
		ClientAuth:   tls.VerifyClientCertIfGiven,
		ClientCAs:    certs.CertPool,
		MinVersion:   tls.VersionTLS12,
	}
	srv.StartTLS()
	t.Cleanup(srv.Close)
	return srv
}

// PeerCommonName returns the common name of the client certificate of r,
// or "" when the client presented none.
func PeerCommonName(r *http.Request) string {
	if r.TLS == nil || len(r.TLS.PeerCertificates) == 0 {
		return ""
	}
	return r.TLS.PeerCertificates[0].Subject.CommonName
}

// WriteInvalidPEM writes a file with content that looks like PEM but isn't a valid certificate.
func WriteInvalidPEM(t testing.TB, filename string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, filename)
	content := []byte("-----BEGIN CERTIFICATE-----\nnot-valid-base64-data\n-----END CERTIFICATE-----\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("tlstest: write invalid PEM: %v", err)
	}
	return path
}

func (c *TLSCerts) issue(t testing.TB, name string, template *x509.Certificate) (string, string, tls.Certificate) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("tlstest: generate %s key: %v", name, err)
	}

	template.SerialNumber = big.NewInt(c.serial.Add(1))
	template.NotBefore = time.Now().Add(-time.Hour)
	template.NotAfter = time.Now().Add(24 * time.Hour)
	template.KeyUsage = x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment

	der, err := x509.CreateCertificate(rand.Reader, template, c.CACert, &key.PublicKey, c.CAKey)
	if err != nil {
		t.Fatalf("tlstest: create %s cert: %v", name, err)
	}
	certFile := filepath.Join(c.dir, name+".pem")
	writePEM(t, certFile, "CERTIFICATE", der)

	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("tlstest: marshal %s key: %v", name, err)
	}
	keyFile := filepath.Join(c.dir, name+"-key.pem")
	writePEM(t, keyFile, "EC PRIVATE KEY", keyDER)

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		t.Fatalf("tlstest: load %s key pair: %v", name, err)
	}
	return certFile, keyFile, cert
}

func writePEM(t testing.TB, path, blockType string, data []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("tlstest: create %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := pem.Encode(f, &pem.Block{Type: blockType, Bytes: data}); err != nil {
		t.Fatalf("tlstest: encode PEM %s: %v", path, err)
	}
}
