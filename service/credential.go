package service

import (
	"crypto/tls"
	"crypto/x509"

	"github.com/BonEvil/DPSessionManager/security"
)

// Credential is a client certificate offered when a server asks the client
// to authenticate with one.
type Credential struct {
	cert tls.Certificate
}

// NewCredential wraps a loaded certificate.
func NewCredential(cert tls.Certificate) *Credential {
	return &Credential{cert: cert}
}

// LoadX509Credential loads a credential from PEM certificate and key files.
func LoadX509Credential(certFile, keyFile string) (*Credential, error) {
	cert, err := security.LoadKeyPair(certFile, keyFile)
	if err != nil {
		return nil, err
	}
	return NewCredential(cert), nil
}

// LoadPKCS12Credential loads a credential from a PKCS#12 archive.
func LoadPKCS12Credential(data []byte, password string) (*Credential, error) {
	cert, err := security.DecodePKCS12(data, password)
	if err != nil {
		return nil, err
	}
	return NewCredential(cert), nil
}

// Certificate returns the certificate to present during a TLS handshake.
func (c *Credential) Certificate() *tls.Certificate {
	return &c.cert
}

// Subject returns the common name of the leaf certificate, or "" when it
// cannot be determined.
func (c *Credential) Subject() string {
	leaf := c.cert.Leaf
	if leaf == nil {
		if len(c.cert.Certificate) == 0 {
			return ""
		}
		parsed, err := x509.ParseCertificate(c.cert.Certificate[0])
		if err != nil {
			return ""
		}
		leaf = parsed
	}
	return leaf.Subject.CommonName
}
