package security

import (
	"crypto/tls"
	"fmt"

	"golang.org/x/crypto/pkcs12"
)

// LoadKeyPair loads a PEM certificate and private key.
func LoadKeyPair(certFile, keyFile string) (tls.Certificate, error) {
	if certFile == "" || keyFile == "" {
		return tls.Certificate{}, fmt.Errorf("security/tls: both cert_file and key_file must be provided together")
	}
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("security/tls: failed to load client certificate: %w", err)
	}
	return cert, nil
}

// DecodePKCS12 decodes a PKCS#12 archive holding one certificate and its key.
func DecodePKCS12(data []byte, password string) (tls.Certificate, error) {
	key, cert, err := pkcs12.Decode(data, password)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("security/tls: failed to decode PKCS#12 data: %w", err)
	}
	return tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  key,
		Leaf:        cert,
	}, nil
}
