// Package security builds the TLS settings of the dispatcher's connection
// pool and loads client credentials.
//
// Server verification is static configuration (TLSConfig). The client
// certificate is not: it is chosen when a server requests one, through the
// ClientCertificateFunc passed to Build.
//
//	cfg := security.TLSConfig{CAFile: "/path/to/ca.pem"}
//	tlsConfig, err := cfg.Build(func(*tls.CertificateRequestInfo) (*tls.Certificate, error) {
//	    return &cert, nil
//	})
package security
