package session

import (
	"crypto/tls"
	"net/http"
	"strings"

	"github.com/BonEvil/DPSessionManager/logger"
	"github.com/BonEvil/DPSessionManager/service"
)

// ChallengeMethod names how a server asked the client to authenticate.
type ChallengeMethod string

const (
	ChallengeClientCertificate ChallengeMethod = "client_certificate"
	ChallengeHTTPBasic         ChallengeMethod = "http_basic"
	ChallengeHTTPDigest        ChallengeMethod = "http_digest"
	ChallengeNegotiate         ChallengeMethod = "negotiate"
	ChallengeOther             ChallengeMethod = "other"
)

// Challenge is an authentication request received during a dispatch.
type Challenge struct {
	Method ChallengeMethod
	// Host is the server that issued the challenge.
	Host string
	// PreviousFailureCount is how many times this challenge was already
	// answered without success.
	PreviousFailureCount int
}

// Disposition is the answer to a challenge.
type Disposition int

const (
	// PerformDefaultHandling declines to supply a credential explicitly.
	PerformDefaultHandling Disposition = iota
	// UseCredential answers with the returned credential.
	UseCredential
)

// String returns the disposition name.
func (d Disposition) String() string {
	if d == UseCredential {
		return "use_credential"
	}
	return "default"
}

// HandleChallenge decides how to answer c. Only a first client-certificate
// challenge is answered, with the remembered credential, which may be nil.
func (m *Manager) HandleChallenge(c Challenge) (Disposition, *service.Credential) {
	if c.PreviousFailureCount == 0 && c.Method == ChallengeClientCertificate {
		return UseCredential, m.credential.Load()
	}
	return PerformDefaultHandling, nil
}

// Credential returns the remembered credential, or nil.
func (m *Manager) Credential() *service.Credential {
	return m.credential.Load()
}

// clientCertificate answers a TLS CertificateRequest from the pool. An
// empty certificate declines.
func (m *Manager) clientCertificate(info *tls.CertificateRequestInfo) (*tls.Certificate, error) {
	c := Challenge{Method: ChallengeClientCertificate}
	disposition, cred := m.HandleChallenge(c)
	fields := logger.Fields(
		logger.FieldChallenge, string(c.Method),
		"acceptable_cas", len(info.AcceptableCAs),
		"disposition", disposition.String(),
	)
	if disposition == UseCredential && cred != nil {
		fields["subject"] = cred.Subject()
		m.log.Debug("answering client certificate request", fields)
		return cred.Certificate(), nil
	}
	m.log.Debug("declining client certificate request", fields)
	return &tls.Certificate{}, nil
}

// observeHTTPChallenge reports a 401 challenge to HandleChallenge. These
// always receive default handling, so the response passes through.
func (m *Manager) observeHTTPChallenge(log *logger.Logger, resp *http.Response) {
	if resp.StatusCode != http.StatusUnauthorized {
		return
	}
	for _, h := range resp.Header.Values("WWW-Authenticate") {
		c := Challenge{Method: challengeMethod(h)}
		if resp.Request != nil && resp.Request.URL != nil {
			c.Host = resp.Request.URL.Host
		}
		disposition, _ := m.HandleChallenge(c)
		log.Debug("authentication challenge received", logger.Fields(
			logger.FieldChallenge, string(c.Method),
			"host", c.Host,
			"disposition", disposition.String(),
		))
	}
}

func challengeMethod(header string) ChallengeMethod {
	scheme, _, _ := strings.Cut(strings.TrimSpace(header), " ")
	switch strings.ToLower(scheme) {
	case "basic":
		return ChallengeHTTPBasic
	case "digest":
		return ChallengeHTTPDigest
	case "negotiate", "ntlm":
		return ChallengeNegotiate
	default:
		return ChallengeOther
	}
}
