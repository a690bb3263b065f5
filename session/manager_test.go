package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/BonEvil/DPSessionManager/component"
	"github.com/BonEvil/DPSessionManager/errors"
	"github.com/BonEvil/DPSessionManager/logger"
	"github.com/BonEvil/DPSessionManager/security"
	"github.com/BonEvil/DPSessionManager/security/tlstest"
	"github.com/BonEvil/DPSessionManager/service"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxConcurrent != 4 {
		t.Errorf("MaxConcurrent = %d, want 4", cfg.MaxConcurrent)
	}
	if cfg.MaxIdleConnsPerHost != cfg.MaxConcurrent {
		t.Errorf("MaxIdleConnsPerHost = %d, want %d", cfg.MaxIdleConnsPerHost, cfg.MaxConcurrent)
	}
	if cfg.DisableHTTP2 {
		t.Error("HTTP/2 should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "negative concurrency", modify: func(c *Config) { c.MaxConcurrent = -1 }},
		{name: "negative buffer", modify: func(c *Config) { c.DeliveryBuffer = -5 }},
		{name: "negative idle timeout", modify: func(c *Config) { c.IdleConnTimeout = -time.Second }},
		{name: "bad tls version", modify: func(c *Config) { c.TLS = &security.TLSConfig{MinVersion: 0x9999} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
			if _, err := New(cfg, WithLogger(logger.Nop())); err == nil {
				t.Error("New() should fail")
			}
		})
	}
}

func TestNew_ZeroConfig(t *testing.T) {
	m := newTestManager(t, Config{})
	if got := m.Config().MaxConcurrent; got != 4 {
		t.Errorf("MaxConcurrent = %d, want 4", got)
	}
	if m.Credential() != nil {
		t.Error("new manager should have no credential")
	}
}

func TestNew_HTTP2(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		wantH2 bool
	}{
		{name: "zero config", cfg: Config{}, wantH2: true},
		{name: "default config", cfg: DefaultConfig(), wantH2: true},
		{name: "disabled", cfg: Config{DisableHTTP2: true}, wantH2: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t, tt.cfg)
			tr, ok := m.client.Load().Transport.(*http.Transport)
			if !ok {
				t.Fatalf("Transport = %T, want *http.Transport", m.client.Load().Transport)
			}
			_, h2 := tr.TLSNextProto["h2"]
			if h2 != tt.wantH2 {
				t.Errorf("h2 registered = %t, want %t", h2, tt.wantH2)
			}
		})
	}
}

func TestNew_MissingCAFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TLS = &security.TLSConfig{CAFile: "/nonexistent/ca.pem"}
	if _, err := New(cfg, WithLogger(logger.Nop())); err == nil {
		t.Error("New() should fail when the CA file is missing")
	}
}

func TestHandleChallenge(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	cred := service.NewCredential(certs.ClientCert(t, "alice"))

	m := newTestManager(t, DefaultConfig())
	m.credential.Store(cred)

	tests := []struct {
		name      string
		challenge Challenge
		want      Disposition
		wantCred  *service.Credential
	}{
		{
			name:      "first client certificate",
			challenge: Challenge{Method: ChallengeClientCertificate},
			want:      UseCredential,
			wantCred:  cred,
		},
		{
			name:      "repeated client certificate",
			challenge: Challenge{Method: ChallengeClientCertificate, PreviousFailureCount: 1},
			want:      PerformDefaultHandling,
		},
		{
			name:      "basic",
			challenge: Challenge{Method: ChallengeHTTPBasic},
			want:      PerformDefaultHandling,
		},
		{
			name:      "other",
			challenge: Challenge{Method: ChallengeOther, Host: "example.com"},
			want:      PerformDefaultHandling,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotCred := m.HandleChallenge(tt.challenge)
			if got != tt.want {
				t.Errorf("disposition = %v, want %v", got, tt.want)
			}
			if gotCred != tt.wantCred {
				t.Errorf("credential = %p, want %p", gotCred, tt.wantCred)
			}
		})
	}
}

func TestChallengeMethod(t *testing.T) {
	tests := map[string]ChallengeMethod{
		`Basic realm="api"`:     ChallengeHTTPBasic,
		`digest realm="x"`:      ChallengeHTTPDigest,
		"Negotiate":             ChallengeNegotiate,
		"NTLM":                  ChallengeNegotiate,
		`Bearer realm="tokens"`: ChallengeOther,
	}
	for header, want := range tests {
		if got := challengeMethod(header); got != want {
			t.Errorf("challengeMethod(%q) = %q, want %q", header, got, want)
		}
	}
}

func newCertServer(t *testing.T) (*tlstest.TLSCerts, string) {
	t.Helper()
	certs := tlstest.GenerateTLSCerts(t)
	srv := tlstest.NewClientAuthServer(t, certs, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(w, "cn=%s", tlstest.PeerCommonName(r))
	}))
	return certs, srv.URL
}

func TestDispatch_ClientCertificateChallenge(t *testing.T) {
	certs, target := newCertServer(t)
	cfg := DefaultConfig()
	cfg.TLS = &security.TLSConfig{CAFile: certs.CAFile}
	m := newTestManager(t, cfg)

	cred := service.NewCredential(certs.ClientCert(t, "alice"))
	out := m.Do(context.Background(), &service.Descriptor{
		Method:     service.MethodGet,
		URL:        target,
		Accept:     service.AcceptText,
		Credential: cred,
	})
	if out.Err != nil {
		t.Fatalf("Err = %v", out.Err)
	}
	if out.Value != "cn=alice" {
		t.Errorf("Value = %#v, want %q", out.Value, "cn=alice")
	}
	if m.Credential() != cred {
		t.Error("credential should be remembered")
	}
}

func TestDispatch_NoCredentialDeclines(t *testing.T) {
	certs, target := newCertServer(t)
	cfg := DefaultConfig()
	cfg.TLS = &security.TLSConfig{CAFile: certs.CAFile}
	m := newTestManager(t, cfg)

	out := m.Do(context.Background(), &service.Descriptor{
		Method: service.MethodGet,
		URL:    target,
		Accept: service.AcceptText,
	})
	if out.Err != nil {
		t.Fatalf("Err = %v", out.Err)
	}
	if out.Value != "cn=" {
		t.Errorf("Value = %#v, want %q", out.Value, "cn=")
	}
}

func TestReset_ClearsCredential(t *testing.T) {
	certs, target := newCertServer(t)
	cfg := DefaultConfig()
	cfg.TLS = &security.TLSConfig{CAFile: certs.CAFile}
	m := newTestManager(t, cfg)

	first := m.Do(context.Background(), &service.Descriptor{
		Method:     service.MethodGet,
		URL:        target,
		Accept:     service.AcceptText,
		Credential: service.NewCredential(certs.ClientCert(t, "alice")),
	})
	if first.Value != "cn=alice" {
		t.Fatalf("first Value = %#v, err %v", first.Value, first.Err)
	}

	if err := m.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if m.Credential() != nil {
		t.Error("Reset should clear the credential")
	}

	second := m.Do(context.Background(), &service.Descriptor{
		Method: service.MethodGet,
		URL:    target,
		Accept: service.AcceptText,
	})
	if second.Value != "cn=" {
		t.Errorf("second Value = %#v, err %v", second.Value, second.Err)
	}
}

func TestCredential_LastWriteWins(t *testing.T) {
	srv := newRecorder(t, "application/json", http.StatusOK, `{}`)
	certs := tlstest.GenerateTLSCerts(t)
	alice := service.NewCredential(certs.ClientCert(t, "alice"))
	bob := service.NewCredential(certs.ClientCert(t, "bob"))
	m := newTestManager(t, DefaultConfig())

	for _, cred := range []*service.Credential{alice, bob} {
		m.Do(context.Background(), &service.Descriptor{
			Method:     service.MethodGet,
			URL:        srv.URL,
			Accept:     service.AcceptJSON,
			Credential: cred,
		})
	}
	m.Do(context.Background(), &service.Descriptor{Method: service.MethodGet, URL: srv.URL, Accept: service.AcceptJSON})

	if got := m.Credential(); got != bob {
		t.Errorf("Credential() = %p, want bob (%p)", got, bob)
	}
}

func TestClose(t *testing.T) {
	release := make(chan struct{})
	srv := newBlockingServer(t, release)
	m, err := New(DefaultConfig(), WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	f := m.Dispatch(context.Background(), &service.Descriptor{
		Method: service.MethodGet,
		URL:    srv,
		Accept: service.AcceptJSON,
	})

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := m.Close(short); !stderrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Close() with in-flight dispatch = %v, want deadline exceeded", err)
	}
	if !m.Closed() {
		t.Error("Closed() = false after Close")
	}

	after := m.Dispatch(context.Background(), &service.Descriptor{Method: service.MethodGet, URL: srv}).Outcome()
	if !stderrors.Is(after.Err, ErrClosed) {
		t.Errorf("dispatch after Close: Err = %v, want ErrClosed", after.Err)
	}

	close(release)
	if err := m.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	select {
	case <-f.Done():
	default:
		t.Fatal("in-flight dispatch not delivered before Close returned")
	}
	if out := f.Outcome(); out.Err != nil {
		t.Errorf("in-flight outcome Err = %v", out.Err)
	}
	if err := m.Close(context.Background()); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func newBlockingServer(t *testing.T, release <-chan struct{}) string {
	t.Helper()
	return newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{}`)
	}))
}

func TestComponent(t *testing.T) {
	c := NewComponent(DefaultConfig(), WithLogger(logger.Nop()))
	ctx := context.Background()

	if c.Name() != "session" {
		t.Errorf("Name() = %q", c.Name())
	}
	if h := c.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("Health before Start = %v", h.Status)
	}
	if c.Manager() != nil {
		t.Error("Manager() should be nil before Start")
	}

	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if c.Manager() == nil {
		t.Fatal("Manager() is nil after Start")
	}
	if h := c.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("Health after Start = %v", h.Status)
	}
	desc := c.Describe()
	if desc.Type != "session" || desc.Name != "dpsession" {
		t.Errorf("Describe() = %+v", desc)
	}

	if err := c.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if c.Manager() != nil {
		t.Error("Manager() should be nil after Stop")
	}
}

func TestComponent_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxConcurrent = -1
	c := NewComponent(cfg, WithLogger(logger.Nop()))
	if err := c.Start(context.Background()); err == nil {
		t.Error("Start() should fail")
	}
}

func TestOutcome_Kinds(t *testing.T) {
	ok := success("v", nil, 200)
	if !ok.OK() || ok.Kind != OutcomeSuccess {
		t.Errorf("success outcome = %+v", ok)
	}
	bad := failure(errors.NoData(), nil, 0)
	if bad.OK() || bad.Kind != errors.KindProtocol {
		t.Errorf("failure outcome = %+v", bad)
	}
	transport := failure(stderrors.New("dial tcp: refused"), nil, 0)
	if transport.Kind != errors.KindTransport {
		t.Errorf("transport Kind = %q", transport.Kind)
	}
}

func TestFuture_Wait(t *testing.T) {
	f := newFuture()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.Wait(ctx); !stderrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() on unresolved future = %v", err)
	}

	f.resolve(success(NoContent, nil, 204))
	out, err := f.Wait(context.Background())
	if err != nil || out.Value != NoContent {
		t.Errorf("Wait() = %+v, %v", out, err)
	}
}
