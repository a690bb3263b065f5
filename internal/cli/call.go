package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/BonEvil/DPSessionManager/bootstrap"
	"github.com/BonEvil/DPSessionManager/observability"
	"github.com/BonEvil/DPSessionManager/service"
	"github.com/BonEvil/DPSessionManager/session"
)

type callOptions struct {
	configPath string
	file       string

	method            string
	url               string
	contentType       string
	accept            string
	customContentType string
	customAccept      string
	timeout           time.Duration
	params            []string
	headers           []string
	data              string
	output            string

	certFile    string
	keyFile     string
	p12File     string
	p12Password string
}

func newCallCommand() *cobra.Command {
	o := &callOptions{}
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Dispatch one HTTP call and print the parsed response",
		Long: `Dispatch one HTTP call described by flags or by a YAML descriptor file.
Flags given together with --file override the file's values.

Example:
  dpsession call --method post --url https://api.example.com/login \
      --content-type form --accept json --param user=alice --param pass=secret
  dpsession call --file login.yaml --header X-Trace=1`,
		Args: cobra.NoArgs,
		RunE: o.run,
	}

	o.bindFlags(cmd.Flags())
	cmd.MarkFlagsRequiredTogether("cert", "key")
	cmd.MarkFlagsMutuallyExclusive("cert", "p12")
	return cmd
}

func (o *callOptions) bindFlags(f *pflag.FlagSet) {
	f.StringVarP(&o.configPath, "config", "c", "", "Path to configuration file")
	f.StringVarP(&o.file, "file", "f", "", "Path to a YAML descriptor")
	f.StringVarP(&o.method, "method", "X", "get", "HTTP method (get, post, put, delete, head)")
	f.StringVarP(&o.url, "url", "u", "", "Request URL")
	f.StringVar(&o.contentType, "content-type", "none", "Request format (xml, json, form, none)")
	f.StringVar(&o.accept, "accept", "json", "Expected response format (xml, json, html, text, javascript, none)")
	f.StringVar(&o.customContentType, "custom-content-type", "", "Content-Type header sent instead of the request format's")
	f.StringVar(&o.customAccept, "custom-accept", "", "Accept header sent and required instead of the response format's")
	f.DurationVarP(&o.timeout, "timeout", "t", 0, "Request timeout (0 means none)")
	f.StringArrayVarP(&o.params, "param", "p", nil, "Request parameter key=value (repeatable)")
	f.StringArrayVarP(&o.headers, "header", "H", nil, "Request header key=value (repeatable)")
	f.StringVarP(&o.data, "data", "d", "", "Request parameters as a JSON object")
	f.StringVarP(&o.output, "output", "o", outputText, "Output format (text, json)")
	f.StringVar(&o.certFile, "cert", "", "Client certificate PEM file")
	f.StringVar(&o.keyFile, "key", "", "Client key PEM file")
	f.StringVar(&o.p12File, "p12", "", "Client credential PKCS#12 file")
	f.StringVar(&o.p12Password, "p12-password", "", "PKCS#12 password")
}

func (o *callOptions) run(cmd *cobra.Command, _ []string) error {
	if o.output != outputText && o.output != outputJSON {
		return fmt.Errorf("invalid --output %q: expected %s or %s", o.output, outputText, outputJSON)
	}
	d, err := o.descriptor(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	sess := session.NewComponent(cfg.Session, session.WithLogger(app.Logger.WithComponent("session")))
	if err := app.RegisterComponent(observability.NewTelemetry(cfg.Observability)); err != nil {
		return err
	}
	if err := app.RegisterComponent(sess); err != nil {
		return err
	}

	return app.RunTask(cmd.Context(), func(ctx context.Context) error {
		return printOutcome(cmd.OutOrStdout(), o.output, sess.Manager().Do(ctx, d))
	})
}

// descriptor builds the call from --file, overridden by any flag given
// explicitly, or from the flags alone.
func (o *callOptions) descriptor(flags *pflag.FlagSet) (*service.Descriptor, error) {
	d := &service.Descriptor{}
	if o.file != "" {
		loaded, err := service.LoadDescriptor(o.file)
		if err != nil {
			return nil, err
		}
		d = loaded
	}
	use := func(name string) bool { return o.file == "" || flags.Changed(name) }

	var err error
	if use("method") {
		if d.Method, err = service.ParseMethod(o.method); err != nil {
			return nil, err
		}
	}
	if use("url") {
		d.URL = o.url
	}
	if use("content-type") {
		if d.ContentType, err = service.ParseContentType(o.contentType); err != nil {
			return nil, err
		}
	}
	if use("accept") {
		if d.Accept, err = service.ParseAcceptType(o.accept); err != nil {
			return nil, err
		}
	}
	if flags.Changed("custom-content-type") {
		d.CustomContentType = &o.customContentType
	}
	if flags.Changed("custom-accept") {
		d.CustomAccept = &o.customAccept
	}
	if use("timeout") {
		d.Timeout = o.timeout
	}

	if err := o.mergeParams(d); err != nil {
		return nil, err
	}
	if len(o.headers) > 0 {
		headers, err := parsePairs("header", o.headers)
		if err != nil {
			return nil, err
		}
		merged := make(map[string]string, len(d.Headers)+len(headers))
		for k, v := range d.Headers {
			merged[k] = v
		}
		for k, v := range headers {
			merged[k] = v
		}
		d.Headers = merged
	}

	cred, err := o.credential()
	if err != nil {
		return nil, err
	}
	if cred != nil {
		d.Credential = cred
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// mergeParams layers --data and then --param over the file's parameters.
func (o *callOptions) mergeParams(d *service.Descriptor) error {
	if o.data == "" && len(o.params) == 0 {
		return nil
	}
	params := d.Params.Clone()
	if params == nil {
		params = service.Params{}
	}
	if o.data != "" {
		var v service.Value
		if err := json.Unmarshal([]byte(o.data), &v); err != nil {
			return fmt.Errorf("invalid --data: %w", err)
		}
		m, ok := v.AsMap()
		if !ok {
			return fmt.Errorf("invalid --data: expected a JSON object, got %s", v.Kind())
		}
		for k, item := range m {
			params[k] = item
		}
	}
	pairs, err := parsePairs("param", o.params)
	if err != nil {
		return err
	}
	for k, v := range pairs {
		params[k] = service.String(v)
	}
	d.Params = params
	return nil
}

func (o *callOptions) credential() (*service.Credential, error) {
	switch {
	case o.p12File != "":
		data, err := os.ReadFile(o.p12File)
		if err != nil {
			return nil, fmt.Errorf("read credential: %w", err)
		}
		return service.LoadPKCS12Credential(data, o.p12Password)
	case o.certFile != "":
		return service.LoadX509Credential(o.certFile, o.keyFile)
	default:
		return nil, nil
	}
}

// parsePairs splits key=value flag values. The value may contain '='.
func parsePairs(flag string, values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, kv := range values {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --%s %q: expected key=value", flag, kv)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}
