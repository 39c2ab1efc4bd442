package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/NexBuild-Agency/ops-app-mobile/client"
	"github.com/NexBuild-Agency/ops-app-mobile/devmode"
	"github.com/NexBuild-Agency/ops-app-mobile/internal/config"
)

type rootOptions struct {
	apiURL  string
	token   string
	dev     bool
	timeout time.Duration
	debug   bool
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cfg, err := client.LoadConfig()
	if err != nil {
		cfg = client.Config{BaseURL: client.DefaultBaseURL, Timeout: client.DefaultTimeout}
	}

	rootCmd := &cobra.Command{
		Use:           "opsctl",
		Short:         "opsctl issues requests against the ops app API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.InitLoggerTo(cmd.ErrOrStderr())
			if opts.debug {
				config.SetLogLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				config.SetLogLevel(config.LevelFromEnv())
			}
			if opts.dev && opts.token != "" {
				return fmt.Errorf("--dev and --token cannot be used together")
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", cfg.BaseURL, "Base URL of the API (env EXPO_PUBLIC_API_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", "", "Bearer token sent as the Authorization header")
	rootCmd.PersistentFlags().BoolVar(&opts.dev, "dev", false, "Sign in with the development token")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", cfg.Timeout, "Per-attempt timeout (env API_TIMEOUT)")
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", cfg.Debug, "Enable verbose debug output and wire dumps")

	rootCmd.AddCommand(newRequestCmd(opts))
	rootCmd.AddCommand(newVerbCmd(opts, http.MethodGet, "get PATH", "Send a GET request", false))
	rootCmd.AddCommand(newVerbCmd(opts, http.MethodPost, "post PATH", "Send a POST request with a JSON body", true))
	rootCmd.AddCommand(newVerbCmd(opts, http.MethodDelete, "delete PATH", "Send a DELETE request", false))

	return rootCmd
}

// newClient builds the API client and signs it in when a token is given.
func newClient(opts *rootOptions) (*client.Client, error) {
	c, err := client.New(opts.apiURL,
		client.WithHTTPTimeout(opts.timeout),
		client.WithDebugLogging(opts.debug),
	)
	if err != nil {
		return nil, err
	}
	switch {
	case opts.dev:
		c.SetAuthHeader(devmode.Token)
	case opts.token != "":
		c.SetAuthHeader(opts.token)
	}
	return c, nil
}

func newRequestCmd(opts *rootOptions) *cobra.Command {
	var data string
	var headers []string

	cmd := &cobra.Command{
		Use:   "request METHOD PATH",
		Short: "Send a request with any method",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := parseHeaders(headers)
			if err != nil {
				return err
			}
			return run(cmd, opts, strings.ToUpper(args[0]), args[1], data, h)
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "JSON request body")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra header as 'Name: value' (repeatable)")
	return cmd
}

func newVerbCmd(opts *rootOptions, method, use, short string, withBody bool) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, method, args[0], data, nil)
		},
	}

	if withBody {
		cmd.Flags().StringVar(&data, "data", "", "JSON request body (required)")
		_ = cmd.MarkFlagRequired("data")
	}
	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions, method, path, data string, headers http.Header) error {
	req := client.Request{Method: method, Path: path, Header: headers}
	if data != "" {
		if !json.Valid([]byte(data)) {
			return fmt.Errorf("--data is not valid JSON")
		}
		req.Body = json.RawMessage(data)
	}

	c, err := newClient(opts)
	if err != nil {
		return err
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Str("api_url", opts.apiURL).
		Msg("sending request")

	start := time.Now()
	resp, err := c.Do(cmd.Context(), req)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Int("attempts", resp.Attempts).
		Dur("elapsed", elapsed).
		Msg("request completed")

	return writeResponse(cmd.OutOrStdout(), resp)
}

func writeResponse(w io.Writer, resp *client.Response) error {
	if _, err := fmt.Fprintf(w, "HTTP %d\n", resp.StatusCode); err != nil {
		return err
	}
	if len(resp.Body) == 0 {
		return nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, resp.Body, "", "  "); err == nil {
		_, err = fmt.Fprintln(w, pretty.String())
		return err
	}
	_, err := fmt.Fprintln(w, string(resp.Body))
	return err
}

func parseHeaders(raw []string) (http.Header, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	h := make(http.Header, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, want 'Name: value'", kv)
		}
		h.Add(name, strings.TrimSpace(value))
	}
	return h, nil
}
