package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/soyeahso/kaiwa/internal/config"
	"github.com/soyeahso/kaiwa/internal/gateway"
	"github.com/soyeahso/kaiwa/internal/scenario"
	"github.com/soyeahso/kaiwa/internal/version"
	"github.com/spf13/cobra"
)

const probeTimeout = 2 * time.Second

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show kaiwa-server status and configuration summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printStatus(cmd.Context(), cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func printStatus(ctx context.Context, out io.Writer, c config.Config) {
	fmt.Fprintf(out, "%s\n\n", version.Info("kaiwa-server"))

	fmt.Fprintf(out, "Config:    %s\n", paths.Config)
	fmt.Fprintf(out, "Home:      %s\n", paths.Base)
	fmt.Fprintln(out)

	origins := "*"
	if !c.Server.AllowsAnyOrigin() {
		origins = strings.Join(c.Server.AllowedOrigins, ",")
	}
	fmt.Fprintf(out, "Server:    port=%d bind=%s origins=%s maxUpload=%d\n",
		c.Server.Port, c.Server.Bind, origins, c.Server.MaxUploadBytes)

	key := "unset"
	if c.OpenAI.APIKey != "" {
		key = "set"
	}
	fmt.Fprintf(out, "Provider:  %s model=%s transcription=%s voice=%s format=%s apiKey=%s\n",
		c.OpenAI.Provider, c.OpenAI.ConversationModel, c.OpenAI.TranscriptionModel,
		c.OpenAI.Voice, c.OpenAI.ResponseFormat, key)

	ids := make([]string, 0, len(scenario.List()))
	for _, s := range scenario.List() {
		ids = append(ids, s.ID)
	}
	fmt.Fprintf(out, "Scenarios: %s\n", strings.Join(ids, ", "))

	if health, err := probeHealth(ctx, c.Server); err != nil {
		fmt.Fprintf(out, "Running:   no (%v)\n", err)
	} else {
		fmt.Fprintf(out, "Running:   yes (status %s)\n", health.Status)
	}

	if issues := config.Validate(&c); len(issues) > 0 {
		fmt.Fprintf(out, "\nValidation issues (%d):\n", len(issues))
		for _, issue := range issues {
			fmt.Fprintf(out, "  - %s: %s\n", issue.Path, issue.Message)
		}
	}
}

// probeHealth asks a server listening on the configured address for its
// health document.
func probeHealth(ctx context.Context, sc config.ServerConfig) (gateway.HealthResponse, error) {
	var health gateway.HealthResponse
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	host := "127.0.0.1"
	if sc.Bind == "custom" && sc.CustomBindHost != "" {
		host = sc.CustomBindHost
	}
	url := "http://" + net.JoinHostPort(host, strconv.Itoa(sc.Port)) + "/health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return health, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return health, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return health, fmt.Errorf("health returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return health, err
	}
	if err := sonic.Unmarshal(body, &health); err != nil {
		return health, fmt.Errorf("decode health: %w", err)
	}
	return health, nil
}
