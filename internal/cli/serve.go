package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/soyeahso/kaiwa/internal/config"
	"github.com/soyeahso/kaiwa/internal/gateway"
	"github.com/soyeahso/kaiwa/internal/hooks"
	"github.com/soyeahso/kaiwa/internal/llm"
	"github.com/soyeahso/kaiwa/internal/scenario"
	"github.com/soyeahso/kaiwa/internal/store"
	"github.com/soyeahso/kaiwa/internal/tutor"
	"github.com/soyeahso/kaiwa/internal/voice"
	"github.com/spf13/cobra"
)

type serveFlags struct {
	port int
	bind string
}

func (f *serveFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.port, "port", 0, "override server port")
	cmd.Flags().StringVar(&f.bind, "bind", "", "override bind mode (loopback, lan, custom)")
}

// apply copies flag overrides into c.
func (f serveFlags) apply(c *config.Config) {
	if f.port != 0 {
		c.Server.Port = f.port
	}
	if f.bind != "" {
		c.Server.Bind = f.bind
	}
}

func newServeCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runServe(parent context.Context, flags serveFlags) error {
	c := cfg
	flags.apply(&c)

	issues := config.Validate(&c)
	if len(issues) > 0 {
		for _, issue := range issues {
			log.Error().Str("path", issue.Path).Msg(issue.Message)
		}
		return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
	}

	client, err := llm.NewClient(c.OpenAI, log)
	if err != nil {
		return err
	}

	sessions := store.NewConversationStore(log)
	orchestrator := voice.New(client, voice.ConfigFrom(c.OpenAI), log)
	runner := tutor.NewRunner(sessions, orchestrator, log)

	log.Info().
		Int("scenarios", len(scenario.List())).
		Str("default", scenario.Default().ID).
		Msg("scenario catalog loaded")

	events := hooks.NewManager(log)
	events.OnAll("audit", hooks.AuditHandler(log))

	srv := gateway.New(c.Server, sessions, log,
		gateway.WithRunner(runner),
		gateway.WithProvider(client.Name()),
		gateway.WithHooks(events),
	)

	if parent == nil {
		parent = context.Background()
	}
	// Block until SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
