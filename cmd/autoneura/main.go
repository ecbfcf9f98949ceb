package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/autoneura/console/internal/api"
	"github.com/autoneura/console/internal/config"
	"github.com/autoneura/console/internal/dashboard"
	"github.com/autoneura/console/internal/lifecycle"
	"github.com/autoneura/console/internal/metrics"
	"github.com/autoneura/console/internal/phone"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for the campaign console.
type CLI struct {
	Version   kong.VersionFlag `help:"Show version." short:"V"`
	Dashboard DashboardCmd     `cmd:"" default:"1" help:"Open the interactive campaign console TUI."`
	Campaigns CampaignsCmd     `cmd:"" help:"List campaigns with KPI totals (plain text)."`
	Stats     StatsCmd         `cmd:"" help:"Print the server-computed dashboard rollup."`
	Chat      ChatCmd          `cmd:"" help:"Send one message to the stage-appropriate assistant."`
}

// DashboardCmd opens the interactive TUI.
type DashboardCmd struct{}

// CampaignsCmd prints the campaign list for scripts and non-TTY use.
type CampaignsCmd struct{}

// StatsCmd prints the server-side KPI rollup.
type StatsCmd struct{}

// ChatCmd sends a single chat message and prints the reply.
type ChatCmd struct {
	Message []string `arg:"" help:"Message text."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/autoneura/config.yaml"),
		".autoneura/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds the backend client from config.
func newClient(cfg *config.Config) (*api.Client, error) {
	return api.NewClient(cfg.Server.BaseURL, cfg.Server.Timeout)
}

// Run executes the dashboard command.
func (d *DashboardCmd) Run() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("dashboard: requires a terminal (TTY)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	client, err := newClient(cfg)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	m := dashboard.NewModel(dashboard.Deps{
		Lister:   client,
		Resolver: client,
		Writer:   client,
		Chatter:  client,
		Phone:    phone.NewInternational(cfg.Phone.DefaultRegion),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// Run executes the campaigns command.
func (c *CampaignsCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("campaigns: %w", err)
	}
	client, err := newClient(cfg)
	if err != nil {
		return fmt.Errorf("campaigns: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return printCampaigns(ctx, os.Stdout, client)
}

// printCampaigns fetches the campaign list and writes the plain-text
// table with KPI totals, enabling testable wiring.
func printCampaigns(ctx context.Context, w io.Writer, lister dashboard.CampaignLister) error {
	campaigns, err := lister.ListCampaigns(ctx)
	if err != nil {
		return fmt.Errorf("campaigns: %w", err)
	}

	if len(campaigns) == 0 {
		fmt.Fprintln(w, "No campaigns yet.")
		return nil
	}

	for _, c := range campaigns {
		created := c.CreatedAt
		if created == "" {
			created = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d prospects\t%d leads\n",
			c.Name, created, c.Status, c.Prospects, c.Leads)
	}

	k := metrics.Aggregate(campaigns)
	fmt.Fprintf(w, "\nTotal: %d prospects, %d leads, %s conversion\n",
		k.Prospects, k.Leads, k.FormatRate())
	return nil
}

// Run executes the stats command.
func (s *StatsCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	client, err := newClient(cfg)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	data, err := client.Dashboard(ctx)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	printStats(os.Stdout, data)
	return nil
}

// printStats writes the rollup the server computed; its numbers are taken
// as delivered, not recomputed client-side.
func printStats(w io.Writer, data api.DashboardData) {
	fmt.Fprintf(w, "Prospects: %d\nQualified: %d\nConversion: %s\n",
		data.KPIs.Total, data.KPIs.Qualified, data.KPIs.Rate)
	if len(data.Campaigns) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, c := range data.Campaigns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d prospects\t%d qualified\n",
			c.Name, c.Date, c.Status, c.Prospects, c.Qualified)
	}
}

// Run executes the chat command: classify the user's stage from the
// current snapshot, then route the message to the matching assistant.
func (c *ChatCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	client, err := newClient(cfg)
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	message := strings.Join(c.Message, " ")
	reply, err := sendChat(ctx, client, client, message)
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	fmt.Println(reply)
	return nil
}

// sendChat picks the assistant endpoint from the user's lifecycle stage
// and forwards the message. A list failure falls back to the analyst
// rather than refusing to chat.
func sendChat(ctx context.Context, lister dashboard.CampaignLister, sender dashboard.ChatSender, message string) (string, error) {
	stage := lifecycle.StageEstablished
	if campaigns, err := lister.ListCampaigns(ctx); err == nil {
		stage = lifecycle.Classify(campaigns)
	}
	return sender.Chat(ctx, stage.ChatPath(), message)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("autoneura"),
		kong.Description("Terminal console for the AutoNeura campaign dashboard."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
