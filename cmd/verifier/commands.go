package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumenstage/verifier/internal/agent"
	"github.com/lumenstage/verifier/internal/checks"
	"github.com/lumenstage/verifier/internal/config"
	"github.com/lumenstage/verifier/internal/domain"
	"github.com/lumenstage/verifier/internal/manifest"
	"github.com/lumenstage/verifier/internal/notify"
	"github.com/lumenstage/verifier/internal/observer"
	"github.com/lumenstage/verifier/internal/orchestrator"
	"github.com/lumenstage/verifier/internal/render"
	"github.com/lumenstage/verifier/internal/reportstore"
	"github.com/lumenstage/verifier/internal/schedule"
	"github.com/lumenstage/verifier/internal/watchdog"
	"github.com/lumenstage/verifier/web/api"
)

var (
	runPhases      []string
	runParallel    bool
	runProject     string
	runConcurrency int
	servePort      int
	historyLimit   int
)

func init() {
	// run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a verification commission",
		RunE:  runRun,
	}
	runCmd.Flags().StringSliceVar(&runPhases, "phases", nil, "run only these phases")
	runCmd.Flags().BoolVar(&runParallel, "parallel", false, "run phases concurrently")
	runCmd.Flags().StringVar(&runProject, "project", "", "project root to verify")
	runCmd.Flags().IntVar(&runConcurrency, "max-concurrency", 0, "max concurrent agents per phase")
	rootCmd.AddCommand(runCmd)

	// quick command
	quickCmd := &cobra.Command{
		Use:   "quick",
		Short: "Run a quick health check",
		RunE:  runQuick,
	}
	quickCmd.Flags().StringVar(&runProject, "project", "", "project root to verify")
	rootCmd.AddCommand(quickCmd)

	// phases command
	phasesCmd := &cobra.Command{
		Use:   "phases",
		Short: "List pipeline phases",
		RunE:  runListPhases,
	}
	rootCmd.AddCommand(phasesCmd)

	// checks command
	checksCmd := &cobra.Command{
		Use:   "checks",
		Short: "List the built-in check catalog",
		RunE:  runListChecks,
	}
	rootCmd.AddCommand(checksCmd)

	// history command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent commission runs",
		RunE:  runHistory,
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)

	// serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the status web server",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on")
	rootCmd.AddCommand(serveCmd)

	// watch command
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the project and health-check on change",
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&runProject, "project", "", "project root to watch")
	rootCmd.AddCommand(watchCmd)

	// schedule command
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run configured schedules",
		RunE:  runSchedule,
	}
	rootCmd.AddCommand(scheduleCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

// buildOrchestrator assembles the pipeline: the built-in catalog by default,
// or the manifest's phases when one is configured.
func buildOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, error) {
	reg := checks.NewRegistry()

	var phases []*orchestrator.Phase
	if cfg.General.ManifestPath != "" {
		m, err := manifest.Load(config.ExpandPath(cfg.General.ManifestPath))
		if err != nil {
			return nil, fmt.Errorf("loading manifest: %w", err)
		}
		phases = m.BuildPhases(reg)
	} else {
		phases = checks.BuildPhases(reg)
	}

	maxConcurrency := cfg.General.MaxConcurrency
	if runConcurrency > 0 {
		maxConcurrency = runConcurrency
	}

	project := cfg.General.ProjectRoot
	if runProject != "" {
		project = runProject
	}

	return orchestrator.New(orchestrator.Config{
		ProjectPath:    project,
		MaxConcurrency: maxConcurrency,
		ParallelPhases: cfg.Phases.Parallel || runParallel,
	}, phases...), nil
}

func allAgents(phases []*orchestrator.Phase) []*agent.Agent {
	var out []*agent.Agent
	for _, p := range phases {
		if p.Coordinator != nil {
			out = append(out, p.Coordinator.Agents()...)
		}
	}
	return out
}

func buildNotifier(cfg *config.Config) notify.Notifier {
	notifiers := []notify.Notifier{notify.NewDesktopNotifier(cfg.Notifications.Desktop)}
	if cfg.Notifications.SlackWebhook != "" {
		notifiers = append(notifiers, notify.NewSlackNotifier(cfg.Notifications.SlackWebhook))
	}
	return notify.NewMultiNotifier(notifiers...)
}

// saveReport persists the commission to the database and writes a JSON copy
// under the report directory. Persistence failures are logged, not fatal:
// the run already happened and its result is on stdout.
func saveReport(cfg *config.Config, report *domain.CommissionReport) {
	store, err := reportstore.New(config.ExpandPath(cfg.General.DatabasePath))
	if err != nil {
		log.Printf("opening report store: %v", err)
	} else {
		defer store.Close()
		if err := store.SaveReport(report); err != nil {
			log.Printf("saving report: %v", err)
		}
	}

	dir := config.ExpandPath(cfg.General.ReportDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("creating report dir: %v", err)
		return
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Printf("encoding report: %v", err)
		return
	}
	path := filepath.Join(dir, report.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("writing report file: %v", err)
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	collector := observer.NewCollector()
	collector.WatchAll(allAgents(orch.Phases()))

	report := orch.RunCommission(context.Background(), nil, runPhases)

	fmt.Println(render.Commission(report))

	metrics := collector.Metrics()
	log.Printf("agents: %d completed, %d failed, avg %s",
		metrics.TotalCompleted, metrics.TotalFailed, metrics.AvgDuration.Round(time.Millisecond))

	saveReport(cfg, report)

	if err := buildNotifier(cfg).Send(notify.FromReport(report)); err != nil {
		log.Printf("sending notification: %v", err)
	}

	if report.OverallResult != "PASSED" {
		return fmt.Errorf("commission %s: %s", report.ID, report.OverallResult)
	}
	return nil
}

func runQuick(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	result := orch.RunQuickCheck(context.Background(), nil)
	fmt.Println(render.QuickCheck(result))

	if result.Status != "healthy" {
		return fmt.Errorf("project is unhealthy")
	}
	return nil
}

func runListPhases(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tPHASE\tREQUIRED\tDEPENDS ON\tAGENTS")
	for _, p := range orch.Phases() {
		depends := "-"
		if len(p.DependsOn) > 0 {
			depends = fmt.Sprintf("%v", p.DependsOn)
		}
		agents := 0
		if p.Coordinator != nil {
			agents = len(p.Coordinator.Agents())
		}
		fmt.Fprintf(w, "%d\t%s\t%t\t%s\t%d\n", p.Order, p.Name, p.Required, depends, agents)
	}
	w.Flush()

	return nil
}

func runListChecks(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tPHASE\tPRIORITY\tTIMEOUT")
	for _, def := range checks.Catalog() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", def.Type, def.Name, def.Phase, def.Priority, def.Timeout)
	}
	w.Flush()

	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := reportstore.New(config.ExpandPath(cfg.General.DatabasePath))
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRecent(historyLimit)
	if err != nil {
		return err
	}
	fmt.Println(render.History(runs))

	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	store, err := reportstore.New(config.ExpandPath(cfg.General.DatabasePath))
	if err != nil {
		return err
	}
	defer store.Close()

	port := servePort
	if port == 0 {
		port = cfg.Web.Port
	}

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, port)
	server := api.NewServer(store, orch.Phases(), addr)
	server.SetQuickChecker(orch)

	// Stream agent status transitions to websocket clients.
	for _, a := range allAgents(orch.Phases()) {
		a.Subscribe(func(a *agent.Agent, old, next domain.AgentStatus) {
			server.Broadcast(api.Event{Type: "agent_status", Data: map[string]string{
				"agent":  a.ID,
				"status": string(next),
			}})
		})
	}

	fmt.Printf("Status server listening at http://%s\n", addr)
	return server.Start()
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	project := cfg.General.ProjectRoot
	if runProject != "" {
		project = runProject
	}
	if project == "" {
		return fmt.Errorf("project_root not configured")
	}

	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond

	watcher, err := watchdog.New(debounce, func(changed []string) {
		log.Printf("%d files changed, running health check", len(changed))
		result := orch.RunQuickCheck(context.Background(), nil)
		fmt.Println(render.QuickCheck(result))
	})
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.AddRoot(project); err != nil {
		return err
	}
	watcher.Start()

	fmt.Printf("Watching %s\n", project)
	waitForInterrupt()
	return nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Schedules) == 0 {
		return fmt.Errorf("no schedules configured")
	}

	sched, err := schedule.NewScheduler(cfg.Schedules)
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	go sched.Start(func(sc config.ScheduleConfig) error {
		if sc.QuickCheck {
			result := orch.RunQuickCheck(context.Background(), nil)
			log.Printf("schedule %s: quick check %s", sc.Name, result.Status)
			return nil
		}
		report := orch.RunCommission(context.Background(), nil, sc.Phases)
		saveReport(cfg, report)
		log.Printf("schedule %s: commission %s %s", sc.Name, report.ID, report.OverallResult)
		return nil
	})
	defer sched.Stop()

	fmt.Printf("Scheduler running with %d schedule(s)\n", len(cfg.Schedules))
	waitForInterrupt()
	return nil
}

func waitForInterrupt() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
}
