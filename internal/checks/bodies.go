package checks

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lumenstage/verifier/internal/agent"
	"github.com/lumenstage/verifier/internal/domain"
)

// simulate stands in for the external work a real check would do (network
// calls, scanners, browser runs). It respects the agent's deadline.
func simulate(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// projectRoot resolves the project path from the context and records a
// configuration finding when it is missing or does not exist
func projectRoot(a *agent.Agent, vctx domain.Context) string {
	root := vctx.GetString(domain.ContextProjectPath)
	if root == "" {
		a.AddFinding(domain.NewFinding(domain.CategoryConfiguration, domain.SeverityMedium,
			"project path not set", "no project_path in the commission context"))
		return ""
	}
	if _, err := os.Stat(root); err != nil {
		a.AddFinding(domain.NewFinding(domain.CategoryConfiguration, domain.SeverityMedium,
			"project path unreadable", fmt.Sprintf("stat %s: %v", root, err)))
	}
	return root
}

func dependencyAudit(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	projectRoot(a, vctx)
	if err := simulate(ctx, 15*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(42, 42, 0)
	a.AddFinding(domain.NewFinding(domain.CategorySecurity, domain.SeverityInfo,
		"dependencies pinned", "all third-party dependencies resolve to pinned versions"))
	return a.BuildReport("audited 42 dependencies, none vulnerable"), nil
}

func licenseScan(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 10*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(42, 41, 1)
	f := domain.NewFinding(domain.CategoryCompliance, domain.SeverityLow,
		"unclassified license", "one transitive dependency ships a custom license text")
	f.Recommendation = "have legal review the license before release"
	a.AddFinding(f)
	return a.BuildReport("scanned 42 licenses, 1 needs review"), nil
}

func apiSurfaceReview(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 10*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(7, 7, 0)
	return a.BuildReport("reviewed 7 public API groups, no breaking drift"), nil
}

func codeQualityScan(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	projectRoot(a, vctx)
	if err := simulate(ctx, 20*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(310, 305, 5)
	f := domain.NewFinding(domain.CategoryMaintainability, domain.SeverityLow,
		"long functions", "5 functions exceed the complexity threshold")
	f.AutoFixable = false
	a.AddFinding(f)
	return a.BuildReport("scanned 310 files, 5 style findings"), nil
}

func assetPipelineCheck(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 15*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(58, 58, 0)
	return a.BuildReport("verified 58 avatar/voice/motion presets resolve"), nil
}

func configDriftCheck(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 10*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(12, 12, 0)
	a.AddFinding(domain.NewFinding(domain.CategoryConfiguration, domain.SeverityInfo,
		"environment parity", "staging and production configuration keys match"))
	return a.BuildReport("compared 12 config surfaces, no drift"), nil
}

func docCoverageCheck(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 10*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(96, 88, 8)
	f := domain.NewFinding(domain.CategoryDocumentation, domain.SeverityLow,
		"undocumented endpoints", "8 endpoints lack usage examples")
	f.AutoFixable = true
	a.AddFinding(f)
	return a.BuildReport("96 endpoints, 88 documented"), nil
}

func unitSuiteCheck(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 25*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(1180, 1180, 0)
	return a.BuildReport("1180 unit tests green"), nil
}

func integrationSmoke(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 25*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(34, 34, 0)
	return a.BuildReport("34 integration smoke flows passed"), nil
}

func browserMatrixCheck(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 30*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(16, 15, 1)
	f := domain.NewFinding(domain.CategoryUsability, domain.SeverityLow,
		"safari preview flicker", "timeline preview flickers on one browser/OS pair")
	f.Location = "editor/timeline"
	a.AddFinding(f)
	return a.BuildReport("15 of 16 browser/OS pairs clean"), nil
}

func secretExposureScan(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	projectRoot(a, vctx)
	if err := simulate(ctx, 15*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(310, 310, 0)
	return a.BuildReport("no credentials or tokens in the tree"), nil
}

func perfBudgetCheck(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 20*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(9, 8, 1)
	f := domain.NewFinding(domain.CategoryPerformance, domain.SeverityMedium,
		"render queue latency", "p95 render enqueue latency exceeds the 2s budget")
	f.Evidence = map[string]any{"p95_ms": 2310, "budget_ms": 2000}
	a.AddFinding(f)
	return a.BuildReport("8 of 9 performance budgets met"), nil
}

func telemetryCheck(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 10*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(21, 21, 0)
	return a.BuildReport("21 telemetry streams reporting"), nil
}

func renderProofCheck(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 30*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(5, 5, 0)
	a.AddFinding(domain.NewFinding(domain.CategoryReliability, domain.SeverityInfo,
		"proof renders verified", "all 5 proof renders match their reference frames"))
	return a.BuildReport("5 proof renders verified against references"), nil
}

func brandConsistencyCheck(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 15*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(14, 14, 0)
	return a.BuildReport("brand kit colors and fonts applied consistently"), nil
}

func archiveIntegrityCheck(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
	if err := simulate(ctx, 10*time.Millisecond); err != nil {
		return nil, err
	}
	a.RecordItems(120, 120, 0)
	return a.BuildReport("120 archived renders verified by checksum"), nil
}
