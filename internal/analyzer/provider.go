package analyzer

import (
	"context"

	"github.com/Bahjat/site-audit/internal/model"
)

// PageInsightProvider defines the contract for any analysis engine.
// *pageinsight.Engine implements it.
type PageInsightProvider interface {
	Analyze(ctx context.Context, targetURL string) (*model.AnalysisReport, error)
	QuickAnalyze(ctx context.Context, targetURL string) (*model.AnalysisReport, error)
	BasicInfo(ctx context.Context, targetURL string) (*model.Section[model.BasicInfo], error)
}
