package analyzer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Bahjat/site-audit/internal/model"
	"github.com/Bahjat/site-audit/internal/platform/errs"
	"github.com/Bahjat/site-audit/internal/platform/requestid"
	"github.com/Bahjat/site-audit/internal/report"
)

// Service orchestrates a PageInsightProvider, derives the summary and
// dashboard views and logs results.
type Service struct {
	provider PageInsightProvider
	logger   *slog.Logger
}

// NewService creates a Service backed by the given provider.
func NewService(provider PageInsightProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Analyze runs a full or quick analysis and wraps it in the response
// envelope. Failed analyzers are part of a successful response; the error
// is non-nil only when no report could be produced.
func (s *Service) Analyze(ctx context.Context, targetURL, mode string) (*model.AnalyzeResponse, error) {
	logger := s.logger.With("url", targetURL, "mode", mode, requestid.Attr(ctx))

	run := s.provider.Analyze
	if mode == model.ModeQuick {
		run = s.provider.QuickAnalyze
	}

	result, err := run(ctx, targetURL)
	if err != nil {
		err = timeoutError(ctx, err)
		logger.Error("analysis failed", "error", err, "kind", errs.KindOf(err).String())
		return nil, err
	}

	summary := report.Summarize(result)
	dashboard := report.BuildDashboard(result)
	scores := dashboard.PerformanceData.Scores

	logger.Info("analysis complete",
		"status_code", summary.StatusCode,
		"failed_analyzers", len(result.Failures()),
		"seo_score", scores.SEO,
		"performance_score", scores.Performance,
		"security_score", scores.Security,
		"mobile_score", scores.Mobile,
	)
	return &model.AnalyzeResponse{
		Success:       true,
		Results:       result,
		DashboardData: &dashboard,
		Summary:       &summary,
	}, nil
}

// QuickTest fetches basic info only. An unreachable page still yields a
// successful response with null status and timing and the failure in Error.
func (s *Service) QuickTest(ctx context.Context, targetURL string) (*model.QuickTestResponse, error) {
	logger := s.logger.With("url", targetURL, requestid.Attr(ctx))

	section, err := s.provider.BasicInfo(ctx, targetURL)
	if err != nil {
		err = timeoutError(ctx, err)
		logger.Error("quick test failed", "error", err, "kind", errs.KindOf(err).String())
		return nil, err
	}

	resp := &model.QuickTestResponse{Success: true, URL: targetURL}
	basic, ok := section.Value()
	if !ok {
		resp.Error = section.Err()
		logger.Warn("quick test could not fetch the page", "error", resp.Error)
		return resp, nil
	}

	resp.StatusCode = &basic.StatusCode
	resp.ResponseTime = &basic.ResponseTime
	resp.Title = basic.Title
	logger.Info("quick test complete", "status_code", basic.StatusCode)
	return resp, nil
}

func timeoutError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &errs.AppError{
			Kind:    errs.Timeout,
			Message: "Analysis timed out. The target URL may be slow to respond.",
			Cause:   err,
		}
	}
	return err
}
