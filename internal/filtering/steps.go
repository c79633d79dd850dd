package filtering

import (
	"context"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/yashogale30/rfp-responder/internal/tender"
)

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes tenders listed in the
// operator's exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, ts *tender.Tenders) (*tender.Tenders, Step, error) {
	initial := ts.Len()
	if f.path == "" {
		return ts, Step{Initial: initial, Dropped: 0, Left: ts.Len()}, nil
	}

	excluded, err := tender.GetExcludedTendersFromFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing file just means nothing has been excluded yet.
			return ts, Step{Initial: initial, Dropped: 0, Left: ts.Len()}, nil
		}
		return ts, Step{}, err
	}

	removed := ts.Exclude(tender.ReferenceField, excluded.References())
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding tenders based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_tenders", removed),
			zap.Int("tenders_left", ts.Len()),
		)
	}

	return ts, Step{Initial: initial, Dropped: len(removed), Left: ts.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type respondedHistoryFilter struct {
	ignore bool
	path   string
}

// NewRespondedHistory creates a filter that removes tenders already
// responded to in earlier cycles. ignore keeps them in, for reruns.
func NewRespondedHistory(ignore bool) Filter {
	return &respondedHistoryFilter{ignore: ignore}
}

func (f *respondedHistoryFilter) Name() string { return "responded_history" }

func (f *respondedHistoryFilter) Disable(string) {}

func (f *respondedHistoryFilter) IsEnabled() bool { return true }

func (f *respondedHistoryFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.HistoryFile)
	}
	return nil
}

func (f *respondedHistoryFilter) Apply(_ context.Context, deps Deps, ts *tender.Tenders) (*tender.Tenders, Step, error) {
	initial := ts.Len()
	if f.ignore {
		if deps.Logger != nil {
			deps.Logger.Info("keeping already responded tenders", zap.String("reason", "force flag is set"))
		}
		return ts, Step{Initial: initial, Dropped: 0, Left: ts.Len()}, nil
	}

	if f.path == "" {
		return ts, Step{Initial: initial, Dropped: 0, Left: ts.Len()}, nil
	}

	history, err := tender.GetExcludedTendersFromFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ts, Step{Initial: initial, Dropped: 0, Left: ts.Len()}, nil
		}
		return ts, Step{}, err
	}

	removed := ts.Exclude(tender.ReferenceField, history.References())
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding tenders already responded to",
			zap.Strings("excluded_tenders", removed),
			zap.Int("tenders_left", ts.Len()),
		)
	}

	return ts, Step{Initial: initial, Dropped: len(removed), Left: ts.Len()}, nil
}

func (f *respondedHistoryFilter) Status() Status {
	details := map[string]string{
		"exclude_responded": strconv.FormatBool(!f.ignore),
	}
	reason := ""
	if f.ignore {
		reason = "skip requested via flag"
	}
	return Status{Name: f.Name(), Enabled: true, Reason: reason, Details: details}
}

type issuersFilter struct {
	issuers []string
}

// NewIssuers creates a filter that removes tenders from issuing bodies
// configured as avoided.
func NewIssuers() Filter {
	return &issuersFilter{}
}

func (f *issuersFilter) Name() string { return "issuers" }

func (f *issuersFilter) Disable(string) {}

func (f *issuersFilter) IsEnabled() bool { return true }

func (f *issuersFilter) Validate(cfg *Config) error {
	f.issuers = nil
	if cfg != nil {
		f.issuers = append(f.issuers, cfg.Issuers...)
	}
	return nil
}

func (f *issuersFilter) Apply(_ context.Context, deps Deps, ts *tender.Tenders) (*tender.Tenders, Step, error) {
	initial := ts.Len()
	if len(f.issuers) == 0 {
		return ts, Step{Initial: initial, Dropped: 0, Left: ts.Len()}, nil
	}

	excluded := ts.Exclude(tender.IssuerField, f.issuers)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding tenders by issuer",
			zap.Strings("excluded_issuers", f.issuers),
			zap.Strings("excluded_tenders", excluded),
			zap.Int("tenders_left", ts.Len()),
		)
	}

	return ts, Step{Initial: initial, Dropped: len(excluded), Left: ts.Len()}, nil
}

func (f *issuersFilter) Status() Status {
	details := map[string]string{}
	if len(f.issuers) > 0 {
		details["issuers"] = strings.Join(f.issuers, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
