package sample

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/okian/materiality/internal/domain/analysis"
	"github.com/okian/materiality/pkg/logger"
)

type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeDuplicate
	outcomeFailed
)

// Submit posts every analysis to baseURL/analyses with at most cfg.Workers
// requests in flight. Non-2xx responses count as failed; only context
// cancellation aborts the run.
func Submit(ctx context.Context, cfg Config, analyses []analysis.Analysis) (Report, error) {
	const op = "sample.Submit"
	cfg.Normalize()

	client := &http.Client{Timeout: cfg.Timeout}
	url := strings.TrimRight(cfg.BaseURL, "/") + "/analyses"
	log := logger.Get().Named("sample")
	log.Info(ctx, "submitting analyses",
		logger.Int("count", len(analyses)),
		logger.Int("workers", cfg.Workers),
		logger.String("url", url))

	var accepted, duplicate, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range analyses {
		a := analyses[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			switch submitOne(gctx, client, url, a) {
			case outcomeAccepted:
				accepted.Add(1)
			case outcomeDuplicate:
				duplicate.Add(1)
			default:
				failed.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()

	rep := Report{
		Accepted:  int(accepted.Load()),
		Duplicate: int(duplicate.Load()),
		Failed:    int(failed.Load()),
	}
	rep.Submitted = rep.Accepted + rep.Duplicate + rep.Failed

	log.Info(ctx, "submission completed",
		logger.Int("accepted", rep.Accepted),
		logger.Int("duplicate", rep.Duplicate),
		logger.Int("failed", rep.Failed))

	if err != nil {
		return rep, fmt.Errorf("%s: %w", op, err)
	}
	return rep, nil
}

func submitOne(ctx context.Context, client *http.Client, url string, a analysis.Analysis) outcome { //nolint:gocritic // hugeParam: read-only
	body, err := json.Marshal(a)
	if err != nil {
		return outcomeFailed
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return outcomeFailed
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		logger.Get().Debug(ctx, "submit failed", logger.String("id", a.ID), logger.Error(err))
		return outcomeFailed
	}
	defer func() { _ = resp.Body.Close() }()
	data, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusAccepted:
		return outcomeAccepted
	case http.StatusOK:
		var ack ackResponse
		if json.Unmarshal(data, &ack) == nil && !ack.Duplicate {
			return outcomeAccepted
		}
		return outcomeDuplicate
	default:
		return outcomeFailed
	}
}
