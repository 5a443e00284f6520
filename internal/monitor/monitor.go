package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/probe"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/repo"
)

// ResultSink receives every probe result exactly once per tick per
// host. The repo stores and the JSON-lines writer both satisfy it.
type ResultSink interface {
	Append(ctx context.Context, r *domain.ProbeResult) error
}

// Display receives the per-tick snapshot. No return value: rendering
// failures are the sink's problem, not the loop's.
type Display interface {
	Publish(s Snapshot)
}

type Config struct {
	Interval    time.Duration
	Timeout     time.Duration
	Concurrency int
	FastMS      float64
	RepeatEvery time.Duration
	OnRecovery  bool
	AvgWindow   int
}

type Monitor struct {
	logger   *zap.Logger
	hosts    []domain.Host
	prober   probe.Prober
	results  repo.ResultStore
	sinks    []ResultSink
	display  Display
	notifier interface {
		Send(context.Context, string, string) error
	}
	cfg Config

	states      *tracker
	prevOverall domain.Classification
	now         func() time.Time
}

func New(
	logger *zap.Logger,
	hosts []domain.Host,
	prober probe.Prober,
	results repo.ResultStore,
	extraSinks []ResultSink,
	display Display,
	notifier interface {
		Send(context.Context, string, string) error
	},
	cfg Config,
) *Monitor {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.AvgWindow < 1 {
		cfg.AvgWindow = 5
	}
	sinks := append([]ResultSink{results}, extraSinks...)
	return &Monitor{
		logger:      logger,
		hosts:       hosts,
		prober:      prober,
		results:     results,
		sinks:       sinks,
		display:     display,
		notifier:    notifier,
		cfg:         cfg,
		states:      newTracker(),
		prevOverall: domain.Unknown,
		now:         time.Now,
	}
}

// Run does an immediate pass, then one pass per tick until ctx is
// cancelled. Ticks never overlap: the loop owns a single goroutine and
// an overrunning pass simply delays the next tick.
func (m *Monitor) Run(ctx context.Context) {
	t := time.NewTicker(m.cfg.Interval)
	defer t.Stop()

	m.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor_stopped")
			return
		case <-t.C:
			m.runOnce(ctx)
		}
	}
}

type probed struct {
	host domain.Host
	out  probe.Outcome
}

func (m *Monitor) runOnce(ctx context.Context) {
	outcomes := make([]probed, len(m.hosts))

	sem := make(chan struct{}, m.cfg.Concurrency)
	var wg sync.WaitGroup
	for i, h := range m.hosts {
		i, h := i, h
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()

			cctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
			defer cancel()
			outcomes[i] = probed{host: h, out: m.prober.Probe(cctx, h)}
		}()
	}
	wg.Wait()

	now := m.now().UTC()
	statuses := make([]HostStatus, 0, len(outcomes))
	classes := make([]domain.Classification, 0, len(outcomes))

	for _, p := range outcomes {
		class := domain.Classify(p.out.RTTMS, p.out.OK, m.cfg.FastMS)
		r := &domain.ProbeResult{
			HostID:         p.host.ID,
			Address:        p.host.Address,
			RTTMS:          p.out.RTTMS,
			Classification: class,
			Reason:         p.out.Reason,
			CheckedAt:      now,
		}
		for _, s := range m.sinks {
			if err := s.Append(ctx, r); err != nil {
				m.logger.Warn("result_append_error",
					zap.String("host", string(p.host.ID)),
					zap.Error(err),
				)
			}
		}

		switch m.states.observe(p.host.ID, class, now, m.cfg.RepeatEvery) {
		case eventTransition:
			m.send(ctx,
				fmt.Sprintf("%s is now %s", p.host.Label, class),
				transitionText(p.host, r),
			)
		case eventRepeat:
			m.send(ctx,
				fmt.Sprintf("%s is still disconnected", p.host.Label),
				transitionText(p.host, r),
			)
		}

		statuses = append(statuses, m.status(ctx, p.host, r))
		classes = append(classes, class)

		m.logger.Info("host_probed",
			zap.String("host", string(p.host.ID)),
			zap.String("address", p.host.Address),
			zap.String("classification", string(class)),
			zap.Float64p("rtt_ms", p.out.RTTMS),
			zap.String("reason", p.out.Reason),
		)
	}

	overall := domain.Overall(classes)
	if m.cfg.OnRecovery && m.prevOverall == domain.Disconnected && overall.Connected() {
		m.send(ctx, "All connections restored", "every monitored host is reachable again")
	}
	m.prevOverall = overall

	if m.display != nil {
		m.display.Publish(Snapshot{
			Overall:      overall,
			OverallColor: overall.Color(),
			Hosts:        statuses,
			At:           now,
		})
	}
}

func (m *Monitor) status(ctx context.Context, h domain.Host, r *domain.ProbeResult) HostStatus {
	var avg *float64
	if recent, err := m.results.Recent(ctx, h.ID, m.cfg.AvgWindow); err == nil {
		avg = repo.AvgRTT(recent)
	}
	return HostStatus{
		ID:             h.ID,
		Label:          h.Label,
		Address:        h.Address,
		Classification: r.Classification,
		Color:          r.Classification.Color(),
		RTTMS:          r.RTTMS,
		AvgRTTMS:       avg,
		Reason:         r.Reason,
		CheckedAt:      r.CheckedAt,
	}
}

func (m *Monitor) send(ctx context.Context, title, text string) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Send(ctx, title, text); err != nil {
		m.logger.Warn("notify_error", zap.String("title", title), zap.Error(err))
	}
}

func transitionText(h domain.Host, r *domain.ProbeResult) string {
	rttTxt := "n/a"
	if r.RTTMS != nil {
		rttTxt = fmt.Sprintf("%.1f ms", *r.RTTMS)
	}
	reason := r.Reason
	if reason == "" {
		reason = "-"
	}
	return fmt.Sprintf("Address: %s\nRTT: %s\nReason: %s\nChecked: %s",
		h.Address, rttTxt, reason, r.CheckedAt.Format(time.RFC3339))
}
