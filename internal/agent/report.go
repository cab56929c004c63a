package agent

import (
	"time"

	"github.com/SpeedCrash100/serial-perf/internal/byterate"
	"github.com/SpeedCrash100/serial-perf/internal/counting"
	"github.com/SpeedCrash100/serial-perf/internal/loopback"
	"github.com/SpeedCrash100/serial-perf/internal/ports"
)

// reporter periodically logs byte rates and protocol counters during a
// run. Rates are derived from the session's cumulative byte counters,
// fed as deltas into an average-since-start and a windowed measurer.
type reporter struct {
	clk      ports.Clock
	interval time.Duration
	nextAt   time.Time

	txAvg *byterate.AverageMeasurer
	rxAvg *byterate.AverageMeasurer
	txWin *byterate.IntervalMeasurer
	rxWin *byterate.IntervalMeasurer

	lastTx uint64
	lastRx uint64
}

func newReporter(clk ports.Clock, interval time.Duration) *reporter {
	txWin, _ := byterate.NewIntervalMeasurer(clk, interval)
	rxWin, _ := byterate.NewIntervalMeasurer(clk, interval)
	return &reporter{
		clk:      clk,
		interval: interval,
		nextAt:   clk.Now().Add(interval),
		txAvg:    byterate.NewAverageMeasurer(clk),
		rxAvg:    byterate.NewAverageMeasurer(clk),
		txWin:    txWin,
		rxWin:    rxWin,
	}
}

func (r *reporter) observe(s *counting.Session) {
	if d := s.TxBytes().Successful() - r.lastTx; d > 0 {
		r.txAvg.OnBytes(d)
		r.txWin.OnBytes(d)
		r.lastTx += d
	}
	if d := s.RxBytes().Successful() - r.lastRx; d > 0 {
		r.rxAvg.OnBytes(d)
		r.rxWin.OnBytes(d)
		r.lastRx += d
	}

	if now := r.clk.Now(); !now.Before(r.nextAt) {
		r.log(s)
		r.nextAt = now.Add(r.interval)
	}
}

func (r *reporter) log(s *counting.Session) {
	ev := logger.Info()

	if s.Tx() != nil {
		ev = ev.Uint64("tx_bytes", s.TxBytes().Successful())
		if rate, ok := r.txAvg.Rate(); ok {
			ev = ev.Float64("tx_avg_bps", rate.BytesPerSecond())
		}
		ev = ev.Float64("tx_bps", r.txWin.Rate().BytesPerSecond())
	}
	if rx := s.Rx(); rx != nil {
		ev = ev.Uint64("rx_bytes", s.RxBytes().Successful()).
			Uint64("received", rx.Received()).
			Uint64("lost", rx.Lost()).
			Uint64("duplicates", rx.Duplicates()).
			Uint64("corrupted", rx.Corrupted())
		if rate, ok := r.rxAvg.Rate(); ok {
			ev = ev.Float64("rx_avg_bps", rate.BytesPerSecond())
		}
		ev = ev.Float64("rx_bps", r.rxWin.Rate().BytesPerSecond())
	}

	ev.Msg("report")
}

// logSummary emits the final counters of a finished counter session.
// Loss and corruption surface here as totals, never as per-frame
// failures.
func logSummary(s *counting.Session) {
	ev := logger.Info()

	if s.Tx() != nil {
		ev = ev.Uint64("tx_bytes", s.TxBytes().Successful()).
			Uint64("tx_failed", s.TxBytes().Failed()).
			Uint64("next_to_send", uint64(s.Tx().NextToSend()))
	}
	if rx := s.Rx(); rx != nil {
		ev = ev.Uint64("rx_bytes", s.RxBytes().Successful()).
			Uint64("received", rx.Received()).
			Uint64("lost", rx.Lost()).
			Uint64("duplicates", rx.Duplicates()).
			Uint64("corrupted", rx.Corrupted())
	}

	ev.Msg("summary")
}

func logLoopbackSummary(lb *loopback.Loopback) {
	logger.Info().
		Uint64("received", lb.RxBytes().Successful()).
		Uint64("echoed", lb.TxBytes().Successful()).
		Msg("loopback summary")
}
