package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"BazarPulse/internal/calculator"
	"BazarPulse/internal/calendar"
	"BazarPulse/internal/collector"
	"BazarPulse/internal/listing"
	"BazarPulse/internal/notifier"
	"BazarPulse/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron tasks: daily collection plus watch-alert
// checks, and a weekly digest.
type Scheduler struct {
	Cron           *cron.Cron
	Collector      *collector.Collector
	Notifier       *notifier.TelegramNotifier
	Recorder       recorder.Recorder
	AlertThreshold float64
	PageSize       int
	Ctx            context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, tn *notifier.TelegramNotifier, rec recorder.Recorder, alertThreshold float64, pageSize int) *Scheduler {
	return &Scheduler{
		Cron:           cron.New(cron.WithSeconds()),
		Collector:      col,
		Notifier:       tn,
		Recorder:       rec,
		AlertThreshold: alertThreshold,
		PageSize:       pageSize,
		Ctx:            ctx,
	}
}

// RegisterAll registers the daily and weekly tasks.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyDigest); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily collection")

	trends, err := s.Collector.CollectTrends()
	if err != nil {
		log.Printf("[ERROR] daily collect: %v", err)
		s.trySend(fmt.Sprintf("❌ Daily collection failed: %v", err))
		return
	}

	if err := s.Recorder.RecordTrends(snapshots(trends)); err != nil {
		log.Printf("[ERROR] record trends: %v", err)
	}

	s.checkWatchAlerts()
}

// checkWatchAlerts sends an alert for every watched item whose trend
// magnitude crossed the threshold.
func (s *Scheduler) checkWatchAlerts() {
	watched, err := s.Collector.CollectWatchlistTrends()
	if err != nil {
		log.Printf("[ERROR] watchlist collect: %v", err)
		return
	}

	for _, it := range watched {
		if !it.HasTrend {
			continue
		}
		magnitude := it.Trend.PercentChange
		if magnitude < 0 {
			magnitude = -magnitude
		}
		if magnitude < s.AlertThreshold {
			continue
		}
		s.trySend(notifier.FormatAlert(it, s.AlertThreshold))
		if err := s.Recorder.RecordAlert(&recorder.AlertEvent{
			ItemName:      it.Series.ItemName,
			PercentChange: it.Trend.PercentChange,
			Threshold:     s.AlertThreshold,
		}); err != nil {
			log.Printf("[ERROR] record alert: %v", err)
		}
	}
}

func (s *Scheduler) weeklyDigest() {
	log.Println("[INFO] running weekly digest")
	trends, err := s.Collector.CollectTrends()
	if err != nil {
		log.Printf("[ERROR] weekly collect: %v", err)
		s.trySend(fmt.Sprintf("❌ Weekly digest failed: %v", err))
		return
	}
	s.trySend(notifier.FormatTrendDigest(trends))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}

	switch fields[0] {
	case "/trends":
		trends, err := s.Collector.CollectTrends()
		if err != nil {
			return fmt.Sprintf("Failed to collect trends: %v", err)
		}
		return notifier.FormatTrendDigest(trends)

	case "/item":
		if len(fields) < 2 {
			return "Usage: /item <name>"
		}
		name := strings.Join(fields[1:], " ")
		it, err := s.Collector.CollectItem(name)
		if err != nil {
			return fmt.Sprintf("Failed to collect %s: %v", name, err)
		}
		return notifier.FormatItemDetail(it)

	case "/compare":
		if len(fields) < 3 {
			return "Usage: /compare <name> <yyyy-mm-dd>"
		}
		name := strings.Join(fields[1:len(fields)-1], " ")
		rawDate := fields[len(fields)-1]
		anchor, err := calendar.ParseDate(rawDate)
		if err != nil {
			return fmt.Sprintf("Unrecognized date %q, expected yyyy-mm-dd", rawDate)
		}
		it, err := s.Collector.CollectItem(name)
		if err != nil {
			return fmt.Sprintf("Failed to collect %s: %v", name, err)
		}
		cmp, ok := calculator.Compare(it.Series, anchor)
		if !ok {
			return fmt.Sprintf("No price data for %s on %s.", name, rawDate)
		}
		return notifier.FormatComparison(name, cmp)

	case "/list":
		page := 1
		sortOrder := listing.SortNone
		for _, arg := range fields[1:] {
			switch arg {
			case "asc":
				sortOrder = listing.SortAscending
			case "desc":
				sortOrder = listing.SortDescending
			default:
				if n, err := strconv.Atoi(arg); err == nil {
					page = n
				}
			}
		}
		products, err := s.Collector.Products()
		if err != nil {
			return fmt.Sprintf("Failed to fetch products: %v", err)
		}
		result := listing.Apply(products, listing.Options{
			Sort:     sortOrder,
			Page:     page,
			PageSize: s.PageSize,
		})
		return notifier.FormatListingPage(result)

	default:
		return helpText
	}
}

const helpText = "Available commands:\n• /trends — digest of all items\n• /item <name> — recent prices and trend\n• /compare <name> <yyyy-mm-dd> — price difference vs. a past date\n• /list [page] [asc|desc] — browse products by latest price"

// snapshots converts collected trends into recorder rows. Items without a
// trend are still recorded with baseline NONE so gaps are visible.
func snapshots(trends []collector.ItemTrend) []recorder.TrendSnapshot {
	out := make([]recorder.TrendSnapshot, 0, len(trends))
	for _, it := range trends {
		snap := recorder.TrendSnapshot{
			ItemName:   it.Series.ItemName,
			PointCount: len(it.Series.Points),
			Baseline:   "NONE",
		}
		if latest, ok := it.Series.Latest(); ok {
			snap.LatestPrice = latest.Price
			snap.LatestDate = latest.Date
		}
		if it.HasTrend {
			snap.PercentChange = it.Trend.PercentChange
			snap.Baseline = string(it.Trend.Baseline)
		}
		out = append(out, snap)
	}
	return out
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
