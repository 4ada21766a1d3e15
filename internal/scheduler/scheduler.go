package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/config"
	"github.com/nikka005/nirbani-sub001/internal/ledger"
	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/sms"
)

// Scheduler runs the end-of-day summary job: total milk, farmer count and
// amount for the day, sent to the owner's phone.
type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
	sms  *sms.Client
	cfg  config.SchedulerConfig
	log  *zap.Logger
}

func New(db *gorm.DB, smsClient *sms.Client, cfg config.SchedulerConfig, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		db:   db,
		sms:  smsClient,
		cfg:  cfg,
		log:  log.Named("scheduler"),
	}
}

// Start registers the daily job and starts the cron loop. Disabled or
// misconfigured schedulers are a no-op so the server still boots.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		s.log.Info("scheduler disabled")
		return nil
	}

	spec := s.cfg.DailySpec
	if spec == "" {
		spec = "0 21 * * *" // 9pm, after the evening shift closes
	}

	if _, err := s.cron.AddFunc(spec, s.dailySummary); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("scheduler started", zap.String("daily_spec", spec))
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) dailySummary() {
	date := time.Now().Format("2006-01-02")

	var collections []models.MilkCollection
	if err := s.db.Where("date = ?", date).Find(&collections).Error; err != nil {
		s.log.Error("daily summary query failed", zap.Error(err))
		return
	}
	if len(collections) == 0 {
		s.log.Info("daily summary skipped, no collections", zap.String("date", date))
		return
	}

	farmers := map[string]struct{}{}
	for _, col := range collections {
		farmers[col.FarmerID] = struct{}{}
	}
	summary := ledger.AggregateCollections(collections)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.sms.SendDailySummary(ctx, s.cfg.OwnerPhone, date,
		summary.TotalQtyLiters, summary.TotalAmount, len(farmers)); err != nil {
		s.log.Error("daily summary sms failed", zap.Error(err))
		return
	}

	s.log.Info("daily summary sent",
		zap.String("date", date),
		zap.Float64("liters", summary.TotalQtyLiters),
		zap.Int("farmers", len(farmers)))
}
