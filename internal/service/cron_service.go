package service

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/yeshuachrist/ycapi/internal/config"
	"github.com/yeshuachrist/ycapi/pkg/utils/zaplogger"
	"gorm.io/gorm"
)

// CronService is the service for the cron jobs
type CronService struct {
	cfg          *config.Config
	db           *gorm.DB
	redisClient  *redis.Client
	c            *cron.Cron
	authService  *AuthService
	verseService *VerseService
}

// NewCronService creates a new CronService
func NewCronService(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *CronService {
	return &CronService{
		cfg:          cfg,
		db:           db,
		redisClient:  redisClient,
		c:            cron.New(),
		authService:  NewAuthService(db, cfg),
		verseService: NewVerseService(redisClient),
	}
}

// Start starts the cron service
func (cs *CronService) Start() {
	zaplogger.Info("Initializing CronService")

	cs.addScheduledJob("Expired Sessions PURGE Job", cs.sessionPurgeJob, "0 3 * * *") // Once at 03:00am daily
	cs.addScheduledJob("Daily Verse WARM Job", cs.dailyVerseWarmJob, "0 0 * * *")     // Once at midnight daily

	cs.addStartupJob("Expired Sessions PURGE Job", cs.sessionPurgeJob, 5*time.Second)
	cs.addStartupJob("Daily Verse WARM Job", cs.dailyVerseWarmJob, 10*time.Second)

	cs.c.Start()
}

// addStartupJob adds a startup job to the cron service
func (cs *CronService) addStartupJob(name string, job func(), delay time.Duration) {
	go func() {
		time.Sleep(delay)
		zaplogger.Info("STARTED STARTUP job", zaplogger.Fields{
			"job": name,
		})
		job()
		zaplogger.Info("COMPLETED STARTUP job", zaplogger.Fields{
			"job": name,
		})
	}()
	zaplogger.Info("QUEUED STARTUP job", zaplogger.Fields{
		"job": name,
	})
}

func (cs *CronService) addScheduledJob(name string, job func(), schedule string) {
	_, err := cs.c.AddFunc(schedule, func() {
		zaplogger.Info("STARTED SCHEDULED JOB", zaplogger.Fields{
			"job": name,
		})
		job()
		zaplogger.Info("COMPLETED SCHEDULED JOB", zaplogger.Fields{
			"job": name,
		})
	})
	if err != nil {
		zaplogger.Error("FAILED TO QUEUE SCHEDULED JOB", zaplogger.Fields{
			"job":   name,
			"error": err.Error(),
		})
		return
	}
	zaplogger.Info("QUEUED SCHEDULED job", zaplogger.Fields{
		"job": name,
	})
}

// sessionPurgeJob removes expired admin sessions
func (cs *CronService) sessionPurgeJob() {
	jobName := "Expired Sessions PURGE Job "

	purged, err := cs.authService.PurgeExpiredSessions()
	if err != nil {
		zaplogger.Error(jobName, zaplogger.Fields{
			"error": err.Error(),
		})
		return
	}
	zaplogger.Info(jobName, zaplogger.Fields{
		"sessions_purged": strconv.FormatInt(purged, 10),
	})
}

// dailyVerseWarmJob pre-fetches today's verse into the cache
func (cs *CronService) dailyVerseWarmJob() {
	jobName := "Daily Verse WARM Job "

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	verse, err := cs.verseService.GetDailyVerse(ctx, LocalDateKey(time.Now()))
	if err != nil {
		zaplogger.Error(jobName, zaplogger.Fields{
			"error": err.Error(),
		})
		return
	}
	zaplogger.Info(jobName, zaplogger.Fields{
		"reference": verse.Reference,
		"source":    verse.Source,
	})
}
