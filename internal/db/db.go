package db

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/minorebarber/booking-api/internal/config"
	"github.com/minorebarber/booking-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Location{},
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.Schedule{},
		&models.Appointment{},
		&models.DailyRevenue{},
		&models.MonthlyRevenue{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Backstop against racing double-books: at most one non-cancelled
	// appointment per barber and exact start time.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_barber_start_active
        ON appointments (barber_id, start_time)
        WHERE status <> 'cancelled'
    `)

	return db
}

// Seed creates the rows the system expects to exist before serving: the
// locations, the singleton schedule row (explicitly here, never lazily inside
// a read path), and the admin user.
func Seed(db *gorm.DB, cfg *config.Config) {
	var locations int64
	db.Model(&models.Location{}).Count(&locations)
	if locations == 0 {
		db.Create(&[]models.Location{
			{Name: "Mallorca", Address: "Calle Mallorca 233"},
			{Name: "Consell", Address: "Calle Consell de Cent 295"},
		})
	}

	var schedules int64
	db.Model(&models.Schedule{}).Count(&schedules)
	if schedules == 0 {
		sched := models.Schedule{
			StartHour: 11,
			EndHour:   19,
			IsOpen:    true,
			Monday:    true,
			Tuesday:   true,
			Wednesday: true,
			Thursday:  true,
			Friday:    true,
			Saturday:  true,
			Sunday:    true,
		}
		pol := cfg.Policy()
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if pol.IsClosedWeekday(wd) {
				sched.SetOpenOn(wd, false)
			}
		}
		db.Create(&sched)
	}

	if cfg.AdminPassword != "" {
		var users int64
		db.Model(&models.User{}).Count(&users)
		if users == 0 {
			hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("failed to hash admin password: %v", err)
			}
			db.Create(&models.User{
				Name:         cfg.AdminName,
				Email:        cfg.AdminEmail,
				PasswordHash: string(hashed),
				Role:         "admin",
			})
		}
	}
}
