package migrations

import (
	"gorm.io/gorm"
)

type Migration struct {
	Name string
	Run  func(*gorm.DB) error
}

func GetMigrations() []Migration {
	return []Migration{
		{
			// The unique index on (user_id, month_key) backs the atomic
			// increment-or-create upsert; without it ON CONFLICT has no target.
			Name: "AddMonthlyUsageUniqueIndex",
			Run: func(db *gorm.DB) error {
				return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_usage_user_month ON monthly_usages(user_id, month_key)").Error
			},
		},
		{
			Name: "AddMonthlyUsageNonNegativeChecks",
			Run: func(db *gorm.DB) error {
				if err := db.Exec("ALTER TABLE monthly_usages ADD CONSTRAINT chk_total_prompts_non_negative CHECK (total_prompts >= 0)").Error; err != nil {
					return err
				}
				return db.Exec("ALTER TABLE monthly_usages ADD CONSTRAINT chk_total_cost_non_negative CHECK (total_cost >= 0)").Error
			},
		},
		{
			Name: "AddAttemptHistoryIndex",
			Run: func(db *gorm.DB) error {
				return db.Exec("CREATE INDEX IF NOT EXISTS idx_attempts_user_completed ON quiz_attempts(user_id, completed_at DESC)").Error
			},
		},
	}
}
