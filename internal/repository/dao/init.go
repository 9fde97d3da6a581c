package dao

import "gorm.io/gorm"

func models() []any {
	return []any{
		&Competition{},
		&CheckoutSummary{},
		&TicketSubmission{},
		&CompetitionResult{},
	}
}

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(models()...)
}

// DropTables removes every table owned by this package, children first.
func DropTables(db *gorm.DB) error {
	tables := models()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return err
		}
	}

	return nil
}
