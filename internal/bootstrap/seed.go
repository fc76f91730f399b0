package bootstrap

import (
	"log"

	"anoa.com/yamdbreview/internal/model"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Genre{},
		&model.Title{},
		&model.Review{},
		&model.Comment{},
	)
}

// SeedAdminUser creates a development admin account. It still goes
// through the normal signup/token flow: the seeded confirmation code is
// printed so the token endpoint can be exercised immediately.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("username = ?", "admin").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	code := "000000"
	adminUser := model.User{
		Username:         "admin",
		Email:            "admin@yamdb.local",
		Role:             model.RoleAdmin,
		ConfirmationCode: &code,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully")
	log.Println("   Username: admin")
	log.Println("   Confirmation code: " + code)

	return nil
}
