// cmd/seed bootstraps a fresh database: schema, faculty and research area
// lookups, and an initial admin account. Demo users for each role can be
// added with -demo.
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/services"
)

var faculties = []string{"FCI", "FOE", "FCM", "FOM", "FAC", "FCA", "FIST", "FET", "FOB", "FOL"}

var researchAreas = []string{
	"Artificial Intelligence", "Cyber Security", "Data Science", "Software Engineering",
	"Game Development", "Information Systems", "Bioinformatics", "Nanotechnology",
	"Telecommunications", "Robotics & Automation", "Renewable Energy",
	"VR & AR", "Interface Design", "Digital Education", "Financial Technology",
	"Knowledge Management", "Human-Computer Interaction", "Business Intelligence",
	"Medical Informatics", "Networking Technology", "Mechanical Engineering",
	"Electronic Engineering", "Green Technology", "Marketing Management",
	"E-Commerce", "Business Analytics", "Finance & Banking", "Cyber Law",
	"Intellectual Property Law", "Corporate Law", "Media Law",
}

func main() {
	demo := flag.Bool("demo", false, "also create one demo user per role")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	config.InitDB()

	if err := migrate(config.DB); err != nil {
		log.Fatal("migration failed: ", err)
	}
	if err := seedLookups(config.DB); err != nil {
		log.Fatal("lookup seed failed: ", err)
	}
	if err := seedUser(config.DB, services.UserInput{
		MMUID:    "ADMIN001",
		Name:     "System Admin",
		Email:    "admin@mmu.edu.my",
		Password: "changeme123",
		Faculty:  "FCI",
		Role:     models.RoleAdmin,
	}); err != nil {
		log.Fatal("admin seed failed: ", err)
	}

	if *demo {
		demoUsers := []services.UserInput{
			{MMUID: "242UC244L7", Name: "Alif Akmal", Email: "alif@mmu.edu.my", Password: "password123", Faculty: "FCI", Role: models.RoleResearcher},
			{MMUID: "242UC244PT", Name: "Jasmyne Yap", Email: "jasmyne@mmu.edu.my", Password: "password123", Faculty: "FCI", Role: models.RoleReviewer},
			{MMUID: "242UC244RD", Name: "Brian Ng", Email: "brian@mmu.edu.my", Password: "password123", Faculty: "FCI", Role: models.RoleHOD},
		}
		for _, u := range demoUsers {
			if err := seedUser(config.DB, u); err != nil {
				log.Fatalf("demo user %s failed: %v", u.MMUID, err)
			}
		}
	}

	log.Println("Database seeded")
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AdminProfile{},
		&models.ResearcherProfile{},
		&models.ReviewerProfile{},
		&models.HODProfile{},
		&models.GrantCycle{},
		&models.Proposal{},
		&models.ProposalVersion{},
		&models.Deadline{},
		&models.Notification{},
		&models.Budget{},
		&models.Grant{},
		&models.ProgressReport{},
		&models.Faculty{},
		&models.ResearchArea{},
	)
}

func seedLookups(db *gorm.DB) error {
	for _, name := range faculties {
		var existing models.Faculty
		err := db.Where("name = ?", name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.Faculty{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	for _, name := range researchAreas {
		var existing models.ResearchArea
		err := db.Where("name = ?", name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.ResearchArea{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

// seedUser creates the user and its role profile unless the login id is
// already taken.
func seedUser(db *gorm.DB, in services.UserInput) error {
	var existing models.User
	err := db.Where("mmu_id = ?", in.MMUID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	_, err = services.CreateUser(db, in)
	return err
}
