package mysql

import (
	"testing"
	"time"

	fundingDomain "lendpool-backend/internal/domain/funding"
	loanDomain "lendpool-backend/internal/domain/loan"
	userDomain "lendpool-backend/internal/domain/user"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Shadow schemas for the tables whose production definitions use MySQL enum
// column types, which sqlite cannot parse. Same table and column names,
// plain strings instead of enums.

type userSchema struct {
	ID              uint64  `gorm:"primaryKey;column:id"`
	UserID          string  `gorm:"size:32;uniqueIndex"`
	Name            string  `gorm:"size:255"`
	Email           string  `gorm:"size:255"`
	Password        string  `gorm:"size:255"`
	Role            string  `gorm:"size:16;column:role"`
	KYCVerified     bool    `gorm:"column:kyc_verified"`
	ProfileStatus   string  `gorm:"size:16;column:profile_status"`
	RejectionReason *string `gorm:"size:512"`
	ContactNumber   string  `gorm:"size:32"`
	Address         userDomain.Address `gorm:"embedded;embeddedPrefix:addr_"`
	Wallet          userDomain.Wallet  `gorm:"embedded;embeddedPrefix:wallet_"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (userSchema) TableName() string { return "users" }

type walletTransactionSchema struct {
	ID             uint64 `gorm:"primaryKey;column:id"`
	TransactionRef string `gorm:"size:36;uniqueIndex"`
	UserID         uint64 `gorm:"index;not null"`
	Type           string `gorm:"size:32;column:type"`
	Amount         float64
	BalanceAfter   float64
	Description    string `gorm:"size:512"`
	OccurredAt     time.Time
}

func (walletTransactionSchema) TableName() string { return "wallet_transactions" }

type loanSchema struct {
	ID           uint64 `gorm:"primaryKey;column:id"`
	LoanID       string `gorm:"size:32;uniqueIndex"`
	ApplicantID  string `gorm:"size:32;index"`
	Amount       float64
	TermMonths   int
	Purpose      string `gorm:"size:512"`
	Category     string `gorm:"size:128"`
	PANNumber    string `gorm:"size:16;column:pan_number"`
	InterestRate float64
	CreditScore  int
	Status       string                  `gorm:"size:16;column:status"`
	Guarantor    loanDomain.Guarantor    `gorm:"embedded;embeddedPrefix:guarantor_"`
	Disbursement loanDomain.Disbursement `gorm:"embedded;embeddedPrefix:disb_"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (loanSchema) TableName() string { return "loans" }

type installmentSchema struct {
	ID            uint64 `gorm:"primaryKey;column:id"`
	LoanNumericID uint64 `gorm:"column:loan_id;index;not null"`
	Sequence      int
	DueDate       time.Time
	Status        string `gorm:"size:16;column:status"`
	Amount        float64
}

func (installmentSchema) TableName() string { return "loan_installments" }

type fundingSchema struct {
	ID                   uint64 `gorm:"primaryKey;column:id"`
	FundingID            string `gorm:"size:32;uniqueIndex"`
	LoanID               string `gorm:"size:32;uniqueIndex"`
	TotalAmountNeeded    float64
	TotalAmountAllocated float64
	Status               string `gorm:"size:16;column:status"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (fundingSchema) TableName() string { return "loan_fundings" }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// one connection, or each pooled conn would see its own :memory: database
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&userSchema{},
		&walletTransactionSchema{},
		&loanSchema{},
		&installmentSchema{},
		&loanDomain.AuditEntry{},
		&loanDomain.Notification{},
		&loanDomain.Document{},
		&fundingSchema{},
		&fundingDomain.Contribution{},
		&fundingDomain.Return{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, userID string, balance float64) *userDomain.User {
	t.Helper()
	u := &userDomain.User{
		UserID:        userID,
		Name:          "Test User " + userID[:4],
		Email:         userID + "@example.com",
		Role:          userDomain.RoleBorrower,
		ProfileStatus: userDomain.ProfilePending,
		Wallet:        userDomain.Wallet{Balance: balance},
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", userID, err)
	}
	return u
}

func seedLoan(t *testing.T, db *gorm.DB, loanID, applicantID string, amount float64, status loanDomain.Status) *loanDomain.Loan {
	t.Helper()
	l := &loanDomain.Loan{
		LoanID:      loanID,
		ApplicantID: applicantID,
		Amount:      amount,
		TermMonths:  12,
		Purpose:     "working capital",
		Status:      status,
	}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed loan %s: %v", loanID, err)
	}
	return l
}

func seedFunding(t *testing.T, db *gorm.DB, fundingID, loanID string, needed, allocated float64) *fundingDomain.Funding {
	t.Helper()
	f := &fundingDomain.Funding{
		FundingID:            fundingID,
		LoanID:               loanID,
		TotalAmountNeeded:    needed,
		TotalAmountAllocated: allocated,
		Status:               fundingDomain.StatusOpen,
	}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("seed funding %s: %v", fundingID, err)
	}
	return f
}
