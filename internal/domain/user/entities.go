package user

import (
	"time"

	"gorm.io/gorm"
)

type ProfileStatus string

const (
	ProfilePending   ProfileStatus = "Pending"
	ProfileActive    ProfileStatus = "Active"
	ProfileSuspended ProfileStatus = "Suspended"
)

type Role string

const (
	RoleBorrower Role = "borrower"
	RoleInvestor Role = "investor"
	RoleAdmin    Role = "admin"
)

// Wallet is embedded in User; the balance is only ever changed alongside an
// appended WalletTransaction inside the same DB transaction.
type Wallet struct {
	Balance             float64    `gorm:"type:decimal(18,2);default:0" json:"balance"`
	TotalInvested       float64    `gorm:"type:decimal(18,2);default:0" json:"total_invested"`
	TotalBorrowed       float64    `gorm:"type:decimal(18,2);default:0" json:"total_borrowed"`
	TotalInterestEarned float64    `gorm:"type:decimal(18,2);default:0" json:"total_interest_earned"`
	TotalInterestPaid   float64    `gorm:"type:decimal(18,2);default:0" json:"total_interest_paid"`
	LastTransactionAt   *time.Time `json:"last_transaction_at,omitempty"`
}

type Address struct {
	Street     string `gorm:"size:255" json:"street,omitempty"`
	City       string `gorm:"size:128" json:"city,omitempty"`
	State      string `gorm:"size:128" json:"state,omitempty"`
	PostalCode string `gorm:"size:32" json:"postal_code,omitempty"`
	Country    string `gorm:"size:128" json:"country,omitempty"`
}

type User struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	UserID          string         `gorm:"size:32;uniqueIndex:ux_users_user_id_active" json:"user_id"`
	Name            string         `gorm:"size:255" json:"name"`
	Email           string         `gorm:"size:255;uniqueIndex:ux_users_email_active" json:"email"`
	Password        string         `gorm:"size:255" json:"-"`
	Role            Role           `gorm:"type:enum('borrower','investor','admin');default:'borrower'" json:"role"`
	KYCVerified     bool           `gorm:"default:false" json:"kyc_verified"`
	ProfileStatus   ProfileStatus  `gorm:"type:enum('Pending','Active','Suspended');default:'Pending'" json:"profile_status"`
	RejectionReason *string        `gorm:"size:512" json:"rejection_reason,omitempty"`
	ContactNumber   string         `gorm:"size:32" json:"contact_number,omitempty"`
	Address         Address        `gorm:"embedded;embeddedPrefix:addr_" json:"address"`
	Wallet          Wallet         `gorm:"embedded;embeddedPrefix:wallet_" json:"wallet"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

type TransactionType string

const (
	TxDeposit          TransactionType = "deposit"
	TxLoanFunding      TransactionType = "loan_funding"
	TxLoanDisbursement TransactionType = "loan_disbursement"
	TxRepayment        TransactionType = "repayment"
	TxInterestPayout   TransactionType = "interest_payout"
)

// WalletTransaction is an append-only ledger row: one per wallet mutation,
// recording the balance after the mutation was applied.
type WalletTransaction struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	TransactionRef string          `gorm:"size:36;uniqueIndex" json:"transaction_ref"`
	UserID         uint64          `gorm:"index:idx_wallet_tx_user;not null" json:"-"`
	Type           TransactionType `gorm:"type:enum('deposit','loan_funding','loan_disbursement','repayment','interest_payout')" json:"type"`
	Amount         float64         `gorm:"type:decimal(18,2)" json:"amount"`
	BalanceAfter   float64         `gorm:"type:decimal(18,2)" json:"balance_after_transaction"`
	Description    string          `gorm:"size:512" json:"description,omitempty"`
	OccurredAt     time.Time       `json:"date"`
}

func (WalletTransaction) TableName() string { return "wallet_transactions" }
