package loan

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDisbursed Status = "disbursed"
	StatusRejected  Status = "rejected"
)

type InstallmentStatus string

const (
	InstallmentPaid   InstallmentStatus = "paid"
	InstallmentUnpaid InstallmentStatus = "unpaid"
)

type Guarantor struct {
	Name    string `gorm:"size:255" json:"name,omitempty"`
	Contact string `gorm:"size:64" json:"contact,omitempty"`
}

// Disbursement carries the payout bank details plus the date stamped when the
// funding pool reaches its goal.
type Disbursement struct {
	AccountNumber string     `gorm:"size:32" json:"account_number"`
	BankName      string     `gorm:"size:128" json:"bank_name"`
	IFSCCode      string     `gorm:"size:16" json:"ifsc_code"`
	DisbursedAt   *time.Time `json:"date,omitempty"`
}

type Loan struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID       string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	ApplicantID  string         `gorm:"size:32;index:idx_loans_applicant" json:"applicant_id"`
	Amount       float64        `gorm:"type:decimal(18,2)" json:"loan_amount"`
	TermMonths   int            `json:"term"`
	Purpose      string         `gorm:"size:512" json:"purpose"`
	Category     string         `gorm:"size:128" json:"loan_category"`
	PANNumber    string         `gorm:"size:16" json:"pan_number"`
	InterestRate float64        `gorm:"type:decimal(6,2)" json:"interest_rate"`
	CreditScore  int            `json:"credit_score"`
	Status       Status         `gorm:"type:enum('pending','approved','disbursed','rejected');default:'pending'" json:"status"`
	Guarantor    Guarantor      `gorm:"embedded;embeddedPrefix:guarantor_" json:"guarantor"`
	Disbursement Disbursement   `gorm:"embedded;embeddedPrefix:disb_" json:"disbursement"`
	Schedule     []Installment  `gorm:"foreignKey:LoanNumericID" json:"repayment_schedule,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

type Installment struct {
	ID            uint64            `gorm:"primaryKey;column:id" json:"-"`
	LoanNumericID uint64            `gorm:"column:loan_id;index;not null" json:"-"`
	Sequence      int               `json:"sequence"`
	DueDate       time.Time         `json:"due_date"`
	Status        InstallmentStatus `gorm:"type:enum('paid','unpaid');default:'unpaid'" json:"status"`
	Amount        float64           `gorm:"type:decimal(18,2)" json:"amount"`
}

func (Installment) TableName() string { return "loan_installments" }

// AuditEntry rows are append-only.
type AuditEntry struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanNumericID uint64    `gorm:"column:loan_id;index;not null" json:"-"`
	Action        string    `gorm:"size:255" json:"action"`
	PerformedBy   string    `gorm:"size:32" json:"performed_by"`
	Timestamp     time.Time `json:"timestamp"`
}

func (AuditEntry) TableName() string { return "loan_audit_entries" }

type Notification struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanNumericID uint64    `gorm:"column:loan_id;index;not null" json:"-"`
	Message       string    `gorm:"size:512" json:"message"`
	SentAt        time.Time `json:"sent_at"`
}

func (Notification) TableName() string { return "loan_notifications" }

// Document records the stored path of an uploaded application file.
type Document struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanNumericID uint64 `gorm:"column:loan_id;index;not null" json:"-"`
	Kind          string `gorm:"size:64" json:"kind"`
	Path          string `gorm:"type:text" json:"path"`
}

func (Document) TableName() string { return "loan_documents" }
