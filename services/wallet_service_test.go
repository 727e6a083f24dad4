package services

import (
	"errors"
	"testing"

	"github.com/babydan/binary_backend/models"
)

// Balance is derived by aggregation over APPROVED entries only; a PENDING entry
// must not move it.
func TestBalanceDerivation(t *testing.T) {
	db := newTestDB(t)
	root := seedRoot(t, db)

	approvedEntry(t, db, root.ID, models.TranDeposit, 100, 0)
	approvedEntry(t, db, root.ID, models.TranWithdraw, 0, 30)

	pending := models.WalletTransaction{
		MemberID:    root.ID,
		TranType:    models.TranDeposit,
		InAmount:    1000,
		AdminStatus: models.StatusPending,
	}
	if err := db.Create(&pending).Error; err != nil {
		t.Fatalf("creating pending entry: %v", err)
	}

	balance, err := Balance(db, root.ID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 70 {
		t.Errorf("balance = %v, want 70", balance)
	}
}

func TestCreateWithdrawRollingCap(t *testing.T) {
	db := newTestDB(t)
	cfg := testSettings()
	root := seedRoot(t, db)
	approvedEntry(t, db, root.ID, models.TranDeposit, 50000, 0)

	hash := func(b byte) string {
		h := make([]byte, 64)
		for i := range h {
			h[i] = b
		}
		return "0x" + string(h)
	}

	// One token over the cap is rejected outright.
	_, err := CreateWithdraw(db, cfg, root.ID, cfg.WithdrawLimit+1, hash('a'))
	if !errors.Is(err, ErrWithdrawLimitExceeded) {
		t.Fatalf("over-cap err = %v, want ErrWithdrawLimitExceeded", err)
	}

	// Exactly the cap is accepted.
	if _, err := CreateWithdraw(db, cfg, root.ID, cfg.WithdrawLimit, hash('b')); err != nil {
		t.Fatalf("at-cap withdraw: %v", err)
	}

	// The allowance is exhausted; even 1 more is rejected.
	_, err = CreateWithdraw(db, cfg, root.ID, 1, hash('c'))
	if !errors.Is(err, ErrWithdrawLimitExceeded) {
		t.Errorf("post-cap err = %v, want ErrWithdrawLimitExceeded", err)
	}
}

func TestCreateWithdrawInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	cfg := testSettings()
	root := seedRoot(t, db)
	approvedEntry(t, db, root.ID, models.TranDeposit, 10, 0)

	_, err := CreateWithdraw(db, cfg, root.ID, 20,
		"0x1111111111111111111111111111111111111111111111111111111111111111")
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("err = %v, want ErrInsufficientBalance", err)
	}

	// The rejection rolls back: no Withdraw entry, balance untouched.
	var count int64
	db.Model(&models.WalletTransaction{}).
		Where("member_id = ? AND tran_type = ?", root.ID, models.TranWithdraw).
		Count(&count)
	if count != 0 {
		t.Errorf("withdraw entries = %d, want 0 after rejection", count)
	}
	balance, err := Balance(db, root.ID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 10 {
		t.Errorf("balance = %v, want 10", balance)
	}
}

func TestCreateWithdrawUnknownMember(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateWithdraw(db, testSettings(), 404, 10,
		"0x3333333333333333333333333333333333333333333333333333333333333333")
	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestTotalCapAdjustments(t *testing.T) {
	db := newTestDB(t)
	root := seedRoot(t, db)
	approvedEntry(t, db, root.ID, models.TranAPR, 2000, 0)
	approvedEntry(t, db, root.ID, models.TranCapAdjustment, 0, 510)

	total, err := TotalCapAdjustments(db, root.ID)
	if err != nil {
		t.Fatalf("TotalCapAdjustments: %v", err)
	}
	if total != 510 {
		t.Errorf("total = %v, want 510", total)
	}
}

func TestCreateDepositRejectsDuplicateHash(t *testing.T) {
	db := newTestDB(t)
	root := seedRoot(t, db)
	hash := "0x2222222222222222222222222222222222222222222222222222222222222222"

	if _, err := CreateDeposit(db, root.ID, 500, hash); err != nil {
		t.Fatalf("first deposit: %v", err)
	}
	if _, err := CreateDeposit(db, root.ID, 500, hash); !errors.Is(err, ErrDuplicateTxnHash) {
		t.Errorf("err = %v, want ErrDuplicateTxnHash", err)
	}

	balance, err := Balance(db, root.ID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 500 {
		t.Errorf("balance = %v, want 500 (single credit)", balance)
	}
}

func TestCreateTransfer(t *testing.T) {
	db := newTestDB(t)
	root := seedRoot(t, db)
	other := seedMember(t, db, "0x00000000000000000000000000000000000000f0", "CODEF001", root.ID, root.ID, models.SideLeft)
	approvedEntry(t, db, root.ID, models.TranDeposit, 100, 0)

	recipient, err := CreateTransfer(db, root.ID, other.WalletAddress, 60)
	if err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	if recipient.ID != other.ID {
		t.Errorf("recipient = %d, want %d", recipient.ID, other.ID)
	}

	senderBal, _ := Balance(db, root.ID)
	recvBal, _ := Balance(db, other.ID)
	if senderBal != 40 {
		t.Errorf("sender balance = %v, want 40", senderBal)
	}
	if recvBal != 60 {
		t.Errorf("recipient balance = %v, want 60", recvBal)
	}
}

func TestCreateTransferSelfAndUnknownRecipient(t *testing.T) {
	db := newTestDB(t)
	root := seedRoot(t, db)
	approvedEntry(t, db, root.ID, models.TranDeposit, 100, 0)

	if _, err := CreateTransfer(db, root.ID, root.WalletAddress, 10); !errors.Is(err, ErrSelfTransfer) {
		t.Errorf("self transfer err = %v, want ErrSelfTransfer", err)
	}
	if _, err := CreateTransfer(db, root.ID, "0x00000000000000000000000000000000000000aa", 10); !errors.Is(err, ErrRecipientNotFound) {
		t.Errorf("unknown recipient err = %v, want ErrRecipientNotFound", err)
	}
}
