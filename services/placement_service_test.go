package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/babydan/binary_backend/models"
)

func TestFindPlacementSponsorIsParentWhenSlotOpen(t *testing.T) {
	db := newTestDB(t)
	root := seedRoot(t, db)

	parentID, err := FindPlacement(db, testSettings(), root.ID, models.SideLeft)
	if err != nil {
		t.Fatalf("FindPlacement: %v", err)
	}
	if parentID != root.ID {
		t.Errorf("parent = %d, want sponsor %d", parentID, root.ID)
	}
}

func TestFindPlacementSponsorNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := FindPlacement(db, testSettings(), 999, models.SideLeft)
	if !errors.Is(err, ErrSponsorNotFound) {
		t.Errorf("err = %v, want ErrSponsorNotFound", err)
	}
}

func TestFindPlacementInvalidSide(t *testing.T) {
	db := newTestDB(t)
	root := seedRoot(t, db)

	if _, err := FindPlacement(db, testSettings(), root.ID, "up"); !errors.Is(err, ErrInvalidSide) {
		t.Errorf("err = %v, want ErrInvalidSide", err)
	}
}

func TestFindPlacementDefaultsToLeft(t *testing.T) {
	db := newTestDB(t)
	root := seedRoot(t, db)
	left := seedMember(t, db, "0x2000000000000000000000000000000000000002", "LEFT0001", root.ID, root.ID, models.SideLeft)

	parentID, err := FindPlacement(db, testSettings(), root.ID, models.SideNone)
	if err != nil {
		t.Fatalf("FindPlacement: %v", err)
	}
	if parentID != left.ID {
		t.Errorf("parent = %d, want deepest left child %d", parentID, left.ID)
	}
}

// N registrations under the same sponsor and side must form a straight chain:
// each new member attaches under the previously placed one.
func TestRegisterMemberChainProperty(t *testing.T) {
	db := newTestDB(t)
	cfg := testSettings()
	root := seedRoot(t, db)

	const n = 6
	var chain []models.Member
	for i := 0; i < n; i++ {
		m, err := RegisterMember(db, cfg, RegisterInput{
			RefCode:       root.RefCode,
			Side:          models.SideRight,
			FirstName:     "Member",
			LastName:      fmt.Sprintf("Number%d", i),
			WalletAddress: fmt.Sprintf("0x%040d", i+10),
		})
		if err != nil {
			t.Fatalf("RegisterMember %d: %v", i, err)
		}
		chain = append(chain, *m)
	}

	expectedParent := root.ID
	for i, m := range chain {
		if m.ParentID != expectedParent {
			t.Errorf("member %d: parent = %d, want %d", i, m.ParentID, expectedParent)
		}
		if m.Side != models.SideRight {
			t.Errorf("member %d: side = %q, want right", i, m.Side)
		}
		if m.SponsorID != root.ID {
			t.Errorf("member %d: sponsor = %d, want %d", i, m.SponsorID, root.ID)
		}
		expectedParent = m.ID
	}
}

// No two placed members may occupy the same (parent, side) slot.
func TestRegisterMemberSlotUniqueness(t *testing.T) {
	db := newTestDB(t)
	cfg := testSettings()
	root := seedRoot(t, db)

	for i := 0; i < 4; i++ {
		side := models.SideLeft
		if i%2 == 1 {
			side = models.SideRight
		}
		_, err := RegisterMember(db, cfg, RegisterInput{
			RefCode:       root.RefCode,
			Side:          side,
			FirstName:     "Slot",
			LastName:      "Holder",
			WalletAddress: fmt.Sprintf("0x%040d", i+50),
		})
		if err != nil {
			t.Fatalf("RegisterMember %d: %v", i, err)
		}
	}

	type slot struct {
		ParentID uint
		Side     string
		Count    int64
	}
	var dupes []slot
	err := db.Model(&models.Member{}).
		Select("parent_id, side, COUNT(*) as count").
		Where("parent_id > 0").
		Group("parent_id, side").
		Having("COUNT(*) > 1").
		Scan(&dupes).Error
	if err != nil {
		t.Fatalf("querying slots: %v", err)
	}
	if len(dupes) > 0 {
		t.Errorf("duplicate (parent, side) slots found: %+v", dupes)
	}
}

func TestRegisterMemberDuplicateWallet(t *testing.T) {
	db := newTestDB(t)
	cfg := testSettings()
	root := seedRoot(t, db)

	in := RegisterInput{
		RefCode:       root.RefCode,
		Side:          models.SideLeft,
		FirstName:     "Dup",
		LastName:      "Wallet",
		WalletAddress: "0xAbC0000000000000000000000000000000000123",
	}
	if _, err := RegisterMember(db, cfg, in); err != nil {
		t.Fatalf("first RegisterMember: %v", err)
	}
	if _, err := RegisterMember(db, cfg, in); !errors.Is(err, ErrDuplicateWallet) {
		t.Errorf("err = %v, want ErrDuplicateWallet", err)
	}
}

func TestRegisterMemberUnknownRefCodeFallsBackToRoot(t *testing.T) {
	db := newTestDB(t)
	cfg := testSettings()
	root := seedRoot(t, db)
	cfg.RootMemberID = root.ID

	m, err := RegisterMember(db, cfg, RegisterInput{
		RefCode:       "NOSUCH01",
		Side:          models.SideLeft,
		FirstName:     "Fallback",
		LastName:      "Sponsor",
		WalletAddress: "0x0000000000000000000000000000000000000099",
	})
	if err != nil {
		t.Fatalf("RegisterMember: %v", err)
	}
	if m.SponsorID != root.ID {
		t.Errorf("sponsor = %d, want root %d", m.SponsorID, root.ID)
	}
	if m.ProfileID != fmt.Sprintf("D%05d", m.ID) {
		t.Errorf("profile id = %q", m.ProfileID)
	}
}
