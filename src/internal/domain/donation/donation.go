package donation

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// MemberID 會員識別符（identity context 定義）
type MemberID = identity.MemberID

// ===========================
// DonationID 識別符
// ===========================

// DonationMarker 捐贈紀錄 ID 類型標記
type DonationMarker struct{}

// DonationID 捐贈紀錄識別符
type DonationID = shared.EntityID[DonationMarker]

// NewDonationID 生成新的捐贈紀錄 ID
func NewDonationID() DonationID {
	return shared.NewEntityID[DonationMarker]()
}

// DonationIDFromString 從字符串解析捐贈紀錄 ID
func DonationIDFromString(s string) (DonationID, error) {
	return shared.EntityIDFromString[DonationMarker](s, ErrInvalidDonationID)
}

// ===========================
// Donation 捐贈紀錄
// ===========================

// Donation 捐贈紀錄（append-only 審計日誌）
//
// 捐贈是單向匯入：會員扣點、機構累計，沒有退款路徑，
// 因此每筆捐贈都落一筆不可修改的紀錄供追溯。
type Donation struct {
	donationID  DonationID
	memberID    MemberID
	instituteID InstituteID
	amount      points.PointsAmount
	createdAt   time.Time
}

// NewDonation 創建捐贈紀錄
//
// 業務規則：
// - amount 必須 > 0
// - member 與 institute 必須是有效 ID
func NewDonation(
	memberID MemberID,
	instituteID InstituteID,
	amount points.PointsAmount,
) (*Donation, error) {
	if memberID.IsEmpty() {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"reason", "memberID cannot be empty",
		)
	}
	if instituteID.IsEmpty() {
		return nil, ErrInvalidInstituteID.WithContext(
			"reason", "instituteID cannot be empty",
		)
	}
	if amount.IsZero() {
		return nil, points.ErrInvalidAmount.WithContext(
			"reason", "donation amount must be positive",
		)
	}

	return &Donation{
		donationID:  NewDonationID(),
		memberID:    memberID,
		instituteID: instituteID,
		amount:      amount,
		createdAt:   time.Now(),
	}, nil
}

// DonationID 獲取捐贈紀錄 ID
func (d *Donation) DonationID() DonationID {
	return d.donationID
}

// MemberID 獲取捐贈會員 ID
func (d *Donation) MemberID() MemberID {
	return d.memberID
}

// InstituteID 獲取受贈機構 ID
func (d *Donation) InstituteID() InstituteID {
	return d.instituteID
}

// Amount 獲取捐贈積分數量
func (d *Donation) Amount() points.PointsAmount {
	return d.amount
}

// CreatedAt 獲取捐贈時間
func (d *Donation) CreatedAt() time.Time {
	return d.createdAt
}

// ReconstructDonation 從持久化存儲重建捐贈紀錄
func ReconstructDonation(
	donationID DonationID,
	memberID MemberID,
	instituteID InstituteID,
	amount int,
	createdAt time.Time,
) (*Donation, error) {
	if donationID.IsEmpty() {
		return nil, ErrInvalidDonationID
	}

	donationAmount, err := points.NewPositivePointsAmount(amount)
	if err != nil {
		return nil, err
	}

	return &Donation{
		donationID:  donationID,
		memberID:    memberID,
		instituteID: instituteID,
		amount:      donationAmount,
		createdAt:   createdAt,
	}, nil
}
