package donation

import (
	"time"

	"github.com/google/uuid"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
)

// ===========================
// Donation 領域事件
// ===========================

// DonationMadeEvent 捐贈完成事件
type DonationMadeEvent struct {
	eventID     string
	donationID  DonationID
	memberID    MemberID
	instituteID InstituteID
	amount      points.PointsAmount
	occurredAt  time.Time
}

// NewDonationMadeEvent 創建捐贈完成事件
func NewDonationMadeEvent(
	donationID DonationID,
	memberID MemberID,
	instituteID InstituteID,
	amount points.PointsAmount,
) *DonationMadeEvent {
	return &DonationMadeEvent{
		eventID:     uuid.New().String(),
		donationID:  donationID,
		memberID:    memberID,
		instituteID: instituteID,
		amount:      amount,
		occurredAt:  time.Now(),
	}
}

func (e *DonationMadeEvent) EventID() string       { return e.eventID }
func (e *DonationMadeEvent) EventType() string     { return "donation.made" }
func (e *DonationMadeEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *DonationMadeEvent) AggregateID() string   { return e.donationID.String() }

// DonationID 獲取捐贈紀錄 ID
func (e *DonationMadeEvent) DonationID() DonationID { return e.donationID }

// MemberID 獲取捐贈會員 ID
func (e *DonationMadeEvent) MemberID() MemberID { return e.memberID }

// InstituteID 獲取受贈機構 ID
func (e *DonationMadeEvent) InstituteID() InstituteID { return e.instituteID }

// Amount 獲取捐贈積分數量
func (e *DonationMadeEvent) Amount() points.PointsAmount { return e.amount }

// ===========================
// GoalReached 通知事件
// ===========================

// GoalReachedEvent 機構募集目標達成通知
//
// 對外（AMQP）發布的輕量通知：只攜帶機構 ID，
// 訂閱方收到後重新查詢機構現況。
type GoalReachedEvent struct {
	eventID     string
	instituteID InstituteID
	occurredAt  time.Time
}

// NewGoalReachedEvent 創建目標達成通知
func NewGoalReachedEvent(instituteID InstituteID) *GoalReachedEvent {
	return &GoalReachedEvent{
		eventID:     uuid.New().String(),
		instituteID: instituteID,
		occurredAt:  time.Now(),
	}
}

func (e *GoalReachedEvent) EventID() string       { return e.eventID }
func (e *GoalReachedEvent) EventType() string     { return "donation.goal_reached" }
func (e *GoalReachedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *GoalReachedEvent) AggregateID() string   { return e.instituteID.String() }

// InstituteID 獲取機構 ID
func (e *GoalReachedEvent) InstituteID() InstituteID { return e.instituteID }
