package bootstrap

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appcheckout "github.com/jackyeh168/walk_rewards/src/internal/application/checkout"
	appdonation "github.com/jackyeh168/walk_rewards/src/internal/application/donation"
	apppoints "github.com/jackyeh168/walk_rewards/src/internal/application/points"
	appsteps "github.com/jackyeh168/walk_rewards/src/internal/application/steps"
	apptransfer "github.com/jackyeh168/walk_rewards/src/internal/application/transfer"
	domainidentity "github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	domainpoints "github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/config"
	infraidentity "github.com/jackyeh168/walk_rewards/src/internal/infrastructure/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/idempotency"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/notification"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence"
	catalogrepo "github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence/catalog"
	donationrepo "github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence/donation"
	orderrepo "github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence/order"
	pointsrepo "github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence/points"
	stepsrepo "github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence/steps"
	transferrepo "github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence/transfer"
)

// ===========================
// 組裝引擎（Composition Root）
// ===========================

// Engine 組裝完成的積分引擎
//
// 持有所有 Use Case 與其共享的基礎設施。外層（HTTP handler、
// 排程器、CLI）只依賴此結構，不直接建構任何 Repository。
type Engine struct {
	// 積分帳戶
	GetBalance    *apppoints.GetPointsBalanceUseCase
	CreateAccount *apppoints.CreatePointsAccountUseCase
	GrantPoints   *apppoints.GrantPointsUseCase

	// 步數換點
	ReportSteps   *appsteps.ReportStepsUseCase
	ValidateSteps *appsteps.ValidateStepsUseCase

	// 兌換結帳
	Checkout          *appcheckout.CheckoutUseCase
	UpdateOrderStatus *appcheckout.UpdateOrderStatusUseCase

	// 點數轉贈
	ProposeTransfer *apptransfer.ProposeTransferUseCase
	RespondTransfer *apptransfer.RespondTransferUseCase

	// 公益捐點
	Donate          *appdonation.DonateUseCase
	CreateInstitute *appdonation.CreateInstituteUseCase
	ListInstitutes  *appdonation.ListInstitutesUseCase

	db        *gorm.DB
	amqpConn  *amqp.Connection
	redisConn *redis.Client
	log       *logrus.Logger
}

// Dependencies 引擎的可抽換協作者
//
// 測試與嵌入式部署直接給定實作；NewEngine 依設定自動選擇。
type Dependencies struct {
	Authorizer  domainidentity.AdminAuthorizer
	Publisher   shared.EventPublisher
	Idempotency appcheckout.IdempotencyStore
}

// AutoMigrate 建立引擎需要的全部資料表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&pointsrepo.PointsAccountGORM{},
		&pointsrepo.PointsGrantGORM{},
		&stepsrepo.DailyEarningRecordGORM{},
		&catalogrepo.CatalogItemGORM{},
		&orderrepo.OrderGORM{},
		&orderrepo.OrderLineGORM{},
		&transferrepo.PointTransferGORM{},
		&donationrepo.InstituteGORM{},
		&donationrepo.DonationGORM{},
		&idempotency.IdempotencyKeyGORM{},
	)
}

// NewEngine 依設定組裝引擎
//
// 外部依賴按設定決定：
// - RabbitMQ URL 有值 → AMQP 發布器，否則事件寫 log
// - Redis Addr 有值 → Redis 冪等鍵儲存，否則存資料庫
func NewEngine(cfg *config.Config, log *logrus.Logger) (*Engine, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}

	deps := Dependencies{
		Authorizer: infraidentity.NewStaticAdminAuthorizer(cfg.AdminMemberIDs),
	}

	var amqpConn *amqp.Connection
	if cfg.RabbitMQ.URL != "" {
		amqpConn, err = amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		publisher, err := notification.NewAMQPEventPublisher(amqpConn, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			amqpConn.Close()
			return nil, fmt.Errorf("failed to create event publisher: %w", err)
		}
		deps.Publisher = publisher
	} else {
		deps.Publisher = notification.NewLogEventPublisher(log)
	}

	var redisConn *redis.Client
	if cfg.Redis.Addr != "" {
		redisConn = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		deps.Idempotency = idempotency.NewRedisIdempotencyStore(redisConn)
	} else {
		deps.Idempotency = idempotency.NewGORMIdempotencyStore(db)
	}

	engine := NewEngineWithDB(db, deps, log)
	engine.amqpConn = amqpConn
	engine.redisConn = redisConn

	log.WithFields(logrus.Fields{
		"amqp":  cfg.RabbitMQ.URL != "",
		"redis": cfg.Redis.Addr != "",
	}).Info("points engine assembled")

	return engine, nil
}

// NewEngineWithDB 在已開啟的資料庫上組裝引擎
//
// 呼叫端負責 schema 遷移（見 AutoMigrate）與 Dependencies 的完整性。
func NewEngineWithDB(db *gorm.DB, deps Dependencies, log *logrus.Logger) *Engine {
	txManager := persistence.NewGORMTransactionManager(db)

	accountRepo := pointsrepo.NewPointsAccountRepository(db)
	grantRepo := pointsrepo.NewPointsGrantRepository(db)
	recordRepo := stepsrepo.NewDailyEarningRecordRepository(db)
	catalogRepo := catalogrepo.NewCatalogItemRepository(db)
	orderRepo := orderrepo.NewOrderRepository(db)
	transferRepo := transferrepo.NewPointTransferRepository(db)
	instituteRepo := donationrepo.NewInstituteRepository(db)
	donationRepo := donationrepo.NewDonationRepository(db)

	return &Engine{
		GetBalance:    apppoints.NewGetPointsBalanceUseCase(accountRepo),
		CreateAccount: apppoints.NewCreatePointsAccountUseCase(accountRepo, txManager, deps.Publisher),
		GrantPoints: apppoints.NewGrantPointsUseCase(
			deps.Authorizer, accountRepo, grantRepo, txManager, deps.Publisher, log,
		),

		ReportSteps: appsteps.NewReportStepsUseCase(recordRepo, txManager, nil),
		ValidateSteps: appsteps.NewValidateStepsUseCase(
			recordRepo, accountRepo, txManager, deps.Publisher,
			domainpoints.DefaultStepsPerPoint(), nil,
		),

		Checkout: appcheckout.NewCheckoutUseCase(
			accountRepo, catalogRepo, orderRepo, txManager, deps.Publisher, deps.Idempotency,
		),
		UpdateOrderStatus: appcheckout.NewUpdateOrderStatusUseCase(orderRepo, txManager, deps.Publisher),

		ProposeTransfer: apptransfer.NewProposeTransferUseCase(transferRepo, accountRepo, txManager, deps.Publisher),
		RespondTransfer: apptransfer.NewRespondTransferUseCase(transferRepo, accountRepo, txManager, deps.Publisher, nil),

		Donate: appdonation.NewDonateUseCase(
			accountRepo, instituteRepo, donationRepo, txManager, deps.Publisher,
		),
		CreateInstitute: appdonation.NewCreateInstituteUseCase(deps.Authorizer, instituteRepo, txManager),
		ListInstitutes:  appdonation.NewListInstitutesUseCase(instituteRepo),

		db:  db,
		log: log,
	}
}

// DB 返回底層資料庫連線（供外層需要直接存取時使用）
func (e *Engine) DB() *gorm.DB {
	return e.db
}

// Close 釋放引擎持有的外部連線
func (e *Engine) Close() error {
	var firstErr error

	if e.amqpConn != nil {
		if err := e.amqpConn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if e.redisConn != nil {
		if err := e.redisConn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if e.db != nil {
		sqlDB, err := e.db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		} else if firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
