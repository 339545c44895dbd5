package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	coreport "github.com/oseikuffour/contribution-processor/internal/domain/port/core"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/events"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/gateway"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/persistence"
)

// Service implements the contribution lifecycle: initiation, webhook
// reconciliation and the read feed. Both the initiator's immediate-response
// path and the reconciliation engine converge on the repository's
// SettleIfPending guard, which is the sole authority over terminal
// transitions.
type Service struct {
	transactionRepo  persistence.TransactionRepository
	notificationRepo persistence.NotificationRepository
	chargeGateway    gateway.ChargeGateway
	publisher        events.Publisher
	validator        *DepositValidator
	resolver         *UserResolver
	timeProvider     coreport.TimeProvider
	logger           coreport.Logger
	chargeTimeout    time.Duration
	currency         string
}

// NewService wires the contribution service. publisher may be nil when event
// publication is disabled.
func NewService(
	transactionRepo persistence.TransactionRepository,
	userRepo persistence.UserRepository,
	notificationRepo persistence.NotificationRepository,
	chargeGateway gateway.ChargeGateway,
	publisher events.Publisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	chargeTimeout time.Duration,
	currency string,
) *Service {
	if chargeTimeout <= 0 {
		chargeTimeout = 10 * time.Second
	}
	if currency == "" {
		currency = "GHS"
	}
	return &Service{
		transactionRepo:  transactionRepo,
		notificationRepo: notificationRepo,
		chargeGateway:    chargeGateway,
		publisher:        publisher,
		validator:        NewDepositValidator(),
		resolver:         NewUserResolver(userRepo, logger),
		timeProvider:     timeProvider,
		logger:           logger,
		chargeTimeout:    chargeTimeout,
		currency:         currency,
	}
}

// GetByReference exposes the ledger to read-only collaborators (dashboards,
// statement generation). They never mutate transaction state.
func (s *Service) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	return s.transactionRepo.GetByReference(ctx, reference)
}

// newReferenceID generates the internal idempotency key: a timestamp plus a
// random suffix, unique at creation time and never reassigned.
func (s *Service) newReferenceID() string {
	stamp := s.timeProvider.Now().UTC().Format("20060102150405")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("CTB-%s-%s", stamp, suffix)
}
