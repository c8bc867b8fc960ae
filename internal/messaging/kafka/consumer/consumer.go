package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-academy/internal/events"
	"go-academy/internal/salarypolicy"
	salarypolicyerrors "go-academy/internal/salarypolicy/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeStaffLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	policyService salarypolicy.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.staff_lifecycle")
	log.Info("staff lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("staff lifecycle consumer stopped")
				return
			}
			log.Error("fetch staff lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.StaffCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode staff_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = policyService.AssignDefault(ctx, event.TenantID, event.StaffID)
		if err != nil {
			if errors.Is(err, salarypolicyerrors.ErrAssignmentAlreadyExists) {
				log.Warn("policy assignment already exists for event, skipping",
					zap.String("staff_id", event.StaffID),
					zap.String("tenant_id", event.TenantID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			if errors.Is(err, salarypolicyerrors.ErrNoDefaultPolicy) {
				log.Warn("tenant has no default policy, skipping assignment",
					zap.String("staff_id", event.StaffID),
					zap.String("tenant_id", event.TenantID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("assign default salary policy failed",
				zap.String("staff_id", event.StaffID),
				zap.String("tenant_id", event.TenantID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit staff lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("default salary policy assigned from staff_created event",
			zap.String("staff_id", event.StaffID),
			zap.String("tenant_id", event.TenantID),
		)
	}
}
